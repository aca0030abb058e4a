package entity

// User represents a patient reachable through an external messenger.
// Appointments and certificates reference users; deletes never cascade.
type User struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	MessengerID string `gorm:"type:varchar(64);not null;index" json:"messenger_id"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Email       string `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Phone       string `gorm:"type:varchar(50);not null" json:"phone"`
}

func (User) TableName() string {
	return "users"
}
