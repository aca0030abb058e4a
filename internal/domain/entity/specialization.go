package entity

// Specialization is a medical category such as "Cardiology".
type Specialization struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

func (Specialization) TableName() string {
	return "specializations"
}
