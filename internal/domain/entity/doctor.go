package entity

// Doctor is a practitioner belonging to exactly one specialization.
type Doctor struct {
	ID                int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string `gorm:"type:varchar(100);not null" json:"name"`
	SpecializationID  int64  `gorm:"not null;index" json:"specialization_id"`
	InPersonAvailable *bool  `gorm:"not null;default:true" json:"in_person_available"`
	OnlineAvailable   *bool  `gorm:"not null;default:true" json:"online_available"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// Offers reports whether the doctor accepts appointments over the given
// contact method. Unset flags count as available, matching the column default.
func (d *Doctor) Offers(method ContactMethod) bool {
	switch method {
	case ContactMethodInPerson:
		return d.InPersonAvailable == nil || *d.InPersonAvailable
	case ContactMethodOnline:
		return d.OnlineAvailable == nil || *d.OnlineAvailable
	default:
		return false
	}
}
