package entity

// SortOrder requests an ordering for list queries. Timestamped entities are
// ordered by created_at, the others by id. Empty means unspecified.
type SortOrder string

const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) Valid() bool {
	return o == SortNone || o == SortAsc || o == SortDesc
}

type UserFilter struct {
	Email       string
	MessengerID string
	Order       SortOrder
}

type SpecializationFilter struct {
	Name  string // case-insensitive substring
	Order SortOrder
}

type DoctorFilter struct {
	SpecializationID *int64
	Name             string // case-insensitive substring
	InPerson         *bool
	Online           *bool
	Order            SortOrder
}

type AppointmentFilter struct {
	UserID   *int64
	DoctorID *int64
	Status   *AppointmentStatus
	Order    SortOrder
}

type CertificateFilter struct {
	UserID *int64
	Status *CertificateStatus
	Order  SortOrder
}
