package entity

// ActorRole identifies who is asking for a status change.
type ActorRole string

const (
	ActorRoleUser  ActorRole = "user"
	ActorRoleStaff ActorRole = "staff"
)

// Actor is the caller of a status update. UserID is only meaningful for
// ActorRoleUser.
type Actor struct {
	Role   ActorRole
	UserID int64
}

func (a Actor) IsStaff() bool {
	return a.Role == ActorRoleStaff
}

// IsUser reports whether the actor is the user with the given id.
func (a Actor) IsUser(userID int64) bool {
	return a.Role == ActorRoleUser && a.UserID == userID
}

func StaffActor() Actor {
	return Actor{Role: ActorRoleStaff}
}

func UserActor(userID int64) Actor {
	return Actor{Role: ActorRoleUser, UserID: userID}
}
