package models

// Role defines the user role type
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleStudent  Role = "STUDENT"
	RoleUser     Role = "USER"
)

// UserStatus defines the lifecycle state of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInvited  UserStatus = "INVITED"
	UserStatusDisabled UserStatus = "DISABLED"
)

// ItemType identifies which catalog entity an assignment points to
type ItemType string

const (
	ItemTypeCourse     ItemType = "course"
	ItemTypeInternship ItemType = "internship"
	ItemTypeProject    ItemType = "project"
)

// Valid reports whether the item type is one of the known catalog kinds
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeCourse, ItemTypeInternship, ItemTypeProject:
		return true
	}
	return false
}
