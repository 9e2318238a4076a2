package domain

import "errors"

// Role identifies which dashboard a user is dispatched to after login.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleClient Role = "client"
)

// UserStatus is the archival state of a client record. Only two values are
// valid; transitions happen exclusively through explicit admin actions
// (archive / unarchive).
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusArchived UserStatus = "archived"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")
var ErrMissingField = errors.New("missing required field")

// User models any actor in the system: admins, staff members and clients.
// Documents is populated lazily, only when a client file is opened, and
// must never be assumed present on a freshly fetched record.
type User struct {
	ID           string           `json:"id" bson:"_id,omitempty"`
	Name         string           `json:"name" bson:"name"`
	Email        string           `json:"email,omitempty" bson:"email,omitempty"`
	Role         Role             `json:"role" bson:"role"`
	Status       UserStatus       `json:"status,omitempty" bson:"status,omitempty"`
	Phone        string           `json:"phone,omitempty" bson:"phone,omitempty"`
	LoginCode    string           `json:"login_code,omitempty" bson:"login_code,omitempty"`
	PasswordHash string           `json:"-" bson:"password_hash,omitempty"`
	Documents    []ClientDocument `json:"documents,omitempty" bson:"-"`
}

// Archived reports whether the user is archived. An absent status counts as
// active (legacy records predate the status field).
func (u *User) Archived() bool {
	return u.Status == StatusArchived
}
