package model

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents the single user record a device keeps under its
// local storage key.  The record is serialized as JSON; handlers clear
// PasswordHash before writing it to a response.
//
// Fields:
//  ID           – identifier of the user.
//  Name         – display name.
//  Email        – email address used to log in.
//  Role         – admin or user.
//  Phone        – optional phone number.
//  Avatar       – optional avatar URL.
//  PasswordHash – bcrypt hash, present only for registered users.
type User struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	Phone        *string `json:"phone,omitempty"`
	Avatar       *string `json:"avatar,omitempty"`
	PasswordHash string  `json:"password_hash,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
