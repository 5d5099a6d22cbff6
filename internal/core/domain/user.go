package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	// ErrInvalidCredentials covers every login failure (unknown account,
	// wrong password, malformed input). Callers must not reveal which.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers every bearer-token failure (malformed, bad
	// signature, expired). A single error avoids an expiry oracle.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidResetToken covers wrong and expired reset secrets uniformly.
	ErrInvalidResetToken = errors.New("invalid reset token")

	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameTaken  = errors.New("username already exists")
	ErrEmailTaken     = errors.New("email already exists")
	ErrForbidden      = errors.New("access forbidden")
	ErrSelfRoleChange = errors.New("cannot change own role")
	ErrSelfDelete     = errors.New("cannot delete own account")
	ErrInvalidRole    = errors.New("invalid role")
)

// ValidRole reports whether r is a role the system recognises.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleAdmin
}

// Profile holds the public-facing attributes of a user account.
type Profile struct {
	Name     string `json:"profile_name"`
	Title    string `json:"profile_title"`
	Bio      string `json:"profile_bio"`
	Location string `json:"profile_location"`
	Phone    string `json:"profile_phone"`
	Avatar   string `json:"profile_avatar"`
	LinkedIn string `json:"profile_social_linkedin"`
	GitHub   string `json:"profile_social_github"`
	Twitter  string `json:"profile_social_twitter"`
}

// User models a credential record as stored. PasswordHash and the reset token
// pair never leave the server.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Profile      Profile    `json:"profile"`
	ResetHash    string     `json:"-"`
	ResetExpiry  *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Principal is the authenticated identity attached to a request. It is derived
// fresh from the store on every authenticated request and never persisted.
type Principal struct {
	SubjectID int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// PrincipalFromUser projects the request-scoped identity out of a stored row.
func PrincipalFromUser(u *User) *Principal {
	return &Principal{
		SubjectID: u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
	}
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
