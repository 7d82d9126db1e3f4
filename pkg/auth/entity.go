package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// User is a domain entity representing a system user.
// A user has a password hash, a linked external identity, or both.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash *string
	GoogleID     *string
	Role         Role
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	IsActive     bool
}

func (u User) HasPassword() bool { return u.PasswordHash != nil && *u.PasswordHash != "" }

func (u User) HasExternalIdentity() bool { return u.GoogleID != nil && *u.GoogleID != "" }

// Assertion is the normalized identity a third-party provider vouched for.
type Assertion struct {
	Subject       string // provider-scoped user id
	Email         string
	EmailVerified bool
	GivenName     string
	FamilyName    string
}

// TokenResponse is returned by every successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        Role   `json:"role"`
}

// RegisterInput carries a password signup.
type RegisterInput struct {
	Email     string
	Password  string
	Role      Role
	FirstName string
	LastName  string
}
