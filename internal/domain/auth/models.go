package auth

import "time"

type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Department  *string    `json:"department"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Credentials struct {
	User         User
	PasswordHash string
}

type NewUser struct {
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Department   *string
}

type UserFilter struct {
	Role       string
	Department string
	Active     *bool
}

type UserPatch struct {
	Name       *string
	Department *string
	Role       *string
	Active     *bool
}

// Session is what the transport layer stores in the cookie.
type Session struct {
	Token     string
	ExpiresAt time.Time
}
