package auth

import (
	"time"

	"agricredit-backend/internal/domain/user"
)

type RegisterInput struct {
	Name       string
	NationalID string
	Phone      string
	Email      *string
	Password   string
	UserType   user.Type
}

type LoginInput struct {
	// Login is a phone number or an email address.
	Login    string
	Password string
}

type Result struct {
	User      *user.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

type Me struct {
	User        *user.User `json:"user"`
	Permissions []string   `json:"permissions"`
}
