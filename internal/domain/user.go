package domain

import "time"

type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
	ProviderGitHub AuthProvider = "github"
)

type User struct {
	ID             int          `json:"id" db:"id"`
	Email          string       `json:"email" db:"email"`
	PasswordHash   *string      `json:"-" db:"password_hash"`
	PhoneNumber    *string      `json:"phone_number" db:"phone_number"`
	Provider       AuthProvider `json:"provider" db:"provider"`
	ProviderUserID *string      `json:"-" db:"provider_user_id"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}
