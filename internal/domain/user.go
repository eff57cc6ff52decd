package domain

import "time"

// Provider identifies an external identity provider.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderYandex Provider = "yandex"
)

// User represents a user in the system. Every credential is optional, but at
// least one of them must resolve to the record for a login to succeed.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     *string   `json:"username" db:"username"`
	PasswordHash *string   `json:"-" db:"password_hash"`
	GoogleToken  *string   `json:"-" db:"google_token"`
	YandexToken  *string   `json:"-" db:"yandex_token"`
	Email        *string   `json:"email" db:"email"`
	Name         *string   `json:"name" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// GoogleUserData is the profile returned by the Google userinfo endpoint.
type GoogleUserData struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	AccessToken   string `json:"-"`
}
