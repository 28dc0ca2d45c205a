package models

import "time"

// User is a registered account. PasswordHash is empty for accounts created
// through an external provider; Provider/ExternalID are empty for password
// accounts.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Provider     string
	ExternalID   string
	CreatedAt    time.Time
}

// TokenPair is what a successful login returns.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
