package market

import (
	"time"
)

type User struct {
	ID           string
	Username     string
	Email        string
	PayPal       string
	PasswordHash string
	CreatedAt    time.Time
}

func NewUser(id, username, email, paypal, passwordHash string, createdAt time.Time) *User {
	return &User{
		ID:           id,
		Username:     username,
		Email:        email,
		PayPal:       paypal,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}
}
