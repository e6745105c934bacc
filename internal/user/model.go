package user

import "time"

// User is a registered account. Only the bcrypt hash of the password is
// kept.
type User struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}
