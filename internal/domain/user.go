package domain

import "time"

// User is an account that can log in and act as an identity. The
// username doubles as the ledger identity for every session-scoped
// operation.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity returns the ledger identity this account acts as.
func (u User) Identity() Identity { return Identity(u.Username) }
