// Package auth gates access to the API behind email/password credentials
// and a Redis-backed cookie session.
package auth

import "time"

// User represents an authenticated user account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"nome"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"senhaHash"`
	IsActive     bool      `json:"ativo"`
	CreatedAt    time.Time `json:"criadoEm"`
}
