package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format of calendar dates (date of birth, due dates).
const DateLayout = "2006-01-02"

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a stored user identity with its password digest.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	DateOfBirth  time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the outward projection of User. It never carries the password hash.
type PublicUser struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	DateOfBirth string    `json:"dateOfBirth"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Public strips sensitive fields from the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth.Format(DateLayout),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// RegisterParams contains the fields submitted at registration.
type RegisterParams struct {
	Name        string
	Email       string
	Password    string
	DateOfBirth string
}

// PasswordHasher produces and checks password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}
