package user

import (
	"errors"
	"time"

	"github.com/servipro-app/servipro-backend/internal/auth"
)

var (
	ErrNotFound         = errors.New("user not found")
	ErrEmailAlreadyUsed = errors.New("email already used")
	ErrInvalidRole      = errors.New("role must be client or professional")
)

// User represents a marketplace account: either a client booking services or a
// professional offering them.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	Role         auth.Role
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
}

// Filter defines filter options for listing users.
type Filter struct {
	Role        auth.Role
	DisplayName string
	IsActive    *bool // Pointer to distinguish between false and nil (not set)

	Page     int
	PageSize int
}
