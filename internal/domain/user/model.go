package user

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// Account statuses. Inactive accounts are rejected at login.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrValidation         = errors.New("invalid user")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrSelfDelete         = errors.New("cannot delete own account")
)

// User maps to the users table.
type User struct {
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         string    `db:"role" json:"role"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// IsActive reports whether the account may log in.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// HashPassword returns the hex-encoded SHA-256 digest of password. Existing
// credentials in the users table are stored in this format and must keep
// verifying, so the scheme cannot change without a rehash migration.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
