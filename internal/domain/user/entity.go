package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Accounts are immutable after
// registration; there is no profile edit path.
type User struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Phone        string    `db:"phone"`
	CreatedAt    time.Time `db:"created_at"`
}
