package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user. Identity is managed
// by the external auth provider; this record only mirrors display data.
type User struct {
	ID        uuid.UUID
	Email     string
	Username  string
	AvatarURL *string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserSettings holds per-user collection preferences.
type UserSettings struct {
	UserID         uuid.UUID
	CollectionMode CollectionMode
	Currency       string
	UpdatedAt      time.Time
}

// DefaultUserSettings returns UserSettings with sensible defaults.
func DefaultUserSettings(userID uuid.UUID) UserSettings {
	return UserSettings{
		UserID:         userID,
		CollectionMode: ModeRegular,
		Currency:       "EUR",
	}
}
