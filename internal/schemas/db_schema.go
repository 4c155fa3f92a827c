// Package schemas defines the data structures
package schemas

import (
	"time"

	"github.com/google/uuid"
)

// User represents the data model for a user in the system.
type User struct {
	ID                  uuid.UUID  `json:"id"`             // Unique identifier for the user.
	Email               string     `json:"email"`          // Lowercased email address of the user.
	Password            string     `json:"-"`              // Password hash of the user.
	FirstName           string     `json:"firstName"`      // First name of the user.
	LastName            string     `json:"lastName"`       // Last name of the user.
	ProfilePicture      string     `json:"profilePicture"` // Base64 encoded profile picture.
	GoalWeight          *float64   `json:"goalWeight"`     // Target weight set by the user.
	GoalUnit            string     `json:"goalUnit"`       // Unit of the target weight.
	ResetTokenHash      *string    `json:"-"`              // SHA-256 hash of the pending reset token.
	ResetTokenExpiresAt *time.Time `json:"-"`              // Expiry of the pending reset token.
	CreatedAt           time.Time  `json:"createdAt"`      // Timestamp when the user was created.
	UpdatedAt           time.Time  `json:"updatedAt"`      // Timestamp of the last profile change.
}

// WeightEntry is a single body weight measurement owned by a user.
type WeightEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Weight    float64   `json:"weight"`
	Unit      string    `json:"unit"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ActivityEntry is a single logged workout owned by a user.
type ActivityEntry struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	Type           string    `json:"type"`
	Duration       float64   `json:"duration"`
	Unit           string    `json:"unit"`
	CaloriesBurned float64   `json:"caloriesBurned"`
	Date           time.Time `json:"date"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ProgressPhoto is an uploaded image documenting the progress of a user.
type ProgressPhoto struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Date        time.Time `json:"date"`
	Caption     string    `json:"caption"`
	Image       string    `json:"image"`
	ContentType string    `json:"contentType"`
	CreatedAt   time.Time `json:"createdAt"`
}

const (
	UnitKilograms = "kg"
	UnitPounds    = "lbs"
	UnitMinutes   = "minutes"
	UnitHours     = "hours"
)
