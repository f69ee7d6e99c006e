package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents a registered user contact
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
