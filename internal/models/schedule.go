package models

import (
	"time"

	"github.com/google/uuid"
)

// GameSchedule represents a scheduled game: either a one-off entry with a
// fixed calendar date, or a weekly-recurring entry pinned to a day of the
// week. Exactly one of DayOfWeek/GameDate is set, driven by IsRecurring.
type GameSchedule struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Location    string     `json:"location"`
	Address     *string    `json:"address,omitempty"`
	IsRecurring bool       `json:"is_recurring"`
	DayOfWeek   *int       `json:"day_of_week,omitempty"` // 0 = Sunday, recurring entries only
	GameDate    *time.Time `json:"game_date,omitempty"`   // date component only, one-off entries only
	GameTime    string     `json:"game_time"`             // "HH:MM", trusted from the caller
	EndTime     *string    `json:"end_time,omitempty"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}
