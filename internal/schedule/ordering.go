package schedule

import (
	"sort"
	"time"

	"github.com/yayazuqui-hub/court-priority-play-52/internal/models"
)

// Status is the derived temporal state of a schedule entry.
type Status string

const (
	StatusRecurring Status = "recurring"
	StatusUpcoming  Status = "upcoming"
	StatusPast      Status = "past"
)

// Sort returns the games in display order without mutating the input:
// recurring entries first (ascending by day of week), then one-off entries
// chronologically by date and start time. Entries that cannot be compared
// on the active dimension keep their relative input order.
func Sort(games []models.GameSchedule) []models.GameSchedule {
	out := make([]models.GameSchedule, len(games))
	copy(out, games)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		if a.IsRecurring != b.IsRecurring {
			return a.IsRecurring
		}

		if a.IsRecurring {
			return dayOfWeekOrZero(a) < dayOfWeekOrZero(b)
		}

		aStart, aOK := StartsAt(a)
		bStart, bOK := StartsAt(b)
		if !aOK || !bOK {
			return false
		}
		return aStart.Before(bStart)
	})

	return out
}

// IsUpcoming reports whether an entry is still active at the given moment.
// Recurring entries are perpetually active; a one-off entry is upcoming
// only while its start moment is strictly in the future. A one-off entry
// with no date has unknown status and counts as not upcoming.
func IsUpcoming(game models.GameSchedule, now time.Time) bool {
	if game.IsRecurring {
		return true
	}
	start, ok := StartsAt(game)
	if !ok {
		return false
	}
	return start.After(now)
}

// StatusOf derives the display status for one entry.
func StatusOf(game models.GameSchedule, now time.Time) Status {
	if game.IsRecurring {
		return StatusRecurring
	}
	if IsUpcoming(game, now) {
		return StatusUpcoming
	}
	return StatusPast
}

// StartsAt combines GameDate and GameTime into the entry's start moment.
// It reports false for entries without a date. An unparseable time of day
// falls back to midnight rather than failing.
func StartsAt(game models.GameSchedule) (time.Time, bool) {
	if game.GameDate == nil {
		return time.Time{}, false
	}
	date := *game.GameDate

	t, err := time.Parse("15:04", game.GameTime)
	if err != nil {
		t, err = time.Parse("15:04:05", game.GameTime)
	}
	if err != nil {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()), true
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, date.Location()), true
}

// missing day of week sorts as Sunday, for ordering purposes only
func dayOfWeekOrZero(game models.GameSchedule) int {
	if game.DayOfWeek == nil {
		return 0
	}
	return *game.DayOfWeek
}
