package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/models"
)

// DefaultDayOfWeek is Monday, the weekday a blank form starts on.
const DefaultDayOfWeek = 1

// Form holds the transient editable field state for one create/edit
// session. It is reinitialized from a record when an edit session opens
// and discarded when a session is cancelled; nothing here is persisted.
type Form struct {
	Title       string
	Location    string
	Address     string
	IsRecurring bool
	DayOfWeek   int
	GameDate    string // "2006-01-02", one-off games only
	GameTime    string
	EndTime     string
}

// NewForm returns the blank defaults: recurring on, Monday selected.
func NewForm() Form {
	return Form{
		IsRecurring: true,
		DayOfWeek:   DefaultDayOfWeek,
	}
}

// Reset clears the text and time fields and puts the weekday back to
// Monday. The recurring switch keeps whatever the user last chose.
func (f *Form) Reset() {
	f.Title = ""
	f.Location = ""
	f.Address = ""
	f.DayOfWeek = DefaultDayOfWeek
	f.GameDate = ""
	f.GameTime = ""
	f.EndTime = ""
}

// LoadGame reinitializes the form from an existing record for editing.
func (f *Form) LoadGame(game models.GameSchedule) {
	f.Title = game.Title
	f.Location = game.Location
	f.Address = ""
	if game.Address != nil {
		f.Address = *game.Address
	}
	f.IsRecurring = game.IsRecurring
	f.DayOfWeek = DefaultDayOfWeek
	if game.DayOfWeek != nil {
		f.DayOfWeek = *game.DayOfWeek
	}
	f.GameDate = ""
	if game.GameDate != nil {
		f.GameDate = game.GameDate.Format("2006-01-02")
	}
	f.GameTime = game.GameTime
	f.EndTime = ""
	if game.EndTime != nil {
		f.EndTime = *game.EndTime
	}
}

// GameStore defines what the form controller needs from the schedule store
type GameStore interface {
	CreateGameSchedule(ctx context.Context, req CreateGameScheduleRequest) (*models.GameSchedule, error)
	UpdateGameSchedule(ctx context.Context, id uuid.UUID, req UpdateGameScheduleRequest) (*models.GameSchedule, error)
	DeleteGameSchedule(ctx context.Context, id uuid.UUID) error
}

// FormController validates and submits create/update requests and owns the
// mapping between recurring/one-off modes and the fields that apply to
// each: a recurring game never carries a date, a one-off game never
// carries a weekday.
type FormController struct {
	store GameStore
	form  Form
}

// NewFormController creates a controller with a blank form
func NewFormController(store GameStore) *FormController {
	return &FormController{
		store: store,
		form:  NewForm(),
	}
}

// Form exposes the editable field state
func (c *FormController) Form() *Form {
	return &c.form
}

// BeginEdit loads an existing record into the form
func (c *FormController) BeginEdit(game models.GameSchedule) {
	c.form.LoadGame(game)
}

// Cancel discards the in-progress field state
func (c *FormController) Cancel() {
	c.form.Reset()
}

// Create validates the form and persists a new game schedule. On success
// the form resets to blank defaults.
func (c *FormController) Create(ctx context.Context, createdBy uuid.UUID) (*models.GameSchedule, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	dayOfWeek, gameDate := c.exclusiveFields()
	game, err := c.store.CreateGameSchedule(ctx, CreateGameScheduleRequest{
		Title:       c.form.Title,
		Location:    c.form.Location,
		Address:     optionalText(c.form.Address),
		IsRecurring: c.form.IsRecurring,
		DayOfWeek:   dayOfWeek,
		GameDate:    gameDate,
		GameTime:    c.form.GameTime,
		EndTime:     optionalText(c.form.EndTime),
		CreatedBy:   createdBy,
	})
	if err != nil {
		return nil, err
	}

	c.form.Reset()
	return game, nil
}

// Update validates the form and overwrites the identified record in full.
// The store reports ErrNotFound when the id does not exist.
func (c *FormController) Update(ctx context.Context, id uuid.UUID) (*models.GameSchedule, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	dayOfWeek, gameDate := c.exclusiveFields()
	return c.store.UpdateGameSchedule(ctx, id, UpdateGameScheduleRequest{
		Title:       c.form.Title,
		Location:    c.form.Location,
		Address:     optionalText(c.form.Address),
		IsRecurring: c.form.IsRecurring,
		DayOfWeek:   dayOfWeek,
		GameDate:    gameDate,
		GameTime:    c.form.GameTime,
		EndTime:     optionalText(c.form.EndTime),
	})
}

// Delete removes the record unconditionally
func (c *FormController) Delete(ctx context.Context, id uuid.UUID) error {
	return c.store.DeleteGameSchedule(ctx, id)
}

func (c *FormController) validate() error {
	if strings.TrimSpace(c.form.Title) == "" {
		return &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(c.form.Location) == "" {
		return &ValidationError{Field: "location"}
	}
	if strings.TrimSpace(c.form.GameTime) == "" {
		return &ValidationError{Field: "game_time"}
	}
	return nil
}

// exclusiveFields applies the recurring/one-off rule: day of week only for
// recurring games, date only for one-off games.
func (c *FormController) exclusiveFields() (*int, *time.Time) {
	if c.form.IsRecurring {
		day := c.form.DayOfWeek
		return &day, nil
	}

	var gameDate *time.Time
	if c.form.GameDate != "" {
		if parsed, err := time.Parse("2006-01-02", c.form.GameDate); err == nil {
			gameDate = &parsed
		}
	}
	return nil, gameDate
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
