package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/models"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/sqlutil"
)

// Repository implements game schedule data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new schedule repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// CreateGameScheduleRequest carries the fields for a new schedule row.
// DayOfWeek and GameDate are mutually exclusive; the form controller
// enforces that before the request reaches the store.
type CreateGameScheduleRequest struct {
	Title       string     `json:"title"`
	Location    string     `json:"location"`
	Address     *string    `json:"address"`
	IsRecurring bool       `json:"is_recurring"`
	DayOfWeek   *int       `json:"day_of_week"`
	GameDate    *time.Time `json:"game_date"`
	GameTime    string     `json:"game_time"`
	EndTime     *string    `json:"end_time"`
	CreatedBy   uuid.UUID  `json:"created_by"`
}

// UpdateGameScheduleRequest is a full-field overwrite, not a partial patch.
type UpdateGameScheduleRequest struct {
	Title       string     `json:"title"`
	Location    string     `json:"location"`
	Address     *string    `json:"address"`
	IsRecurring bool       `json:"is_recurring"`
	DayOfWeek   *int       `json:"day_of_week"`
	GameDate    *time.Time `json:"game_date"`
	GameTime    string     `json:"game_time"`
	EndTime     *string    `json:"end_time"`
}

const gameScheduleColumns = `id, title, location, address, is_recurring, day_of_week, game_date, game_time, end_time, created_by, created_at`

// CreateGameSchedule inserts a new schedule row and returns it
func (r *Repository) CreateGameSchedule(ctx context.Context, req CreateGameScheduleRequest) (*models.GameSchedule, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO games_schedule (title, location, address, is_recurring, day_of_week, game_date, game_time, end_time, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+gameScheduleColumns,
		req.Title,
		req.Location,
		sqlutil.ToSqlString(req.Address),
		req.IsRecurring,
		sqlutil.ToSqlInt32(req.DayOfWeek),
		sqlutil.ToSqlTime(req.GameDate),
		req.GameTime,
		sqlutil.ToSqlString(req.EndTime),
		req.CreatedBy,
	)

	game, err := scanGameSchedule(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create game schedule: %w", err)
	}
	return game, nil
}

// GetGameSchedule retrieves a schedule row by ID
func (r *Repository) GetGameSchedule(ctx context.Context, id uuid.UUID) (*models.GameSchedule, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+gameScheduleColumns+`
		FROM games_schedule
		WHERE id = $1`,
		id,
	)

	game, err := scanGameSchedule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game schedule: %w", err)
	}
	return game, nil
}

// ListGameSchedules retrieves every schedule row, oldest first
func (r *Repository) ListGameSchedules(ctx context.Context) ([]models.GameSchedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+gameScheduleColumns+`
		FROM games_schedule
		ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list game schedules: %w", err)
	}
	defer rows.Close()

	return collectGameSchedules(rows)
}

// ListUpcoming retrieves dated games on or after the given day, ascending.
// Recurring entries carry no game_date and are never returned by this
// query; that matches the reminder-selection behavior of the original
// system and is intentionally preserved.
func (r *Repository) ListUpcoming(ctx context.Context, from time.Time) ([]models.GameSchedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+gameScheduleColumns+`
		FROM games_schedule
		WHERE game_date >= $1
		ORDER BY game_date, game_time`,
		from,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming games: %w", err)
	}
	defer rows.Close()

	return collectGameSchedules(rows)
}

// UpdateGameSchedule overwrites every mutable field of an existing row
func (r *Repository) UpdateGameSchedule(ctx context.Context, id uuid.UUID, req UpdateGameScheduleRequest) (*models.GameSchedule, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE games_schedule
		SET title = $2,
		    location = $3,
		    address = $4,
		    is_recurring = $5,
		    day_of_week = $6,
		    game_date = $7,
		    game_time = $8,
		    end_time = $9
		WHERE id = $1
		RETURNING `+gameScheduleColumns,
		id,
		req.Title,
		req.Location,
		sqlutil.ToSqlString(req.Address),
		req.IsRecurring,
		sqlutil.ToSqlInt32(req.DayOfWeek),
		sqlutil.ToSqlTime(req.GameDate),
		req.GameTime,
		sqlutil.ToSqlString(req.EndTime),
	)

	game, err := scanGameSchedule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update game schedule: %w", err)
	}
	return game, nil
}

// DeleteGameSchedule removes a row unconditionally. Deletion is immediate
// and unrecoverable; confirming intent is the caller's job.
func (r *Repository) DeleteGameSchedule(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM games_schedule WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete game schedule: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete game schedule: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGameSchedule(row rowScanner) (*models.GameSchedule, error) {
	var (
		game      models.GameSchedule
		address   sql.NullString
		dayOfWeek sql.NullInt32
		gameDate  sql.NullTime
		endTime   sql.NullString
	)
	err := row.Scan(
		&game.ID,
		&game.Title,
		&game.Location,
		&address,
		&game.IsRecurring,
		&dayOfWeek,
		&gameDate,
		&game.GameTime,
		&endTime,
		&game.CreatedBy,
		&game.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	game.Address = sqlutil.FromSqlString(address)
	game.DayOfWeek = sqlutil.FromSqlInt32(dayOfWeek)
	game.GameDate = sqlutil.FromSqlTime(gameDate)
	game.EndTime = sqlutil.FromSqlString(endTime)
	return &game, nil
}

func collectGameSchedules(rows *sql.Rows) ([]models.GameSchedule, error) {
	var games []models.GameSchedule
	for rows.Next() {
		game, err := scanGameSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game schedule: %w", err)
		}
		games = append(games, *game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game schedules: %w", err)
	}
	return games, nil
}
