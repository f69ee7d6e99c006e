package profiles

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yayazuqui-hub/court-priority-play-52/internal/models"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/sqlutil"
)

// Repository implements profile data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new profiles repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// ListWithPhone retrieves every registered contact with a phone number on
// file. This is the broadcast audience for reminders.
func (r *Repository) ListWithPhone(ctx context.Context) ([]models.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, phone, created_at
		FROM profiles
		WHERE phone IS NOT NULL AND phone <> ''
		ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles with phone: %w", err)
	}
	defer rows.Close()

	var out []models.Profile
	for rows.Next() {
		var (
			profile models.Profile
			phone   sql.NullString
		)
		if err := rows.Scan(&profile.ID, &profile.Name, &phone, &profile.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profile.Phone = sqlutil.FromSqlString(phone)
		out = append(out, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	return out, nil
}
