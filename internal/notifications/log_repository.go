package notifications

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sqlc-dev/pqtype"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/models"
)

// LogRepository persists notification audit rows. The table is
// append-only; rows are written once per gateway call and never updated.
type LogRepository struct {
	db *sql.DB
}

// NewLogRepository creates a new notification log repository
func NewLogRepository(db *sql.DB) *LogRepository {
	return &LogRepository{
		db: db,
	}
}

// InsertNotificationLogRequest carries one audit row
type InsertNotificationLogRequest struct {
	Target          string
	Message         string
	Type            models.NotificationType
	Status          models.NotificationStatus
	GatewayResponse json.RawMessage
}

// ListNotificationLogs returns the audit trail, newest first.
func (r *LogRepository) ListNotificationLogs(ctx context.Context) ([]models.NotificationLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, phone, message, type, status, green_api_response, created_at
		FROM notification_logs
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notification logs: %w", err)
	}
	defer rows.Close()

	logs := []models.NotificationLog{}
	for rows.Next() {
		var entry models.NotificationLog
		var response pqtype.NullRawMessage
		if err := rows.Scan(&entry.ID, &entry.Target, &entry.Message, &entry.Type, &entry.Status, &response, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification log: %w", err)
		}
		if response.Valid {
			entry.GatewayResponse = response.RawMessage
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notification logs: %w", err)
	}
	return logs, nil
}

// InsertNotificationLog appends one audit row
func (r *LogRepository) InsertNotificationLog(ctx context.Context, req InsertNotificationLogRequest) error {
	var response pqtype.NullRawMessage
	if len(req.GatewayResponse) > 0 {
		response = pqtype.NullRawMessage{RawMessage: req.GatewayResponse, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notification_logs (phone, message, type, status, green_api_response)
		VALUES ($1, $2, $3, $4, $5)`,
		req.Target,
		req.Message,
		string(req.Type),
		string(req.Status),
		response,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification log: %w", err)
	}
	return nil
}
