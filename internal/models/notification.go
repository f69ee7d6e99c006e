package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies an outbound WhatsApp message
type NotificationType string

const (
	NotificationTypeBooking      NotificationType = "booking"
	NotificationTypeSystemOpen   NotificationType = "system_open"
	NotificationTypeGameReminder NotificationType = "game_reminder"
)

// NotificationStatus is the delivery outcome recorded in the audit log.
// Failed gateway calls abort before the logging step, so "sent" is the
// only status ever written.
type NotificationStatus string

const (
	NotificationStatusSent NotificationStatus = "sent"
)

// NotificationLog is one append-only audit row per gateway call that
// reached the logging step. Target is either a formatted chat id or a
// group marker ("GROUP:<id>").
type NotificationLog struct {
	ID              uuid.UUID          `json:"id"`
	Target          string             `json:"phone"`
	Message         string             `json:"message"`
	Type            NotificationType   `json:"type"`
	Status          NotificationStatus `json:"status"`
	GatewayResponse json.RawMessage    `json:"green_api_response,omitempty"` // raw gateway payload, stored for audit
	CreatedAt       time.Time          `json:"created_at"`
}
