package notifications

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/yayazuqui-hub/court-priority-play-52/clients/greenapi"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/models"
)

// Credentials identify one Green API instance
type Credentials struct {
	IDInstance string
	APIToken   string
}

// ResolveWith applies per-call overrides on top of the defaults. Each
// field falls back independently, and overrides are trimmed before the
// non-empty check. No further format validation happens here.
func (c Credentials) ResolveWith(override Credentials) Credentials {
	out := c
	if id := strings.TrimSpace(override.IDInstance); id != "" {
		out.IDInstance = id
	}
	if token := strings.TrimSpace(override.APIToken); token != "" {
		out.APIToken = token
	}
	return out
}

func (c Credentials) missing() bool {
	return c.IDInstance == "" || c.APIToken == ""
}

// Destination names where a message goes: a group chat id (preserved
// verbatim) or an individual phone number (normalized to a chat id).
// A group id wins when both are set.
type Destination struct {
	Phone       string
	GroupChatID string
}

// resolve returns the gateway chat id and the audit-log target marker.
func (d Destination) resolve() (chatID, target string, err error) {
	if d.GroupChatID != "" {
		return d.GroupChatID, "GROUP:" + d.GroupChatID, nil
	}
	if d.Phone != "" {
		chatID = stripNonDigits(d.Phone)
		if !strings.Contains(chatID, "@") {
			chatID += "@c.us"
		}
		return chatID, chatID, nil
	}
	return "", "", ErrNoDestination
}

// MessageSender defines what the gateway needs from the Green API client
type MessageSender interface {
	SendMessage(ctx context.Context, idInstance, apiToken, chatID, message string) (*greenapi.SendMessageResponse, json.RawMessage, error)
}

// LogStore defines what the gateway needs to persist the audit trail
type LogStore interface {
	InsertNotificationLog(ctx context.Context, req InsertNotificationLogRequest) error
}

// SendReceipt reports a successful delivery. LogErr is non-nil when the
// message went out but the audit row could not be written, so callers can
// surface "sent but not logged" instead of silently dropping it.
type SendReceipt struct {
	MessageID string
	LogErr    error
}

// Gateway formats destinations, calls the messaging API and records one
// audit row per delivered message.
type Gateway struct {
	client   MessageSender
	logs     LogStore
	defaults Credentials
}

// NewGateway creates a notification gateway with process-wide default
// credentials.
func NewGateway(client MessageSender, logs LogStore, defaults Credentials) *Gateway {
	return &Gateway{
		client:   client,
		logs:     logs,
		defaults: defaults,
	}
}

// Send delivers one message. A failure to write the audit row never
// becomes a caller-visible error; it only populates the receipt.
func (g *Gateway) Send(ctx context.Context, dest Destination, message string, typ models.NotificationType, override Credentials) (*SendReceipt, error) {
	creds := g.defaults.ResolveWith(override)
	if creds.missing() {
		return nil, ErrCredentialsMissing
	}

	chatID, target, err := dest.resolve()
	if err != nil {
		return nil, err
	}

	log.Info().Str("type", string(typ)).Str("target", target).Msg("sending whatsapp notification")

	resp, raw, err := g.client.SendMessage(ctx, creds.IDInstance, creds.APIToken, chatID, message)
	if err != nil {
		return nil, err
	}

	logErr := g.logs.InsertNotificationLog(ctx, InsertNotificationLogRequest{
		Target:          target,
		Message:         message,
		Type:            typ,
		Status:          models.NotificationStatusSent,
		GatewayResponse: raw,
	})
	if logErr != nil {
		log.Warn().Err(logErr).Str("target", target).Msg("failed to log notification")
	}

	return &SendReceipt{MessageID: resp.IDMessage, LogErr: logErr}, nil
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
