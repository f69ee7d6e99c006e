package notifications

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/models"
)

// NotificationSender defines what the handler needs from the gateway
type NotificationSender interface {
	Send(ctx context.Context, dest Destination, message string, typ models.NotificationType, override Credentials) (*SendReceipt, error)
}

// LogLister defines what the handler needs to render delivery history
type LogLister interface {
	ListNotificationLogs(ctx context.Context) ([]models.NotificationLog, error)
}

// Handler exposes the notification dispatch endpoint and the delivery
// history. The dispatch wire contract mirrors the hosted function the
// mobile client already talks to: any failure is a 500-class
// {"error": ...} body, success is {"success": true, "messageId": ...}.
type Handler struct {
	gateway NotificationSender
	logs    LogLister
}

// NewHandler creates a new notification handler
func NewHandler(gateway NotificationSender, logs LogLister) *Handler {
	return &Handler{
		gateway: gateway,
		logs:    logs,
	}
}

// RegisterRoutes registers the notification endpoints. CORS preflight is
// handled by the server-level CORS wrapper.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/notifications/send", h.handleSend)
	mux.HandleFunc("GET /api/notifications/logs", h.handleListLogs)
}

type sendRequest struct {
	Phone       string                  `json:"phone,omitempty"`
	GroupChatID string                  `json:"groupChatId,omitempty"`
	Message     string                  `json:"message"`
	Type        models.NotificationType `json:"type"`
	IDInstance  string                  `json:"idInstance,omitempty"`
	APIToken    string                  `json:"apiToken,omitempty"`
}

type sendResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body")
		return
	}

	receipt, err := h.gateway.Send(r.Context(),
		Destination{Phone: req.Phone, GroupChatID: req.GroupChatID},
		req.Message,
		req.Type,
		Credentials{IDInstance: req.IDInstance, APIToken: req.APIToken},
	)
	if err != nil {
		log.Error().Err(err).Msg("whatsapp notification dispatch failed")
		writeError(w, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(sendResponse{Success: true, MessageID: receipt.MessageID}); err != nil {
		log.Error().Err(err).Msg("failed to encode send response")
	}
}

func (h *Handler) handleListLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.logs.ListNotificationLogs(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list notification logs")
		writeError(w, "failed to list notification logs")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(logs); err != nil {
		log.Error().Err(err).Msg("failed to encode notification logs")
	}
}

func writeError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: msg}); err != nil {
		log.Error().Err(err).Msg("failed to encode error response")
	}
}
