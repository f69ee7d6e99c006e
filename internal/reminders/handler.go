package reminders

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Handler exposes the admin reminder dispatch endpoint
type Handler struct {
	dispatcher *Dispatcher
}

// NewHandler creates a new reminders handler
func NewHandler(dispatcher *Dispatcher) *Handler {
	return &Handler{
		dispatcher: dispatcher,
	}
}

// RegisterRoutes registers the reminder endpoints
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/reminders", h.handleDispatch)
}

type dispatchRequest struct {
	GameID      string `json:"gameId"`
	GroupChatID string `json:"groupChatId,omitempty"`
	IDInstance  string `json:"idInstance,omitempty"`
	APIToken    string `json:"apiToken,omitempty"`
}

type dispatchResponse struct {
	Success bool            `json:"success"`
	Warning string          `json:"warning,omitempty"`
	Result  *DispatchResult `json:"result,omitempty"`
}

func (h *Handler) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var req dispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), DispatchRequest{
		GameID:      req.GameID,
		GroupChatID: req.GroupChatID,
		IDInstance:  req.IDInstance,
		APIToken:    req.APIToken,
	})

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, dispatchResponse{Success: true, Result: result})
	case errors.Is(err, ErrNoRecipients):
		// empty audience is a warning, not a hard failure
		writeJSON(w, http.StatusOK, dispatchResponse{Success: false, Warning: err.Error()})
	case errors.Is(err, ErrNoGameSelected), errors.Is(err, ErrInvalidGameID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrGameNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Error().Err(err).Msg("reminder dispatch failed")
		http.Error(w, "Failed to send reminders", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
