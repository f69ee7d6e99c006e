package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/models"
)

// GameReader defines what the handler needs to render schedules
type GameReader interface {
	ListGameSchedules(ctx context.Context) ([]models.GameSchedule, error)
	GetGameSchedule(ctx context.Context, id uuid.UUID) (*models.GameSchedule, error)
}

// Handler serves the game schedule JSON API
type Handler struct {
	store  GameStore
	reader GameReader
	clock  clockwork.Clock
}

// NewHandler creates a new schedule handler
func NewHandler(store GameStore, reader GameReader, clock clockwork.Clock) *Handler {
	return &Handler{
		store:  store,
		reader: reader,
		clock:  clock,
	}
}

// RegisterRoutes registers the schedule CRUD endpoints
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/games", h.handleListGames)
	mux.HandleFunc("GET /api/games/{id}", h.handleGetGame)
	mux.HandleFunc("POST /api/games", h.handleCreateGame)
	mux.HandleFunc("PUT /api/games/{id}", h.handleUpdateGame)
	mux.HandleFunc("DELETE /api/games/{id}", h.handleDeleteGame)
}

// gameView is one schedule entry plus its derived display status
type gameView struct {
	models.GameSchedule
	Status Status `json:"status"`
}

type gameFormRequest struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Address     string `json:"address"`
	IsRecurring bool   `json:"is_recurring"`
	DayOfWeek   int    `json:"day_of_week"`
	GameDate    string `json:"game_date"`
	GameTime    string `json:"game_time"`
	EndTime     string `json:"end_time"`
	CreatedBy   string `json:"created_by"`
}

func (req gameFormRequest) toForm() Form {
	return Form{
		Title:       req.Title,
		Location:    req.Location,
		Address:     req.Address,
		IsRecurring: req.IsRecurring,
		DayOfWeek:   req.DayOfWeek,
		GameDate:    req.GameDate,
		GameTime:    req.GameTime,
		EndTime:     req.EndTime,
	}
}

func (h *Handler) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid game ID format", http.StatusBadRequest)
		return
	}

	game, err := h.reader.GetGameSchedule(r.Context(), id)
	if err != nil {
		h.writeOpError(w, err, "failed to get game schedule")
		return
	}

	writeJSON(w, http.StatusOK, gameView{GameSchedule: *game, Status: StatusOf(*game, h.clock.Now())})
}

func (h *Handler) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.reader.ListGameSchedules(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list game schedules")
		http.Error(w, "Failed to list games", http.StatusInternalServerError)
		return
	}

	now := h.clock.Now()
	ordered := Sort(games)
	views := make([]gameView, 0, len(ordered))
	for _, game := range ordered {
		views = append(views, gameView{GameSchedule: game, Status: StatusOf(game, now)})
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req gameFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	createdBy, err := uuid.Parse(req.CreatedBy)
	if err != nil {
		http.Error(w, "Invalid created_by format", http.StatusBadRequest)
		return
	}

	controller := NewFormController(h.store)
	*controller.Form() = req.toForm()

	game, err := controller.Create(r.Context(), createdBy)
	if err != nil {
		h.writeOpError(w, err, "failed to create game schedule")
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (h *Handler) handleUpdateGame(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid game ID format", http.StatusBadRequest)
		return
	}

	var req gameFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	controller := NewFormController(h.store)
	*controller.Form() = req.toForm()

	game, err := controller.Update(r.Context(), id)
	if err != nil {
		h.writeOpError(w, err, "failed to update game schedule")
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (h *Handler) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid game ID format", http.StatusBadRequest)
		return
	}

	if err := h.store.DeleteGameSchedule(r.Context(), id); err != nil {
		h.writeOpError(w, err, "failed to delete game schedule")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeOpError(w http.ResponseWriter, err error, logMsg string) {
	var validation *ValidationError
	switch {
	case errors.As(err, &validation):
		http.Error(w, validation.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "Game schedule not found", http.StatusNotFound)
	default:
		log.Error().Err(err).Msg(logMsg)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
