package reminders

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/models"
)

func newHandlerMux(games *fakeGameFinder, contacts *fakeProfileFinder, sender *fakeReminderSender) *http.ServeMux {
	mux := http.NewServeMux()
	dispatcher := NewDispatcher(games, contacts, sender, clockwork.NewFakeClockAt(testNow))
	NewHandler(dispatcher).RegisterRoutes(mux)
	return mux
}

func postDispatch(mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reminders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rec, req)
	return rec
}

func TestDispatchEndpointGroupSuccess(t *testing.T) {
	game := upcomingGame("Vôlei", "2026-03-12")
	games := &fakeGameFinder{games: []models.GameSchedule{game}}
	sender := &fakeReminderSender{}
	mux := newHandlerMux(games, &fakeProfileFinder{}, sender)

	rec := postDispatch(mux, `{"gameId":"`+game.ID.String()+`","groupChatId":"120363@g.us"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Result  struct {
			Mode string `json:"mode"`
			Sent int    `json:"sent"`
		} `json:"result"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.Result.Mode != "group" || resp.Result.Sent != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestDispatchEndpointNoRecipientsIsWarning(t *testing.T) {
	game := upcomingGame("Vôlei", "2026-03-12")
	games := &fakeGameFinder{games: []models.GameSchedule{game}}
	mux := newHandlerMux(games, &fakeProfileFinder{}, &fakeReminderSender{})

	rec := postDispatch(mux, `{"gameId":"`+game.ID.String()+`"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("empty audience is a warning, not a failure; got %d", rec.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Warning string `json:"warning"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Success || resp.Warning == "" {
		t.Fatalf("expected warning response, got %+v", resp)
	}
}

func TestDispatchEndpointMissingSelection(t *testing.T) {
	mux := newHandlerMux(&fakeGameFinder{}, &fakeProfileFinder{}, &fakeReminderSender{})

	rec := postDispatch(mux, `{"gameId":""}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDispatchEndpointMalformedGameID(t *testing.T) {
	mux := newHandlerMux(&fakeGameFinder{}, &fakeProfileFinder{}, &fakeReminderSender{})

	rec := postDispatch(mux, `{"gameId":"not-a-uuid"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDispatchEndpointUnknownGame(t *testing.T) {
	mux := newHandlerMux(&fakeGameFinder{}, &fakeProfileFinder{}, &fakeReminderSender{})

	rec := postDispatch(mux, `{"gameId":"`+uuid.NewString()+`"}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
