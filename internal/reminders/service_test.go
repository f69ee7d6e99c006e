package reminders

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/models"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/notifications"
)

type fakeGameFinder struct {
	games  []models.GameSchedule
	from   time.Time
	called int
}

func (f *fakeGameFinder) ListUpcoming(ctx context.Context, from time.Time) ([]models.GameSchedule, error) {
	f.from = from
	f.called++
	return f.games, nil
}

type fakeProfileFinder struct {
	profiles []models.Profile
	called   int
}

func (f *fakeProfileFinder) ListWithPhone(ctx context.Context) ([]models.Profile, error) {
	f.called++
	return f.profiles, nil
}

type reminderSend struct {
	dest     notifications.Destination
	message  string
	typ      models.NotificationType
	override notifications.Credentials
}

type fakeReminderSender struct {
	sends   []reminderSend
	calls   int
	failAt  int // fail on the nth call (1-based), 0 never
	logErrs bool
}

func (f *fakeReminderSender) Send(ctx context.Context, dest notifications.Destination, message string, typ models.NotificationType, override notifications.Credentials) (*notifications.SendReceipt, error) {
	f.calls++
	if f.failAt > 0 && f.calls == f.failAt {
		return nil, errors.New("gateway unavailable")
	}
	f.sends = append(f.sends, reminderSend{dest, message, typ, override})
	receipt := &notifications.SendReceipt{MessageID: "MSG-1"}
	if f.logErrs {
		receipt.LogErr = errors.New("log write failed")
	}
	return receipt, nil
}

var testNow = time.Date(2026, 3, 8, 10, 30, 0, 0, time.UTC)

func upcomingGame(title string, date string) models.GameSchedule {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.GameSchedule{
		ID:       uuid.New(),
		Title:    title,
		Location: "Quadra da Praia",
		GameDate: &parsed,
		GameTime: "19:00",
	}
}

func profileWithPhone(name, phone string) models.Profile {
	p := phone
	return models.Profile{ID: uuid.New(), Name: name, Phone: &p}
}

func newTestDispatcher(games *fakeGameFinder, contacts *fakeProfileFinder, sender *fakeReminderSender) *Dispatcher {
	return NewDispatcher(games, contacts, sender, clockwork.NewFakeClockAt(testNow))
}

func TestDispatchRequiresGameSelection(t *testing.T) {
	d := newTestDispatcher(&fakeGameFinder{}, &fakeProfileFinder{}, &fakeReminderSender{})

	for _, gameID := range []string{"", "   "} {
		_, err := d.Dispatch(context.Background(), DispatchRequest{GameID: gameID})
		if !errors.Is(err, ErrNoGameSelected) {
			t.Fatalf("expected ErrNoGameSelected for %q, got %v", gameID, err)
		}
	}
}

func TestDispatchRejectsMalformedGameID(t *testing.T) {
	d := newTestDispatcher(&fakeGameFinder{}, &fakeProfileFinder{}, &fakeReminderSender{})

	_, err := d.Dispatch(context.Background(), DispatchRequest{GameID: "not-a-uuid"})
	if !errors.Is(err, ErrInvalidGameID) {
		t.Fatalf("expected ErrInvalidGameID, got %v", err)
	}
}

func TestDispatchGameNotInCandidateSet(t *testing.T) {
	games := &fakeGameFinder{games: []models.GameSchedule{upcomingGame("other", "2026-03-10")}}
	d := newTestDispatcher(games, &fakeProfileFinder{}, &fakeReminderSender{})

	_, err := d.Dispatch(context.Background(), DispatchRequest{GameID: uuid.NewString()})
	if !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestDispatchCandidateWindowStartsToday(t *testing.T) {
	games := &fakeGameFinder{games: []models.GameSchedule{upcomingGame("jogo", "2026-03-10")}}
	sender := &fakeReminderSender{}
	d := newTestDispatcher(games, &fakeProfileFinder{}, sender)

	_, err := d.Dispatch(context.Background(), DispatchRequest{
		GameID:      games.games[0].ID.String(),
		GroupChatID: "120363@g.us",
	})
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	wantFrom := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	if !games.from.Equal(wantFrom) {
		t.Fatalf("expected candidate window from %v, got %v", wantFrom, games.from)
	}
}

func TestDispatchGroupModeSendsExactlyOne(t *testing.T) {
	game := upcomingGame("Vôlei de quinta", "2026-03-12")
	games := &fakeGameFinder{games: []models.GameSchedule{game}}
	contacts := &fakeProfileFinder{} // zero contacts on file
	sender := &fakeReminderSender{}
	d := newTestDispatcher(games, contacts, sender)

	result, err := d.Dispatch(context.Background(), DispatchRequest{
		GameID:      game.ID.String(),
		GroupChatID: "  120363@g.us  ",
	})
	if err != nil {
		t.Fatalf("group dispatch must succeed with zero contacts: %v", err)
	}

	if result.Mode != "group" || result.Sent != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(sender.sends) != 1 {
		t.Fatalf("expected exactly one send, got %d", len(sender.sends))
	}
	if sender.sends[0].dest.GroupChatID != "120363@g.us" {
		t.Fatalf("expected trimmed group destination, got %q", sender.sends[0].dest.GroupChatID)
	}
	if contacts.called != 0 {
		t.Fatal("group mode must not query contacts")
	}
}

func TestDispatchBroadcastNoRecipients(t *testing.T) {
	game := upcomingGame("Vôlei", "2026-03-12")
	games := &fakeGameFinder{games: []models.GameSchedule{game}}
	sender := &fakeReminderSender{}
	d := newTestDispatcher(games, &fakeProfileFinder{}, sender)

	_, err := d.Dispatch(context.Background(), DispatchRequest{GameID: game.ID.String()})
	if !errors.Is(err, ErrNoRecipients) {
		t.Fatalf("expected ErrNoRecipients, got %v", err)
	}
	if len(sender.sends) != 0 {
		t.Fatalf("expected zero gateway calls, got %d", len(sender.sends))
	}
}

func TestDispatchBroadcastSendsPerContact(t *testing.T) {
	game := upcomingGame("Vôlei", "2026-03-12")
	games := &fakeGameFinder{games: []models.GameSchedule{game}}
	contacts := &fakeProfileFinder{profiles: []models.Profile{
		profileWithPhone("Ana", "5511999990001"),
		profileWithPhone("Bruno", "5511999990002"),
		profileWithPhone("Carla", "5511999990003"),
	}}
	sender := &fakeReminderSender{}
	d := newTestDispatcher(games, contacts, sender)

	result, err := d.Dispatch(context.Background(), DispatchRequest{GameID: game.ID.String()})
	if err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}

	if result.Mode != "broadcast" || result.Sent != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}
	for i, send := range sender.sends {
		if send.dest.Phone == "" || send.dest.GroupChatID != "" {
			t.Fatalf("send %d must target a phone: %+v", i, send.dest)
		}
		if send.typ != models.NotificationTypeGameReminder {
			t.Fatalf("expected game_reminder type, got %q", send.typ)
		}
	}
}

func TestDispatchBroadcastAbortsOnGatewayFailure(t *testing.T) {
	game := upcomingGame("Vôlei", "2026-03-12")
	games := &fakeGameFinder{games: []models.GameSchedule{game}}
	contacts := &fakeProfileFinder{profiles: []models.Profile{
		profileWithPhone("Ana", "5511999990001"),
		profileWithPhone("Bruno", "5511999990002"),
		profileWithPhone("Carla", "5511999990003"),
	}}
	sender := &fakeReminderSender{failAt: 2}
	d := newTestDispatcher(games, contacts, sender)

	_, err := d.Dispatch(context.Background(), DispatchRequest{GameID: game.ID.String()})
	if err == nil {
		t.Fatal("expected dispatch failure")
	}
	// the first delivery already went out and is not rolled back
	if len(sender.sends) != 1 {
		t.Fatalf("expected 1 completed send before the failure, got %d", len(sender.sends))
	}
}

func TestDispatchReportsUnloggedDeliveries(t *testing.T) {
	game := upcomingGame("Vôlei", "2026-03-12")
	games := &fakeGameFinder{games: []models.GameSchedule{game}}
	contacts := &fakeProfileFinder{profiles: []models.Profile{
		profileWithPhone("Ana", "5511999990001"),
		profileWithPhone("Bruno", "5511999990002"),
	}}
	sender := &fakeReminderSender{logErrs: true}
	d := newTestDispatcher(games, contacts, sender)

	result, err := d.Dispatch(context.Background(), DispatchRequest{GameID: game.ID.String()})
	if err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}
	if result.Sent != 2 || result.Unlogged != 2 {
		t.Fatalf("expected 2 sent / 2 unlogged, got %+v", result)
	}
}

func TestDispatchMessageContent(t *testing.T) {
	game := upcomingGame("Vôlei de quinta", "2026-03-12")
	games := &fakeGameFinder{games: []models.GameSchedule{game}}
	sender := &fakeReminderSender{}
	d := newTestDispatcher(games, &fakeProfileFinder{}, sender)

	_, err := d.Dispatch(context.Background(), DispatchRequest{
		GameID:      game.ID.String(),
		GroupChatID: "120363@g.us",
	})
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	msg := sender.sends[0].message
	for _, want := range []string{"Vôlei de quinta", "12 de março de 2026", "19:00", "Quadra da Praia"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q: %s", want, msg)
		}
	}
}

func TestDispatchCredentialOverridesTrimmed(t *testing.T) {
	game := upcomingGame("Vôlei", "2026-03-12")
	games := &fakeGameFinder{games: []models.GameSchedule{game}}
	sender := &fakeReminderSender{}
	d := newTestDispatcher(games, &fakeProfileFinder{}, sender)

	_, err := d.Dispatch(context.Background(), DispatchRequest{
		GameID:      game.ID.String(),
		GroupChatID: "120363@g.us",
		IDInstance:  "  2202  ",
		APIToken:    " tok ",
	})
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	override := sender.sends[0].override
	if override.IDInstance != "2202" || override.APIToken != "tok" {
		t.Fatalf("expected trimmed overrides, got %+v", override)
	}
}
