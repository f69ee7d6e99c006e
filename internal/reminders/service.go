package reminders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/models"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/notifications"
)

// GameFinder defines what the dispatcher needs from the schedule store
type GameFinder interface {
	ListUpcoming(ctx context.Context, from time.Time) ([]models.GameSchedule, error)
}

// ProfileFinder defines what the dispatcher needs from the profile store
type ProfileFinder interface {
	ListWithPhone(ctx context.Context) ([]models.Profile, error)
}

// ReminderSender defines what the dispatcher needs from the gateway
type ReminderSender interface {
	Send(ctx context.Context, dest notifications.Destination, message string, typ models.NotificationType, override notifications.Credentials) (*notifications.SendReceipt, error)
}

// DispatchRequest selects the game and the destination mode. A non-empty
// GroupChatID picks group mode; otherwise every registered contact with a
// phone number is messaged. IDInstance/APIToken override the default
// gateway credentials for this call only.
type DispatchRequest struct {
	GameID      string
	GroupChatID string
	IDInstance  string
	APIToken    string
}

// DispatchResult summarizes one dispatch. Unlogged counts messages that
// went out but whose audit row failed to write.
type DispatchResult struct {
	Mode      string `json:"mode"` // "group" or "broadcast"
	Sent      int    `json:"sent"`
	Unlogged  int    `json:"unlogged,omitempty"`
	GameTitle string `json:"game_title"`
}

// Dispatcher delivers game reminders to a WhatsApp group or to every
// registered contact, never both.
type Dispatcher struct {
	games    GameFinder
	profiles ProfileFinder
	sender   ReminderSender
	clock    clockwork.Clock
}

// NewDispatcher creates a reminder dispatcher
func NewDispatcher(games GameFinder, profiles ProfileFinder, sender ReminderSender, clock clockwork.Clock) *Dispatcher {
	return &Dispatcher{
		games:    games,
		profiles: profiles,
		sender:   sender,
		clock:    clock,
	}
}

// Dispatch resolves the selected game from the set of dated games on or
// after today and sends one reminder per destination. Recurring games
// carry no date and are therefore never selectable here; that limitation
// is inherited from the selection query and is deliberate. Partial sends
// within a broadcast are not retried or rolled back: the first gateway
// failure aborts the run and whatever already went out stands.
func (d *Dispatcher) Dispatch(ctx context.Context, req DispatchRequest) (*DispatchResult, error) {
	if strings.TrimSpace(req.GameID) == "" {
		return nil, ErrNoGameSelected
	}
	gameID, err := uuid.Parse(strings.TrimSpace(req.GameID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGameID, err)
	}

	game, err := d.findUpcoming(ctx, gameID)
	if err != nil {
		return nil, err
	}

	message := d.renderMessage(game)
	override := notifications.Credentials{
		IDInstance: strings.TrimSpace(req.IDInstance),
		APIToken:   strings.TrimSpace(req.APIToken),
	}

	if group := strings.TrimSpace(req.GroupChatID); group != "" {
		return d.dispatchToGroup(ctx, game, group, message, override)
	}
	return d.broadcast(ctx, game, message, override)
}

func (d *Dispatcher) findUpcoming(ctx context.Context, gameID uuid.UUID) (*models.GameSchedule, error) {
	today := d.today()
	games, err := d.games.ListUpcoming(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming games: %w", err)
	}
	for i := range games {
		if games[i].ID == gameID {
			return &games[i], nil
		}
	}
	return nil, ErrGameNotFound
}

func (d *Dispatcher) dispatchToGroup(ctx context.Context, game *models.GameSchedule, group, message string, override notifications.Credentials) (*DispatchResult, error) {
	receipt, err := d.sender.Send(ctx,
		notifications.Destination{GroupChatID: group},
		message,
		models.NotificationTypeGameReminder,
		override,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send group reminder: %w", err)
	}

	result := &DispatchResult{Mode: "group", Sent: 1, GameTitle: game.Title}
	if receipt.LogErr != nil {
		result.Unlogged = 1
	}
	log.Info().Str("game", game.Title).Str("group", group).Msg("reminder sent to group")
	return result, nil
}

func (d *Dispatcher) broadcast(ctx context.Context, game *models.GameSchedule, message string, override notifications.Credentials) (*DispatchResult, error) {
	contacts, err := d.profiles.ListWithPhone(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	var phones []string
	for _, contact := range contacts {
		if contact.Phone != nil && *contact.Phone != "" {
			phones = append(phones, *contact.Phone)
		}
	}
	if len(phones) == 0 {
		return nil, ErrNoRecipients
	}

	result := &DispatchResult{Mode: "broadcast", GameTitle: game.Title}
	for _, phone := range phones {
		receipt, err := d.sender.Send(ctx,
			notifications.Destination{Phone: phone},
			message,
			models.NotificationTypeGameReminder,
			override,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to send reminder after %d deliveries: %w", result.Sent, err)
		}
		result.Sent++
		if receipt.LogErr != nil {
			result.Unlogged++
		}
	}

	log.Info().Str("game", game.Title).Int("sent", result.Sent).Msg("reminders broadcast")
	return result, nil
}

func (d *Dispatcher) renderMessage(game *models.GameSchedule) string {
	date := "data a definir"
	if game.GameDate != nil {
		date = FormatDatePTBR(*game.GameDate)
	}
	return GameReminderMessage(game.Title, date, game.GameTime, game.Location)
}

func (d *Dispatcher) today() time.Time {
	now := d.clock.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
