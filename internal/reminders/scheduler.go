package reminders

import (
	"context"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/schedule"
)

// SchedulerConfig controls the automatic reminder job.
type SchedulerConfig struct {
	CronSpec    string        // when to run, cron syntax
	GroupChatID string        // group that receives the reminders
	Lookahead   time.Duration // how far ahead a game must start to qualify
}

// Scheduler periodically dispatches group reminders for dated games that
// start within the lookahead window. It is an optional convenience on top
// of admin-triggered dispatch and reuses the same selection rules, so
// recurring games are not covered.
type Scheduler struct {
	dispatcher *Dispatcher
	games      GameFinder
	cfg        SchedulerConfig
	clock      clockwork.Clock
	cron       *cron.Cron
}

// NewScheduler creates a reminder scheduler
func NewScheduler(dispatcher *Dispatcher, games GameFinder, cfg SchedulerConfig, clock clockwork.Clock) *Scheduler {
	return &Scheduler{
		dispatcher: dispatcher,
		games:      games,
		cfg:        cfg,
		clock:      clock,
		cron:       cron.New(),
	}
}

// Start registers the cron job and starts the scheduler. It fails when
// no group chat id is configured: automatic dispatch never falls back to
// broadcasting individual contacts.
func (s *Scheduler) Start() error {
	if strings.TrimSpace(s.cfg.GroupChatID) == "" {
		return ErrNoGroupConfigured
	}
	if _, err := s.cron.AddFunc(s.cfg.CronSpec, s.run); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Str("cron", s.cfg.CronSpec).Str("group", s.cfg.GroupChatID).Msg("reminder scheduler started")
	return nil
}

// Stop halts the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := s.clock.Now()
	games, err := s.games.ListUpcoming(ctx, now)
	if err != nil {
		log.Error().Err(err).Msg("reminder scheduler failed to load upcoming games")
		return
	}

	for _, game := range games {
		start, ok := schedule.StartsAt(game)
		if !ok || start.Before(now) || start.After(now.Add(s.cfg.Lookahead)) {
			continue
		}

		result, err := s.dispatcher.Dispatch(ctx, DispatchRequest{
			GameID:      game.ID.String(),
			GroupChatID: s.cfg.GroupChatID,
		})
		if err != nil {
			log.Error().Err(err).Str("game", game.Title).Msg("scheduled reminder failed")
			continue
		}
		log.Info().Str("game", game.Title).Int("sent", result.Sent).Msg("scheduled reminder dispatched")
	}
}
