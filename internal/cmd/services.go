package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/yayazuqui-hub/court-priority-play-52/clients/greenapi"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/notifications"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/profiles"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/reminders"
	"github.com/yayazuqui-hub/court-priority-play-52/internal/schedule"
)

// Services holds the wired HTTP handlers and the optional reminder job
type Services struct {
	Games         *schedule.Handler
	Reminders     *reminders.Handler
	Notifications *notifications.Handler
	Scheduler     *reminders.Scheduler
}

func setupServices(db *sql.DB, cfg *Config) *Services {
	clock := clockwork.NewRealClock()

	scheduleRepo := schedule.NewRepository(db)
	profileRepo := profiles.NewRepository(db)
	logRepo := notifications.NewLogRepository(db)

	// default gateway credentials come from the environment, never the
	// config file
	defaults := notifications.Credentials{
		IDInstance: getEnv("GREEN_API_ID_INSTANCE", ""),
		APIToken:   getEnv("GREEN_API_ACCESS_TOKEN", ""),
	}
	client := greenapi.NewClient(cfg.Notifications.BaseURL)
	gateway := notifications.NewGateway(client, logRepo, defaults)

	dispatcher := reminders.NewDispatcher(scheduleRepo, profileRepo, gateway, clock)

	services := &Services{
		Games:         schedule.NewHandler(scheduleRepo, scheduleRepo, clock),
		Reminders:     reminders.NewHandler(dispatcher),
		Notifications: notifications.NewHandler(gateway, logRepo),
	}

	switch {
	case cfg.Reminders.Enabled && cfg.Reminders.GroupChatID == "":
		// automatic dispatch is group-only; without a group id it would
		// broadcast to every registered contact
		log.Warn().Msg("reminders enabled without a group_chat_id, scheduler disabled")
	case cfg.Reminders.Enabled:
		services.Scheduler = reminders.NewScheduler(dispatcher, scheduleRepo, reminders.SchedulerConfig{
			CronSpec:    cfg.Reminders.Cron,
			GroupChatID: cfg.Reminders.GroupChatID,
			Lookahead:   cfg.reminderLookahead(),
		}, clock)
	}

	return services
}
