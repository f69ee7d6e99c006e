package main

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func setupServer(services *Services, cfg *Config) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware. Preflight answers 200 with permissive
	// headers, matching what the web client expects.
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedOrigins:       []string{"*"},
		AllowedHeaders:       []string{"*"},
		OptionsSuccessStatus: http.StatusOK,
	})

	registerRoutes(mux, services)
	setupHealthCheck(mux)

	handler := c.Handler(mux)

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", getEnv("PORT", cfg.Server.Port)),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}
}

func registerRoutes(mux *http.ServeMux, services *Services) {
	services.Games.RegisterRoutes(mux)
	services.Reminders.RegisterRoutes(mux)
	services.Notifications.RegisterRoutes(mux)
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
}
