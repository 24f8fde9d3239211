package main

import (
	"net/http"

	"github.com/rs/cors"

	"nightshift/config"
	"nightshift/handlers"
)

// SetupRoutes registers the API on mux and returns it wrapped with request
// logging and CORS for the separately served UI.
func SetupRoutes(mux *http.ServeMux, app *handlers.App, cfg config.Config, configPath string) http.Handler {
	handlers.Register(mux, app)

	mux.HandleFunc("GET /api/config", GetConfigHandler())
	mux.HandleFunc("POST /api/config", SaveConfigHandler(configPath))

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
	})
	return c.Handler(LoggingMiddleware(mux))
}
