package handler

import (
	"net/http"

	"wa-coach-bot/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"wa-coach-bot"}`))
	}).Methods("GET")

	gatewayHandler := NewGatewayHandler(container.Dispatcher, container.Backup, container.Logger)

	// Webhook routes, guarded by the shared gateway token when configured
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(TokenMiddleware(container.Config.GetGatewayToken()))
	api.HandleFunc("/gateway/events", gatewayHandler.HandleEvent).Methods("POST")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
