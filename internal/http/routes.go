package httpx

import (
	"log/slog"
	"net/http"

	"github.com/serverside-ltd/portal-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth    *service.AuthService
	Games   *service.GameService
	Players *service.PlayerService
	Users   *service.UserService

	// Redirect targets for the login flow.
	SuccessURL string
	ErrorURL   string

	Logger *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:        services.Auth,
		SuccessURL: services.SuccessURL,
		ErrorURL:   services.ErrorURL,
		Logger:     services.Logger,
	}
	gameHandlers := &GameHandlers{Svc: services.Games}
	playerHandlers := &PlayerHandlers{Svc: services.Players}
	userHandlers := &UserHandlers{Svc: services.Users}

	mux.Handle("GET /auth/discord", http.HandlerFunc(authHandlers.LoginDiscord))
	mux.Handle("GET /auth/verify-discord", http.HandlerFunc(authHandlers.VerifyDiscord))

	mux.Handle("POST /save-game", http.HandlerFunc(gameHandlers.Save))
	mux.Handle("GET /games", http.HandlerFunc(gameHandlers.List))

	mux.Handle("GET /user", http.HandlerFunc(userHandlers.Get))
	mux.Handle("PUT /name", http.HandlerFunc(userHandlers.UpdateName))

	mux.Handle("POST /player", http.HandlerFunc(playerHandlers.Create))
	mux.Handle("POST /player/delete", http.HandlerFunc(playerHandlers.Delete))
	mux.Handle("GET /player/get", http.HandlerFunc(playerHandlers.ListByOwner))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return CORS()(mux)
}
