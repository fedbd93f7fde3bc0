package handlers

import (
	"encoding/json"
	"net/http"

	"PassVault/internal/config"
	"PassVault/internal/middleware"
	"PassVault/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	vaultService *service.VaultService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	vaultHandler := NewVaultHandler(vaultService, logger, config)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/logout", userHandler.Logout)
	r.Post("/api/user/whoami", userHandler.Whoami)
	r.Post("/api/user/reset", userHandler.RequestReset)
	r.Post("/api/user/reset/confirm", userHandler.ConfirmReset)

	// Vault routes
	r.Post("/api/vault", vaultHandler.Create)
	r.Delete("/api/vault/{id}", vaultHandler.Delete)
	r.Get("/api/vault", vaultHandler.List)
	r.Get("/api/vault/subscribe", vaultHandler.Subscribe)

	return &Handler{Router: r}
}

// writeJSON сериализует v в тело ответа с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError отдаёт человекочитаемое сообщение об ошибке.
// Формы аутентификации показывают его дословно.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
