package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"PassVault/internal/config"
	"PassVault/internal/middleware"
	"PassVault/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VaultHandler обрабатывает CRUD и подписку на записи хранилища.
type VaultHandler struct {
	VaultService *service.VaultService
	Logger       *zap.SugaredLogger
	Config       *config.Config
}

// NewVaultHandler создаёт хендлер хранилища
func NewVaultHandler(vaultService *service.VaultService, logger *zap.SugaredLogger, cfg *config.Config) *VaultHandler {
	return &VaultHandler{VaultService: vaultService, Logger: logger, Config: cfg}
}

// CreateRecordRequest — тело добавления записи.
// Владелец и метка времени назначаются сервером, клиент их не присылает.
type CreateRecordRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

// Create добавляет запись в партицию текущего пользователя.
func (h *VaultHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Create: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	rec, err := h.VaultService.Add(r.Context(), userID, req.Name, req.Username, req.Secret)
	if err != nil {
		h.Logger.Errorw("Create: service error", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":         rec.ID,
		"created_at": rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
}

// Delete удаляет запись текущего пользователя по id.
func (h *VaultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.VaultService.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// чужая или несуществующая запись выглядят одинаково
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		h.Logger.Errorw("Delete: service error", "user_id", userID, "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "ok"})
}

// List возвращает разовый снапшот партиции текущего пользователя.
func (h *VaultHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	recs, err := h.VaultService.List(r.Context(), userID)
	if err != nil {
		h.Logger.Errorw("List: service error", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// Subscribe — длинная SSE-подписка: полный снапшот партиции при подключении
// и после каждого изменения, до разрыва соединения клиентом.
func (h *VaultHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	changes, unsubscribe := h.VaultService.Watch(userID)
	defer unsubscribe()

	// снапшот сразу при подключении, затем по каждому сигналу
	if !h.pushSnapshot(w, flusher, r, userID) {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case <-changes:
			if !h.pushSnapshot(w, flusher, r, userID) {
				return
			}
		}
	}
}

// pushSnapshot пишет одно SSE-событие с полным снапшотом. false — соединение пора закрывать.
func (h *VaultHandler) pushSnapshot(w http.ResponseWriter, flusher http.Flusher, r *http.Request, userID int64) bool {
	recs, err := h.VaultService.List(r.Context(), userID)
	if err != nil {
		h.Logger.Errorw("Subscribe: snapshot error", "user_id", userID, "error", err)
		return false
	}
	payload, err := json.Marshal(recs)
	if err != nil {
		h.Logger.Errorw("Subscribe: marshal error", "user_id", userID, "error", err)
		return false
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return false
	}
	flusher.Flush()
	return true
}
