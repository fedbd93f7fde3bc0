package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"PassVault/internal/config"
	"PassVault/internal/middleware"
	"PassVault/internal/service"

	"go.uber.org/zap"
)

// UserHandler обрабатывает регистрацию, вход и восстановление пароля.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewUserHandler создаёт хендлер пользователей
func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

// CredentialsRequest — тело register/login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IdentityResponse — идентичность, которую видит клиент.
type IdentityResponse struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// Register создаёт учётную запись и сразу аутентифицирует её (auth-cookie в ответе).
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := h.UserService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		h.Logger.Errorw("Register: service error", "email", req.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := middleware.SetLoginCookie(w, u.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Register: failed to set auth cookie", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, IdentityResponse{UserID: u.ID, Email: u.Email})
}

// Login аутентифицирует по email/паролю.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.Logger.Errorw("Login: service error", "email", req.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := middleware.SetLoginCookie(w, u.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Login: failed to set auth cookie", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, IdentityResponse{UserID: u.ID, Email: u.Email})
}

// Logout сбрасывает auth-cookie.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"result": "ok"})
}

// Whoami возвращает текущую идентичность или anonymous.
// Клиентский session gate опирается на этот ответ при старте.
func (h *UserHandler) Whoami(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]string{"result": "anonymous"})
		return
	}

	u, err := h.UserService.GetByID(r.Context(), userID)
	if err != nil {
		// токен валиден, но пользователя больше нет — считаем анонимом
		h.Logger.Warnw("Whoami: user not found", "user_id", userID, "error", err)
		writeJSON(w, http.StatusOK, map[string]string{"result": "anonymous"})
		return
	}
	writeJSON(w, http.StatusOK, IdentityResponse{UserID: u.ID, Email: u.Email})
}

// ResetRequest — тело запроса восстановления пароля.
type ResetRequest struct {
	Email string `json:"email"`
}

// RequestReset создаёт токен восстановления и отправляет письмо.
// Ответ одинаков для известного и неизвестного email.
func (h *UserHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.UserService.RequestReset(r.Context(), req.Email); err != nil {
		h.Logger.Errorw("RequestReset: service error", "email", req.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "reset email sent if the account exists"})
}

// ConfirmResetRequest — тело подтверждения восстановления.
type ConfirmResetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ConfirmReset меняет пароль по одноразовому токену.
func (h *UserHandler) ConfirmReset(w http.ResponseWriter, r *http.Request) {
	var req ConfirmResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "token and password are required")
		return
	}

	if err := h.UserService.ConfirmReset(r.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, service.ErrBadResetToken) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Errorw("ConfirmReset: service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "password updated"})
}
