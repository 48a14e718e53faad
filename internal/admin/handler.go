package admin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/auth"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/config"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/httpx"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/middleware"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/transport"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/validation"
)

const refreshCookieName = "bmh_refresh"

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	Status string `json:"status"`
}

// Handler owns the shared-secret admin session: one password, jwt cookies.
type Handler struct {
	cfg     *config.Config
	manager *auth.Manager
	val     *validation.Validator
	log     *slog.Logger
}

func NewHandler(cfg *config.Config, manager *auth.Manager, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{cfg: cfg, manager: manager, val: val, log: log}
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req LoginRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin login: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("admin login: validation error")
		transport.WriteValidationError(w, httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	if h.manager == nil || (h.cfg.AdminPassword == "" && h.cfg.AdminPasswordHash == "") {
		log.Warn("admin login: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}

	if !auth.VerifyAdminPassword(h.cfg.AdminPasswordHash, h.cfg.AdminPassword, req.Password) {
		log.Warn("admin login: invalid credentials")
		transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	accessToken, err := h.manager.NewAccessToken()
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}
	refreshToken, err := h.manager.NewRefreshToken()
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	h.setSessionCookies(w, accessToken, refreshToken)
	log.Info("admin login: ok")
	transport.WriteJSON(w, http.StatusOK, SessionResponse{Status: "ok"})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	if h.manager == nil {
		log.Warn("admin refresh: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}

	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		log.Warn("admin refresh: missing refresh token")
		transport.WriteError(w, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}

	claims, err := h.manager.Parse(cookie.Value)
	if err != nil || !claims.IsAdmin() {
		log.Warn("admin refresh: invalid refresh token")
		transport.WriteError(w, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}

	accessToken, err := h.manager.NewAccessToken()
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}
	refreshToken, err := h.manager.NewRefreshToken()
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	h.setSessionCookies(w, accessToken, refreshToken)
	log.Info("admin refresh: ok")
	transport.WriteJSON(w, http.StatusOK, SessionResponse{Status: "ok"})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	h.clearSessionCookies(w)
	log.Info("admin logout: ok")
	transport.WriteJSON(w, http.StatusOK, SessionResponse{Status: "ok"})
}

func (h *Handler) setSessionCookies(w http.ResponseWriter, access, refresh string) {
	accessTTL := time.Duration(h.cfg.AccessTTLMinutes) * time.Minute
	refreshTTL := time.Duration(h.cfg.RefreshTTLMinutes) * time.Minute

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessCookieName,
		Value:    access,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(accessTTL.Seconds()),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refresh,
		Path:     "/api/admin",
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(refreshTTL.Seconds()),
	})
}

func (h *Handler) clearSessionCookies(w http.ResponseWriter) {
	expire := time.Now().Add(-1 * time.Hour)
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expire,
		MaxAge:   -1,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/admin",
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expire,
		MaxAge:   -1,
	})
}
