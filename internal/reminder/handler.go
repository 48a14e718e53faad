package reminder

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/middleware"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/transport"
)

type Handler struct {
	repo Repository
	log  *slog.Logger
}

func NewHandler(repo Repository, log *slog.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}

// ListByEmail serves the customer portal's reminder view.
func (h *Handler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		log.Warn("reminders list: missing email")
		transport.WriteError(w, http.StatusBadRequest, "email is required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := h.repo.ListByEmail(ctx, email)
	if err != nil {
		log.Error("reminders list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	log.Info("reminders list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}

// AdminList returns all reminders, optionally filtered by status.
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	if status != "" && status != models.ReminderStatusPending && status != models.ReminderStatusSent {
		log.Warn("admin reminders list: invalid status", slog.String("status", status))
		transport.WriteError(w, http.StatusBadRequest, "invalid query", map[string]string{"status": "oneof"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := h.repo.List(ctx, ListFilter{Status: status})
	if err != nil {
		log.Error("admin reminders list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	log.Info("admin reminders list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}
