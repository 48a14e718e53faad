package contact

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/cache"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/httpx"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/middleware"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/transport"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/validation"
)

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
	cache   cache.Cache
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger, c cache.Cache) *Handler {
	return &Handler{service: service, val: val, log: log, cache: c}
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("contact create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("contact create: validation error")
		transport.WriteValidationError(w, httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := h.service.Create(ctx, req)
	if err != nil {
		log.Error("contact create: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	if h.cache != nil {
		_ = h.cache.Delete(r.Context(), cache.StatsKey)
	}

	log.Info("contact create: stored", slog.Int64("contact_id", created.ID))
	transport.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := h.service.List(ctx)
	if err != nil {
		log.Error("admin contacts list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	log.Info("admin contacts list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}
