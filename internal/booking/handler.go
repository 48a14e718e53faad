package booking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/cache"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/httpx"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/middleware"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/reminder"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/transport"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/validation"
)

type Handler struct {
	service   *Service
	scheduler *reminder.Scheduler
	val       *validation.Validator
	log       *slog.Logger
	cache     cache.Cache
}

func NewHandler(service *Service, scheduler *reminder.Scheduler, val *validation.Validator, log *slog.Logger, c cache.Cache) *Handler {
	return &Handler{
		service:   service,
		scheduler: scheduler,
		val:       val,
		log:       log,
		cache:     c,
	}
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
		log.Warn("bookings create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("bookings create: validation error")
		transport.WriteValidationError(w, httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	created, err := h.service.Create(ctx, req)
	if err != nil {
		log.Error("bookings create: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	if h.cache != nil {
		_ = h.cache.Delete(r.Context(), cache.StatsKey)
	}

	// Best effort: the booking response never waits on, or fails with,
	// reminder scheduling.
	go func(b models.Booking) {
		schedCtx, schedCancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer schedCancel()
		h.scheduler.ScheduleForBooking(schedCtx, b)
	}(created)

	log.Info("bookings create: ok",
		slog.Int64("booking_id", created.ID),
		slog.String("service_id", created.ServiceID),
		slog.String("preferred_date", created.PreferredDate),
	)
	transport.WriteJSON(w, http.StatusCreated, created)
}

// List serves the public read path, optionally filtered by customer email.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	email := strings.TrimSpace(r.URL.Query().Get("email"))

	limit, offset, err := httpx.ParseLimitOffset(r.URL.Query())
	if err != nil {
		log.Warn("bookings list: invalid pagination")
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	var items []models.Booking
	if email != "" {
		items, err = h.service.ListByEmail(ctx, email)
	} else {
		items, err = h.service.List(ctx, limit, offset)
	}
	if err != nil {
		log.Error("bookings list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	log.Info("bookings list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Warn("admin bookings status: invalid id")
		transport.WriteError(w, http.StatusBadRequest, "invalid id", nil)
		return
	}

	var req StatusUpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin bookings status: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("admin bookings status: validation error")
		transport.WriteValidationError(w, httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	updated, err := h.service.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			transport.WriteValidationError(w, map[string]string{"status": "oneof"})
			return
		}
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin bookings status: not found", slog.Int64("booking_id", id))
			transport.WriteNotFound(w, "booking not found")
			return
		}
		log.Error("admin bookings status: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	if h.cache != nil {
		_ = h.cache.Delete(r.Context(), cache.StatsKey)
	}

	log.Info("admin bookings status: ok", slog.Int64("booking_id", id), slog.String("status", updated.Status))
	transport.WriteJSON(w, http.StatusOK, updated)
}

// AdminList returns bookings newest first, with limit/offset paging.
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	limit, offset, err := httpx.ParseLimitOffset(r.URL.Query())
	if err != nil {
		log.Warn("admin bookings list: invalid pagination")
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := h.service.List(ctx, limit, offset)
	if err != nil {
		log.Error("admin bookings list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	log.Info("admin bookings list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}
