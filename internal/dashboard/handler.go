package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/cache"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/middleware"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/transport"
)

type Handler struct {
	service  *Service
	log      *slog.Logger
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewHandler(service *Service, log *slog.Logger, c cache.Cache, cacheTTL time.Duration) *Handler {
	return &Handler{service: service, log: log, cache: c, cacheTTL: cacheTTL}
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}

// AdminStats serves the dashboard snapshot. Mutating handlers delete the
// cache key, so a hit is never stale.
func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	if h.cache != nil {
		if payload, ok, err := h.cache.Get(r.Context(), cache.StatsKey); err == nil && ok {
			var stats models.DashboardStats
			if err := json.Unmarshal(payload, &stats); err == nil {
				log.Info("admin stats: cache hit")
				transport.WriteJSON(w, http.StatusOK, stats)
				return
			}
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	stats, err := h.service.Stats(ctx)
	if err != nil {
		log.Error("admin stats: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	if h.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			_ = h.cache.Set(r.Context(), cache.StatsKey, payload, h.cacheTTL)
		}
	}

	log.Info("admin stats: ok",
		slog.Int64("bookings", stats.TotalBookings),
		slog.Int64("invoices", stats.TotalInvoices),
	)
	transport.WriteJSON(w, http.StatusOK, stats)
}
