package invoice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/cache"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/httpx"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/middleware"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
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

// Lookup resolves an invoice by number or all invoices for an email.
// Both modes answer with an array so the portal renders one shape.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	invoiceNumber := strings.TrimSpace(r.URL.Query().Get("invoiceNumber"))
	email := strings.TrimSpace(r.URL.Query().Get("email"))

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if invoiceNumber != "" {
		inv, err := h.service.LookupByNumber(ctx, invoiceNumber)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				log.Warn("invoices lookup: not found", slog.String("invoice_number", invoiceNumber))
				transport.WriteNotFound(w, "invoice not found")
				return
			}
			log.Error("invoices lookup: database error", slog.String("error", err.Error()))
			transport.WriteServerError(w)
			return
		}
		log.Info("invoices lookup: ok", slog.String("invoice_number", invoiceNumber))
		transport.WriteJSON(w, http.StatusOK, []models.Invoice{inv})
		return
	}

	if email != "" {
		items, err := h.service.LookupByEmail(ctx, email)
		if err != nil {
			log.Error("invoices lookup: database error", slog.String("error", err.Error()))
			transport.WriteServerError(w)
			return
		}
		if len(items) == 0 {
			log.Warn("invoices lookup: none for email")
			transport.WriteNotFound(w, "no invoices found for this email")
			return
		}
		log.Info("invoices lookup: ok", slog.Int("count", len(items)))
		transport.WriteJSON(w, http.StatusOK, items)
		return
	}

	log.Warn("invoices lookup: missing query")
	transport.WriteError(w, http.StatusBadRequest, "provide an invoice number or email", nil)
}

func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	invoiceNumber := strings.TrimSpace(chi.URLParam(r, "invoiceNumber"))
	if invoiceNumber == "" {
		log.Warn("invoices pay: missing invoice number")
		transport.WriteError(w, http.StatusBadRequest, "missing invoice number", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	paid, err := h.service.Pay(ctx, invoiceNumber)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("invoices pay: not found", slog.String("invoice_number", invoiceNumber))
			transport.WriteNotFound(w, "invoice not found")
			return
		}
		log.Error("invoices pay: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	if h.cache != nil {
		_ = h.cache.Delete(r.Context(), cache.StatsKey)
	}

	log.Info("invoices pay: ok", slog.String("invoice_number", invoiceNumber), slog.Int64("amount", paid.Amount))
	transport.WriteJSON(w, http.StatusOK, paid)
}

func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin invoices create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("admin invoices create: validation error")
		transport.WriteValidationError(w, httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	created, err := h.service.Create(ctx, req)
	if err != nil {
		if errors.Is(err, ErrDuplicateNumber) {
			log.Warn("admin invoices create: duplicate number", slog.String("invoice_number", req.InvoiceNumber))
			transport.WriteError(w, http.StatusBadRequest, "invoice number already exists", map[string]string{"invoiceNumber": "unique"})
			return
		}
		log.Error("admin invoices create: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	if h.cache != nil {
		_ = h.cache.Delete(r.Context(), cache.StatsKey)
	}

	log.Info("admin invoices create: ok",
		slog.String("invoice_number", created.InvoiceNumber),
		slog.Int64("amount", created.Amount),
	)
	transport.WriteJSON(w, http.StatusCreated, created)
}
