package invoice

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/validation"
)

func newTestRouter(repo Repository) *chi.Mux {
	h := NewHandler(
		NewService(repo, time.UTC),
		validation.New(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		nil,
	)

	r := chi.NewRouter()
	r.Get("/api/invoices/lookup", h.Lookup)
	r.Post("/api/invoices/{invoiceNumber}/pay", h.Pay)
	r.Post("/api/admin/invoices", h.AdminCreate)
	return r
}

func seedInvoice(t *testing.T, repo Repository, number, email string, amount int64) {
	t.Helper()
	_, err := repo.Create(context.Background(), models.Invoice{
		InvoiceNumber: number,
		CustomerEmail: email,
		CustomerName:  "Maria Alvarez",
		ServiceTitle:  "AC Tune-Up",
		Amount:        amount,
		Status:        models.InvoiceStatusUnpaid,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
}

func TestLookupMissingQuery(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/invoices/lookup", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLookupEmailNoMatches(t *testing.T) {
	repo := newFakeRepo()
	seedInvoice(t, repo, "INV-1", "m.alvarez@example.com", 14900)
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/invoices/lookup?email=nobody@example.com", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestLookupByNumberReturnsArray(t *testing.T) {
	repo := newFakeRepo()
	seedInvoice(t, repo, "INV-1", "m.alvarez@example.com", 14900)
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/invoices/lookup?invoiceNumber=INV-1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var items []models.Invoice
	if err := json.NewDecoder(rec.Body).Decode(&items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 || items[0].InvoiceNumber != "INV-1" {
		t.Fatalf("unexpected payload: %+v", items)
	}
}

func TestLookupUnknownNumber(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/invoices/lookup?invoiceNumber=INV-404", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPayEndpoint(t *testing.T) {
	repo := newFakeRepo()
	seedInvoice(t, repo, "INV-500", "m.alvarez@example.com", 15000)
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/invoices/INV-500/pay", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var paid models.Invoice
	if err := json.NewDecoder(rec.Body).Decode(&paid); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if paid.Status != models.InvoiceStatusPaid {
		t.Fatalf("expected paid, got %q", paid.Status)
	}
	if paid.PaidAt == nil {
		t.Fatalf("paidAt not set")
	}
	if paid.Amount != 15000 {
		t.Fatalf("amount changed: %d", paid.Amount)
	}
}

func TestPayUnknownInvoice(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/invoices/INV-404/pay", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminCreateAndDuplicate(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo)

	body := `{"invoiceNumber":"INV-500","customerEmail":"m.alvarez@example.com","customerName":"Maria Alvarez","serviceTitle":"AC Tune-Up","amount":15000}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/invoices", bytes.NewBufferString(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/invoices", bytes.NewBufferString(body)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminCreateValidation(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	body := `{"invoiceNumber":"","customerEmail":"not-an-email","customerName":"","serviceTitle":"","amount":-1}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/invoices", bytes.NewBufferString(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
