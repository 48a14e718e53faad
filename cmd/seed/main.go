package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/config"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/contact"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/db"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/invoice"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
)

type seedInvoice struct {
	Number       string
	Email        string
	Name         string
	ServiceTitle string
	Amount       int64
	DueDate      string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	invoices := []seedInvoice{
		{Number: "INV-1001", Email: "m.alvarez@example.com", Name: "Maria Alvarez", ServiceTitle: "AC Tune-Up", Amount: 14900, DueDate: "2026-09-15"},
		{Number: "INV-1002", Email: "j.okafor@example.com", Name: "James Okafor", ServiceTitle: "Water Heater Replacement", Amount: 189500, DueDate: "2026-09-20"},
		{Number: "INV-1003", Email: "m.alvarez@example.com", Name: "Maria Alvarez", ServiceTitle: "Solar Panel Inspection", Amount: 8900, DueDate: ""},
	}

	invoiceRepo := invoice.NewRepository(cols.Invoices, cols.Counters)
	seededInvoices := 0
	for _, s := range invoices {
		count, err := cols.Invoices.CountDocuments(ctx, bson.M{"invoiceNumber": s.Number})
		if err != nil {
			log.Fatal(err)
		}
		if count > 0 {
			continue
		}
		_, err = invoiceRepo.Create(ctx, models.Invoice{
			InvoiceNumber: s.Number,
			CustomerEmail: s.Email,
			CustomerName:  s.Name,
			ServiceTitle:  s.ServiceTitle,
			Amount:        s.Amount,
			Status:        models.InvoiceStatusUnpaid,
			DueDate:       s.DueDate,
			CreatedAt:     time.Now().In(cfg.Timezone),
		})
		if err != nil {
			log.Fatal(err)
		}
		seededInvoices++
	}

	contactRepo := contact.NewRepository(cols.ContactMessages, cols.Counters)
	seededContacts := 0
	count, err := cols.ContactMessages.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatal(err)
	}
	if count == 0 {
		_, err = contactRepo.Create(ctx, models.ContactMessage{
			Name:      "Dana Whitfield",
			Phone:     "+15035550142",
			Email:     "d.whitfield@example.com",
			Message:   "Looking for a quote on a ductless mini-split for a 900 sq ft addition.",
			CreatedAt: time.Now().In(cfg.Timezone),
		})
		if err != nil {
			log.Fatal(err)
		}
		seededContacts++
	}

	log.Printf("seed complete: %d invoices, %d contacts", seededInvoices, seededContacts)
}
