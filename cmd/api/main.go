package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/admin"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/auth"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/booking"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/cache"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/config"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/contact"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/dashboard"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/db"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/invoice"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/middleware"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/notifications"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/reminder"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "bernardino-martin-hvac",
		}
	}

	val := validation.New()
	notifier := notifications.NewLogNotifier(logger)

	reminderRepo := reminder.NewRepository(cols.Reminders, cols.Counters)
	scheduler := reminder.NewScheduler(reminderRepo, cacheStore, logger, cfg.Timezone, cfg.DefaultApptHour)
	engine := reminder.NewEngine(reminderRepo, notifier, cacheStore, logger, time.Duration(cfg.ReminderIntervalSec)*time.Second)
	reminderHandler := reminder.NewHandler(reminderRepo, logger)

	bookingRepo := booking.NewRepository(cols.Bookings, cols.Counters)
	bookingService := booking.NewService(bookingRepo, cfg.Timezone)
	bookingHandler := booking.NewHandler(bookingService, scheduler, val, logger, cacheStore)

	contactRepo := contact.NewRepository(cols.ContactMessages, cols.Counters)
	contactService := contact.NewService(contactRepo, cfg.Timezone)
	contactHandler := contact.NewHandler(contactService, val, logger, cacheStore)

	invoiceRepo := invoice.NewRepository(cols.Invoices, cols.Counters)
	invoiceService := invoice.NewService(invoiceRepo, cfg.Timezone)
	invoiceHandler := invoice.NewHandler(invoiceService, val, logger, cacheStore)

	dashboardRepo := dashboard.NewRepository(cols)
	dashboardService := dashboard.NewService(dashboardRepo)
	dashboardHandler := dashboard.NewHandler(dashboardService, logger, cacheStore, time.Duration(cfg.StatsCacheTTLSec)*time.Second)

	adminHandler := admin.NewHandler(cfg, jwtManager, val, logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	bookingsLimiter := middleware.NewRateLimiter(cfg.RateLimitBookings, time.Duration(cfg.RateLimitWindowSec)*time.Second)
	contactLimiter := middleware.NewRateLimiter(cfg.RateLimitContact, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	r.Route("/api", func(api chi.Router) {
		api.With(bookingsLimiter.Middleware).Post("/bookings", bookingHandler.Create)
		api.Get("/bookings", bookingHandler.List)
		api.With(contactLimiter.Middleware).Post("/contact", contactHandler.Create)
		api.Get("/invoices/lookup", invoiceHandler.Lookup)
		api.Post("/invoices/{invoiceNumber}/pay", invoiceHandler.Pay)
		api.Get("/reminders", reminderHandler.ListByEmail)

		api.Route("/admin", func(adm chi.Router) {
			adm.Post("/login", adminHandler.Login)
			adm.Post("/refresh", adminHandler.Refresh)
			adm.Post("/logout", adminHandler.Logout)

			// chi: middleware must attach before routes, hence the sub-group.
			adm.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(cfg.AdminAPIKey, jwtManager))
				protected.Get("/bookings", bookingHandler.AdminList)
				protected.Patch("/bookings/{id}/status", bookingHandler.AdminUpdateStatus)
				protected.Post("/invoices", invoiceHandler.AdminCreate)
				protected.Get("/reminders", reminderHandler.AdminList)
				protected.Get("/contacts", contactHandler.AdminList)
				protected.Get("/stats", dashboardHandler.AdminStats)
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	engine.Start()

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	engine.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
