package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"marketrate-backend/internal/config"
	"marketrate-backend/internal/database"
	"marketrate-backend/internal/handlers"
	"marketrate-backend/internal/metrics"
	custommiddleware "marketrate-backend/internal/middleware"
	"marketrate-backend/internal/models"
	"marketrate-backend/internal/notify"
	"marketrate-backend/internal/quality"
	"marketrate-backend/internal/repository"
)

func main() {
	// Load .env (ignore error in production, env vars set directly)
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := database.Connect(cfg.Database.Dsn())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to database", "host", cfg.Database.Host, "name", cfg.Database.Name)

	// Repositories
	buyerRepo := repository.NewBuyerRepo(db)
	sellerRepo := repository.NewSellerRepo(db)
	productRepo := repository.NewProductRepo(db)
	listingRepo := repository.NewSellerProductRepo(db)
	feedbackRepo := repository.NewFeedbackRepo(db)
	flagRepo := repository.NewFlagRepo(db)
	userRepo := repository.NewUserRepo(db)

	// Quality engine
	engine := quality.NewEngine(feedbackRepo, listingRepo, flagRepo)

	// Alert notifier: Resend when configured, log-only otherwise
	var notifier notify.Notifier
	if cfg.Resend.APIKey != "" {
		notifier = notify.NewEmailNotifier(cfg.Resend.APIKey, cfg.Resend.FromEmail, cfg.Resend.AlertEmail)
	} else {
		slog.Warn("RESEND_API_KEY not set, flag alerts are logged only")
		notifier = notify.NewMockNotifier()
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	catalogHandler := handlers.NewCatalogHandler(buyerRepo, sellerRepo, productRepo, listingRepo)
	feedbackHandler := handlers.NewFeedbackHandler(buyerRepo, sellerRepo, productRepo, listingRepo, feedbackRepo, engine, notifier)
	productHandler := handlers.NewProductHandler(productRepo, engine)
	sellerHandler := handlers.NewSellerHandler(sellerRepo, productRepo, feedbackRepo, engine)
	flagHandler := handlers.NewFlagHandler(flagRepo, productRepo, listingRepo, engine)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestID)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"marketrate-backend"}`))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Login rate limited per IP: 5 burst, refill one every 2 minutes
		r.With(custommiddleware.RateLimit(rate.Every(2*time.Minute), 5)).
			Post("/auth/login", authHandler.Login)
		r.Post("/auth/seed-admin", authHandler.SeedAdmin)

		r.Post("/buyers", catalogHandler.CreateBuyer)
		r.Post("/sellers", catalogHandler.CreateSeller)
		r.Post("/products", catalogHandler.CreateProduct)
		r.Post("/seller-products", catalogHandler.CreateListing)

		r.Post("/feedback", feedbackHandler.SubmitFeedback)
		r.Get("/feedback", feedbackHandler.ListFeedback)

		r.Get("/products/{id}/feedback", productHandler.ProductFeedback)
		r.Get("/products/{id}/recommendations", productHandler.Recommendations)
		r.Get("/products/{id}/sellers", productHandler.Sellers)

		r.Get("/sellers/{id}/products", sellerHandler.SellerProducts)
		r.Get("/sellers/{id}/products/{productID}/feedback", sellerHandler.SellerProductFeedback)

		// Flag administration (admin only)
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.JWTAuth(cfg.JWTSecret))
			r.Use(custommiddleware.RequireRole(models.RoleAdmin))

			r.Get("/flags", flagHandler.ListFlags)
			r.Patch("/flags/{id}", flagHandler.UpdateFlag)
			r.Post("/flags/scan", flagHandler.TriggerScan)
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("marketrate backend starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	slog.Info("shutting down", "signal", s.String())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
