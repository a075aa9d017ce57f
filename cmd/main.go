package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/golf-admin/config"
	"github.com/Dosada05/golf-admin/dashboard"
	_ "github.com/Dosada05/golf-admin/docs"
	"github.com/Dosada05/golf-admin/handlers"
	"github.com/Dosada05/golf-admin/metrics"
	"github.com/Dosada05/golf-admin/middleware"
	"github.com/Dosada05/golf-admin/realtime"
	"github.com/Dosada05/golf-admin/repositories"
	api "github.com/Dosada05/golf-admin/routes"
	"github.com/Dosada05/golf-admin/services"
	"github.com/Dosada05/golf-admin/storage"
	"github.com/Dosada05/golf-admin/wizard"
)

const (
	wizardSweepInterval = time.Minute
	shutdownTimeout     = 15 * time.Second
)

// @title Golf Tournament Admin API
// @version 1.0
// @description Backend for the golf tournament admin dashboard and public registration form.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("api_base_url", cfg.APIBaseURL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	client, err := repositories.NewClient(cfg.APIBaseURL, cfg.APITimeout, m, logger)
	if err != nil {
		logger.Error("failed to create API client", slog.Any("error", err))
		os.Exit(1)
	}

	// Archiving exports is optional.
	var uploader storage.FileUploader
	r2cfg := storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
	if r2cfg.Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, r2cfg)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	}

	var checkout services.CheckoutService
	if cfg.StripeSecretKey != "" {
		checkout, err = services.NewStripeCheckout(services.StripeCheckoutConfig{
			SecretKey:    cfg.StripeSecretKey,
			SuccessURL:   cfg.PublicURL + "/api/v1/registration/{REGISTRATION_ID}/complete?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:    cfg.StripeCancelURL,
			// The wizard store keeps awaiting-payment wizards for the same window.
			ExpiresAfter: services.CheckoutExpiry(cfg.WizardTTL),
		})
		if err != nil {
			logger.Error("failed to configure Stripe checkout", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Stripe checkout enabled")
	}

	hub := realtime.NewHub(logger, m)

	golferRepo := repositories.NewRemoteGolferRepository(client)
	groupRepo := repositories.NewRemoteGroupRepository(client)
	tournamentRepo := repositories.NewRemoteTournamentRepository(client)
	statsRepo := repositories.NewRemoteStatsRepository(client)
	activityRepo := repositories.NewRemoteActivityRepository(client)
	raffleRepo := repositories.NewRemoteRaffleRepository(client)
	employeeRepo := repositories.NewRemoteEmployeeNumberRepository(client)

	registry := dashboard.NewRegistry()
	wizards := wizard.NewStore(cfg.WizardTTL, logger)
	wizards.SetPaymentWindow(services.CheckoutExpiry(cfg.WizardTTL))

	dashboardService := services.NewDashboardService(golferRepo, statsRepo, registry, hub, logger)
	golferService := services.NewGolferService(golferRepo, dashboardService, hub, logger)
	groupService := services.NewGroupService(groupRepo, golferRepo, tournamentRepo, hub, logger)
	liveService := services.NewLiveService(registry, statsRepo, groupService, hub, cfg.RealtimeToken, logger)
	exportService := services.NewExportService(dashboardService, groupRepo, tournamentRepo, uploader, m, logger)
	registrationService := services.NewRegistrationService(wizards, tournamentRepo, golferRepo, employeeRepo, checkout, cfg.RealtimeToken, logger)
	raffleService := services.NewRaffleService(raffleRepo, logger)
	tournamentService := services.NewTournamentService(tournamentRepo, groupService, logger)
	activityService := services.NewActivityService(activityRepo)
	employeeService := services.NewEmployeeNumberService(employeeRepo)

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Dashboard:    handlers.NewDashboardHandler(dashboardService),
		Golfer:       handlers.NewGolferHandler(golferService),
		Group:        handlers.NewGroupHandler(groupService),
		Export:       handlers.NewExportHandler(exportService),
		Registration: handlers.NewRegistrationHandler(registrationService, cfg.StripeSuccessURL),
		Raffle:       handlers.NewRaffleHandler(raffleService),
		Tournament:   handlers.NewTournamentHandler(tournamentService),
		Activity:     handlers.NewActivityHandler(activityService),
		Employee:     handlers.NewEmployeeHandler(employeeService),
		WebSocket:    handlers.NewWebSocketHandler(hub, cfg.AllowedOrigins, logger),
	}, api.Options{
		Auth:           middleware.NewAuthenticator(cfg.JWTSecretKey, logger),
		Metrics:        m,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		wizards.Run(gctx, wizardSweepInterval)
		return nil
	})
	if cfg.RealtimeURL != "" {
		sub := realtime.NewSubscription(cfg.RealtimeURL, cfg.RealtimeToken, liveService.Handlers(), logger, m)
		g.Go(func() error {
			sub.Run(gctx)
			return nil
		})
		logger.Info("realtime subscription started", slog.String("url", cfg.RealtimeURL))
	} else {
		logger.Warn("REALTIME_URL not set, dashboard updates only on manual sync")
	}
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			_ = server.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}
