package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atik94/mobile-resale-market-server/internal/auth"
	"github.com/atik94/mobile-resale-market-server/internal/config"
	"github.com/atik94/mobile-resale-market-server/internal/handler"
	"github.com/atik94/mobile-resale-market-server/internal/repository"
	"github.com/atik94/mobile-resale-market-server/internal/service"
	"github.com/atik94/mobile-resale-market-server/internal/service/stripe"
	"github.com/atik94/mobile-resale-market-server/internal/telemetry"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Setup Tracing
	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		Exporter:     cfg.Telemetry.Exporter,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Error("failed to flush traces", "err", err)
		}
	}()

	// 3. Setup Database
	dbPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	store := repository.NewStore(dbPool)
	if err := store.Ping(ctx); err != nil {
		return err
	}
	log.Info("connected to database")

	if cfg.Migrate {
		if err := store.Migrate(ctx); err != nil {
			return err
		}
	}

	// 4. Setup Logic
	userRepo := repository.NewUserRepository(store)
	catalogRepo := repository.NewCatalogRepository(store)
	bookingRepo := repository.NewBookingRepository(store)

	issuer := auth.NewIssuer(cfg.AccessTokenSecret, cfg.AccessTokenTTL)

	stripeClient := stripe.NewClient(stripe.Config{
		APIURL:    cfg.Stripe.APIURL,
		SecretKey: cfg.Stripe.SecretKey,
		Transport: telemetry.Transport(nil),
	})

	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, issuer)
	catalogService := service.NewCatalogService(catalogRepo)
	bookingService := service.NewBookingService(bookingRepo, stripeClient)
	statsService := service.NewStatsService(userRepo, catalogRepo, bookingRepo)

	h := handler.NewHandler(
		handler.Options{
			Logger:         log,
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Tokens:         issuer,
			Roles:          userService,
			Health:         store,
		},
		handler.Handlers{
			Auth:     handler.NewAuthHandler(authService, log),
			Users:    handler.NewUserHandler(userService, log),
			Catalog:  handler.NewCatalogHandler(catalogService, log),
			Bookings: handler.NewBookingHandler(bookingService, log),
			Stats:    handler.NewStatsHandler(statsService, log),
		},
	)

	// 5. Setup Server
	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           telemetry.Middleware(cfg.Telemetry.ServiceName)(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 6. Run Server with Graceful Shutdown
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server exiting")
	return nil
}
