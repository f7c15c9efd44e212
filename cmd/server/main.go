package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"uptimebar/internal/auth"
	"uptimebar/internal/config"
	"uptimebar/internal/core"
	"uptimebar/internal/domain"
	"uptimebar/internal/logger"
	"uptimebar/internal/settings"
	"uptimebar/internal/status"
	"uptimebar/internal/storage/sqlite"
	"uptimebar/internal/transport/rest"
	"uptimebar/internal/transport/websocket"
	"uptimebar/internal/uptime"
)

func main() {
	// Captured before anything else so the process series starts at zero.
	processStart := time.Now()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg)

	if cfg.JWTSecret == "" {
		secret, err := domain.GenerateToken()
		if err != nil {
			log.Error("failed to generate jwt secret", "error", err)
			os.Exit(1)
		}
		cfg.JWTSecret = secret
		log.Warn("JWT_SECRET not set, generated an ephemeral one; sessions will not survive a restart")
	}

	db, err := sqlite.NewDB(cfg.DBPath, log)
	if err != nil {
		log.Error("sqlite", "connect", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("sqlite", "close", err)
		}
	}()

	userRepo := sqlite.NewUserRepository(db)
	settingsRepo := sqlite.NewSettingsRepository(db)

	authService := auth.NewService(userRepo, cfg, log)
	if err := authService.EnsureAdmin(ctx); err != nil {
		log.Error("failed to seed admin user", "error", err)
		os.Exit(1)
	}

	store, err := settings.NewStore(ctx, settingsRepo, log)
	if err != nil {
		log.Error("failed to initialize settings store", "error", err)
		os.Exit(1)
	}

	source := uptime.NewSource(processStart, log)
	statusService := status.NewService(source, store, log)

	snapshots := core.NewSnapshotStore()
	hub := websocket.NewHub(log, snapshots)

	// The sampler only feeds the websocket push surface; HTTP reads always
	// compute fresh. It samples with full access since the push channels are
	// role-gated at the upgrade instead.
	sched := core.NewScheduler(
		func() time.Duration {
			return time.Duration(store.Get().PollIntervalSeconds) * time.Second
		},
		log,
		func(ctx context.Context) *domain.StatusResponse {
			return statusService.Read(ctx, domain.Access{System: true, Process: true})
		},
		func(resp *domain.StatusResponse) {
			snapshots.Set(resp)
			hub.Broadcast(domain.WsChannelUptime, domain.WsEventUptimeUpdated, resp)
		},
	)

	router := rest.NewRouter(cfg, &rest.RouterDeps{
		WS:       websocket.NewHandler(hub, authService, cfg, log),
		Uptime:   rest.NewUptimeHandler(statusService),
		Settings: rest.NewSettingsHandler(store, hub, log),
		Auth:     rest.NewAuthHandler(authService, cfg),
		Verifier: authService,
	})

	srv := rest.NewServer(router, cfg.Address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gCtx)
		return nil
	})

	g.Go(func() error {
		sched.Start(gCtx)
		return nil
	})

	g.Go(func() error {
		log.Info("starting http server", "address", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
