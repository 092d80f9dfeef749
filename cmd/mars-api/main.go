package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jorgeberrex/mars-api/internal/config"
	"github.com/jorgeberrex/mars-api/internal/database"
	"github.com/jorgeberrex/mars-api/internal/handlers"
	"github.com/jorgeberrex/mars-api/internal/leaderboard"
	"github.com/jorgeberrex/mars-api/internal/models"
	"github.com/jorgeberrex/mars-api/internal/socket"
	"github.com/jorgeberrex/mars-api/internal/webhook"
	"github.com/jorgeberrex/mars-api/internal/worker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Debug {
		zcfg = zap.NewDevelopmentConfig()
	}
	zlog, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer zlog.Sync()
	logger := zlog.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.MongoURL, logger)
	if err != nil {
		return fmt.Errorf("connecting to mongo: %w", err)
	}
	rdb, err := database.NewRedis(ctx, cfg.RedisHost)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer rdb.Close()

	players := database.NewCache(rdb, db.Players, "player", cfg.PlayerCacheLifetime,
		func(p *models.Player) string { return p.ID }, logger)
	matches := database.NewCache(rdb, db.Matches, "match", cfg.MatchCacheLifetime,
		func(m *models.Match) string { return m.ID }, logger)
	levels := database.NewCache(rdb, db.Levels, "level", cfg.MatchCacheLifetime,
		func(l *models.Level) string { return l.ID }, logger)

	boards := leaderboard.NewBoardSet(rdb, logger)

	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount: cfg.WorkerCount,
		QueueSize:   cfg.QueueSize,
		DB:          db,
		Logger:      logger,
	})
	pool.Start(ctx)
	defer pool.Stop()

	webhooks := webhook.NewClient(cfg.ReportsWebhookURL, cfg.PunishmentsWebhookURL,
		cfg.NotesWebhookURL, pool, logger)

	// Rebuild the all-time boards before accepting traffic so a flushed
	// Redis does not serve empty leaderboards.
	allPlayers, err := db.AllPlayers(ctx)
	if err != nil {
		return fmt.Errorf("loading players for leaderboard rebuild: %w", err)
	}
	boards.PopulateAllTime(ctx, allPlayers)
	logger.Infow("Rebuilt all-time leaderboards", "players", len(allPlayers))

	svc := &socket.Services{
		Players: players,
		Matches: matches,
		Levels:  levels,
		DB:      db,
		KV:      database.NewKV(rdb),
		Boards:  boards,
		Deaths:  pool,
		Logger:  logger,
	}

	ws := socket.NewServer(cfg.Token, svc)
	api := handlers.New(handlers.Config{
		AppConfig: cfg,
		Store:     db,
		Players:   players,
		Matches:   matches,
		Redis:     rdb,
		Boards:    boards,
		Webhooks:  webhooks,
		Logger:    logger,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           api.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	wsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.WSPort),
		Handler:           ws.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infow("HTTP API listening", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Infow("Socket server listening", "port", cfg.WSPort)
		if err := wsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
		wsServer.Shutdown(shutdownCtx)
		return nil
	})

	logger.Infow("Mars API started")
	return g.Wait()
}
