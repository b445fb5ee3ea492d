package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jupiter/agent"
	"jupiter/config"
	"jupiter/database"
	"jupiter/handlers"
	"jupiter/matching"
	"jupiter/routes"
	"jupiter/store"
	"jupiter/worker"
)

const (
	connectAttempts = 3
	connectBackoff  = 2 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet.
		panic(err)
	}

	var logger *zap.Logger
	if cfg.GinMode == gin.ReleaseMode {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := connectWithRetry(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := db.EnsureIndexes(indexCtx); err != nil {
		cancel()
		logger.Fatal("index creation failed", zap.Error(err))
	}
	cancel()

	client, err := agent.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Fatal("model client init failed", zap.Error(err))
	}

	st := store.New(db)

	companion := agent.NewCompanion(client, logger)
	learner := agent.NewLearner(client, logger)
	oracle := agent.NewOracle(client, logger)

	engine := matching.NewEngine(st.Profiles, st.PeerNotes, st.Matches, st.Notifications, st.Users, oracle, logger)

	pool := worker.NewPool(64, logger)
	pool.Start(context.Background(), cfg.WorkerConcurrency)

	h := handlers.New(st, companion, learner, engine, pool, cfg.JWTSecret, logger)
	router := routes.Setup(h, cfg.JWTSecret)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	pool.Stop()

	if err := db.Disconnect(shutdownCtx); err != nil {
		logger.Error("database disconnect failed", zap.Error(err))
	}

	logger.Info("goodbye")
}

func connectWithRetry(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*database.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err := database.Connect(connCtx, cfg.MongoURI, cfg.MongoName)
		cancel()
		if err == nil {
			logger.Info("connected to mongodb", zap.String("db", cfg.MongoName))
			return db, nil
		}
		lastErr = err
		logger.Warn("mongodb connection attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectBackoff):
		}
	}
	return nil, lastErr
}
