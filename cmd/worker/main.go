package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/hibiken/asynq"
	"github.com/japanesestudent/learn-navigator/internal/config"
	"github.com/japanesestudent/learn-navigator/internal/logger"
	"github.com/japanesestudent/learn-navigator/internal/repositories"
	"github.com/japanesestudent/learn-navigator/internal/tasks"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const pruneTimeout = 5 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Learn Navigator Worker")

	if !cfg.RedisEnabled() {
		logger.Logger.Fatal("REDIS_HOST is required by the worker")
	}

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	historyRepo := repositories.NewNavigationHistoryRepository(db)

	// Create worker instance
	worker := tasks.NewWorker(historyRepo, cfg.History.Retention, logger.Logger)

	// Create Asynq server
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Queues: map[string]int{
				tasks.QueueEvents: 1,
			},
		},
	)

	// Register task handlers
	mux := asynq.NewServeMux()
	worker.Register(mux)

	// Schedule history pruning
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.History.PruneSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
		defer cancel()
		if err := worker.PruneHistory(ctx); err != nil {
			logger.Logger.Error("Failed to prune navigation history", zap.Error(err))
		}
	}); err != nil {
		logger.Logger.Fatal("Failed to schedule history pruning", zap.Error(err))
	}
	scheduler.Start()

	// Start worker
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Logger.Fatal("Failed to start worker", zap.Error(err))
		}
	}()

	logger.Logger.Info("Worker started", zap.String("prune_schedule", cfg.History.PruneSchedule))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down worker...")
	<-scheduler.Stop().Done()
	srv.Shutdown()
	logger.Logger.Info("Worker exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
