// Package main runs the background worker: the email queue consumer and the
// daily session-reminder sweep.
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mentorhub/backend/config"
	"github.com/mentorhub/backend/internal/bookings"
	"github.com/mentorhub/backend/internal/emaillogs"
	"github.com/mentorhub/backend/internal/worker"
	"github.com/mentorhub/backend/pkg/database"
	"github.com/mentorhub/backend/pkg/mailer"
	"github.com/mentorhub/backend/pkg/queue"
	"github.com/mentorhub/backend/pkg/redis"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()
	jobQueue := queue.NewQueue(rdb.Client, logger)

	mail := mailer.New(mailer.Config{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		User:        cfg.Email.SMTPUser,
		Pass:        cfg.Email.SMTPPass,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
	}, logger)

	emailLogsRepo := emaillogs.NewRepository(pool)
	bookingRepo := bookings.NewRepository(pool)

	processor := worker.NewEmailProcessor(emailLogsRepo, mail, jobQueue, logger)
	sweeper := worker.NewReminderSweeper(bookingRepo, jobQueue, cfg.Reminder.SweepHourUTC, cfg.Reminder.LeadDays, logger)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		processor.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()
	logger.Info("worker started",
		zap.Int("sweep_hour_utc", cfg.Reminder.SweepHourUTC),
		zap.Int("lead_days", cfg.Reminder.LeadDays),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	wg.Wait()
	logger.Info("worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
