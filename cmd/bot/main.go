package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recallbot/internal/config"
	"recallbot/internal/handler"
	"recallbot/internal/middleware"
	"recallbot/internal/repository/postgres"
	"recallbot/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Recallbot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.Int("new_card_quota", cfg.Study.NewCardQuota),
		zap.Int("session_quota", cfg.Study.SessionQuota),
	)

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	wordRepo := postgres.NewWordRepo(db)
	cardRepo := postgres.NewCardRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.BotPassword)
	allocatorService := service.NewAllocatorService(wordRepo, cardRepo, cfg.Study, logger)
	sessionService := service.NewSessionService(allocatorService, cardRepo, reviewRepo, cfg.Study, logger)
	schedulerService := service.NewSchedulerService(cardRepo, reviewRepo, cfg.Study, logger)
	statsService := service.NewStatsService(wordRepo, cardRepo, reviewRepo)
	reminderService := service.NewReminderService(userRepo, cardRepo, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	bot.Use(middleware.AuthMiddleware(authService, logger))

	// Initialize handler
	h := handler.NewHandler(bot, authService, sessionService, schedulerService, statsService, wordRepo, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start reminder job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runReminderJob(ctx, bot, reminderService, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runReminderJob pings users with due cards once a day
func runReminderJob(ctx context.Context, bot *tele.Bot, reminders *service.ReminderService, logger *zap.Logger) {
	// Run once at startup
	sendReminders(bot, reminders, logger)

	// Then run every 24 hours
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Reminder job stopped")
			return
		case <-ticker.C:
			logger.Info("Running scheduled reminders")
			sendReminders(bot, reminders, logger)
		}
	}
}

// sendReminders delivers one "cards are waiting" message per user with due cards
func sendReminders(bot *tele.Bot, reminders *service.ReminderService, logger *zap.Logger) {
	due, err := reminders.DueReminders(time.Now())
	if err != nil {
		logger.Error("Failed to collect due reminders", zap.Error(err))
		return
	}

	for _, r := range due {
		text := fmt.Sprintf("⏰ Тебя ждут карточки! К повторению: %d", r.DueCount)
		if _, err := bot.Send(&tele.User{ID: r.UserID}, text); err != nil {
			logger.Warn("Failed to send reminder",
				zap.Int64("user_id", r.UserID),
				zap.Error(err),
			)
		}
	}

	if len(due) > 0 {
		logger.Info("Reminders sent", zap.Int("users", len(due)))
	}
}
