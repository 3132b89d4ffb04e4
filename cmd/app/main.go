package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"preclear/cmd"
	httpin "preclear/internal/adapters/in/http"
	"preclear/internal/adapters/out/notify"
	"preclear/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := postgres.Migrate(ctx, gormDB, configs.DBAppRole); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}
	defer app.Close()

	orchestrator := app.CreateOrchestrator()
	router, err := httpin.NewRouter(
		httpin.NewServer(orchestrator, app.CreateQueries(), logger),
		app.Metrics().Handler(),
		logger,
	)
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	jobManager := app.CreateJobManager(orchestrator)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}

	notifierCtx, stopNotifier := context.WithCancel(context.Background())
	defer stopNotifier()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Notifier().Run(notifierCtx)
	})
	g.Go(func() error {
		logger.Info("HTTP server started", "port", configs.HTTPPort)
		if err := router.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := router.Shutdown(shutdownCtx)

		jobManager.StopAll()
		stopNotifier()
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Service stopped")
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:                 envOrDefault("HTTP_PORT", "8080"),
		DBHost:                   os.Getenv("DB_HOST"),
		DBPort:                   envOrDefault("DB_PORT", "5432"),
		DBUser:                   os.Getenv("DB_USER"),
		DBPassword:               os.Getenv("DB_PASSWORD"),
		DBName:                   os.Getenv("DB_NAME"),
		DBSslMode:                os.Getenv("DB_SSLMODE"),
		DBAppRole:                os.Getenv("DB_APP_ROLE"),
		DBLockTimeout:            durationVariable("DB_LOCK_TIMEOUT", 3*time.Second),
		KafkaHost:                os.Getenv("KAFKA_HOST"),
		KafkaNotificationsTopic:  envOrDefault("KAFKA_NOTIFICATIONS_TOPIC", "shipment.notifications"),
		BrokerIDs:                os.Getenv("BROKER_IDS"),
		BrokerAssignmentSchedule: os.Getenv("BROKER_ASSIGNMENT_SCHEDULE"),
		NotificationQueueSize:    intVariable("NOTIFICATION_QUEUE_SIZE", notify.DefaultQueueSize),
	}
	return config
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationVariable(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return d
}

func intVariable(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return n
}
