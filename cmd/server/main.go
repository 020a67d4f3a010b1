package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openmarket/marketplace-service/internal/application/ports"
	"github.com/openmarket/marketplace-service/internal/application/use_cases"
	"github.com/openmarket/marketplace-service/internal/config"
	"github.com/openmarket/marketplace-service/internal/infrastructure/images"
	"github.com/openmarket/marketplace-service/internal/infrastructure/monitoring"
	"github.com/openmarket/marketplace-service/internal/infrastructure/notification"
	"github.com/openmarket/marketplace-service/internal/infrastructure/persistence/postgres"
	"github.com/openmarket/marketplace-service/internal/infrastructure/persistence/redis"
	"github.com/openmarket/marketplace-service/internal/infrastructure/scheduler"
	"github.com/openmarket/marketplace-service/internal/pkg/clock"
	"github.com/openmarket/marketplace-service/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	flag.Parse()

	log := logger.NewLogger()
	log.Info("starting marketplace service")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("failed to load configuration", "error", err)
	}

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, cfg.Database, log); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}

	redisConn, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		log.Fatal("failed to connect to redis", "error", err)
	}
	defer redisConn.Close()
	cache := redis.NewCache(redisConn, log)

	var notifier ports.Notifier
	if cfg.SMTP.Host != "" {
		notifier = notification.NewSMTPNotifier(cfg.SMTP, log)
	} else {
		log.Warn("no smtp host configured, notifications go to the log")
		notifier = notification.NewLogNotifier(log)
	}

	var imageStore ports.ImageStore
	if cfg.Images.Endpoint != "" {
		imageStore, err = images.NewMinioStore(cfg.Images, log)
		if err != nil {
			log.Fatal("failed to connect to image store", "error", err)
		}
	} else {
		log.Warn("no image store configured, image objects are discarded")
		imageStore = images.NewNullStore()
	}

	users := postgres.NewUserRepository(db)
	items := postgres.NewItemRepository(db)
	interests := postgres.NewInterestRepository(db)
	txns := postgres.NewTransactionRepository(db)

	facade := use_cases.NewFacade(users, items, interests, txns, cache, notifier, imageStore, clock.NewRealClock(), log)
	// The transport layer is wired on top of this facade by the embedding
	// binary; nothing below this process boundary touches sessions or HTTP.
	_ = facade

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	dbMetrics := monitoring.NewDBMetricsCollector(db.GetDB())
	dbMetrics.StartCollecting(serverCtx, 30*time.Second)

	reconciler := scheduler.NewInterestReconciler(items, interests, cache, log, 5*time.Minute)
	go reconciler.Start(serverCtx)

	metricsServer := monitoring.NewMetricsServer(cfg.Metrics.Addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigChan
		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		log.Info("shutting down")
		reconciler.Stop()
		if err := metricsServer.Stop(shutdownCtx); err != nil {
			log.Error("metrics server shutdown error", "error", err)
		}
		serverStopCtx()
	}()

	log.Info("metrics server starting", "addr", cfg.Metrics.Addr)
	if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatal("metrics server failed", "error", err)
	}

	<-serverCtx.Done()
	log.Info("stopped")
}
