package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/otkirbek-shop/go-storefront/internal/cfg"
	v1Http "github.com/otkirbek-shop/go-storefront/internal/delivery/v1/http"
	catalogInfra "github.com/otkirbek-shop/go-storefront/internal/infrastructure/catalog"
	"github.com/otkirbek-shop/go-storefront/internal/infrastructure/kafka"
	minioInfra "github.com/otkirbek-shop/go-storefront/internal/infrastructure/minio"
	"github.com/otkirbek-shop/go-storefront/internal/infrastructure/telegram"
	s3Repo "github.com/otkirbek-shop/go-storefront/internal/repository/minio"
	"github.com/otkirbek-shop/go-storefront/internal/repository/pgdb"
	redisRepo "github.com/otkirbek-shop/go-storefront/internal/repository/redis"
	"github.com/otkirbek-shop/go-storefront/internal/usecase"
	"github.com/otkirbek-shop/go-storefront/pkg/clients"
	"github.com/otkirbek-shop/go-storefront/pkg/closer"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
	"github.com/otkirbek-shop/go-storefront/pkg/postgres"
)

func Run() {
	logger := logger.NewSlogLogger()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	cl := closer.NewCloser(2 * time.Second)

	db, err := initPGDB(logger, cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize database")
		os.Exit(1)
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	orderRepo := pgdb.NewOrderRepo(db.Pool)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool)
	userRepo := pgdb.NewUserRepo(db.Pool)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		logger.Errorf(err, "failed to initialize minio client")
		os.Exit(1)
	}

	minioCtx, minioCancel := context.WithTimeout(appCtx, 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		logger.Errorf(err, "failed to initialize MinIO bucket")
		os.Exit(1)
	}
	minioCancel()

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, logger, appCtx)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(appCtx, 5*time.Second)
	if err := redisClient.Ping(redisCtx); err != nil {
		redisCancel()
		logger.Errorf(err, "failed to connect to redis")
		os.Exit(1)
	}
	redisCancel()
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	favoritesRepo := redisRepo.NewFavoritesRepo(redisClient)
	sessionRepo := redisRepo.NewSessionRepo(redisClient)

	catalogClient := catalogInfra.NewClient(cfg.Catalog, logger)
	catalogUC := usecase.NewCatalogUC(catalogClient, imagesInfra, logger, cfg.Catalog.FetchTimeout)

	// Стартовая загрузка каталога: при ошибке поднимаемся с пустым
	// снимком, сервис остается работоспособным.
	if err := catalogUC.Refresh(appCtx); err != nil {
		logger.Warnf("Initial catalog fetch failed, starting with empty catalog: %v", err)
	}

	cartUC := usecase.NewCartUC(catalogUC, logger)
	orderUC := usecase.NewOrderUC(orderRepo, outboxRepo, cartUC, catalogClient, db.Pool, logger)
	favoritesUC := usecase.NewFavoritesUC(favoritesRepo, logger)
	userUC := usecase.NewUserUC(userRepo, logger)

	producer, err := kafka.NewProducer(logger, cfg.Kafka)
	if err != nil {
		logger.Errorf(err, "failed to initialize kafka producer")
		os.Exit(1)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		logger.Errorf(err, "failed to ensure kafka topic")
		os.Exit(1)
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	outboxWorker := kafka.NewOutboxWorker(outboxRepo, logger, producer, db.Dsn)
	outboxWorker.Start(appCtx)
	cl.Add(func(ctx context.Context) error {
		outboxWorker.Stop()
		return nil
	})

	notifier := telegram.NewNotifier(cfg.Telegram, logger)

	consumer := kafka.NewConsumer(cfg.Kafka, notifier, logger)
	go func() {
		if err := consumer.Consume(appCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warnf("Kafka consumer stopped: %v", err)
		}
	}()
	cl.Add(func(ctx context.Context) error {
		return consumer.Close()
	})

	statsWorker := telegram.NewStatsWorker(orderUC, notifier, logger)
	statsWorker.Start(appCtx)
	cl.Add(func(ctx context.Context) error {
		statsWorker.Stop()
		return nil
	})

	verifier := telegram.NewInitDataVerifier(cfg.Telegram.BotToken, cfg.Telegram.InitDataTTL)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(&v1Http.RouterDeps{
		Catalog:     catalogUC,
		Cart:        cartUC,
		Orders:      orderUC,
		Favorites:   favoritesUC,
		Users:       userUC,
		Verifier:    verifier,
		SessionRepo: sessionRepo,
		AdminIDs:    cfg.Telegram.AdminIDs,
		SessionTTL:  cfg.Telegram.InitDataTTL,
	})

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Stop(shutdownCtx); err != nil {
		logger.Errorf(err, "HTTP server shutdown error")
	} else {
		logger.Infof("HTTP server stopped")
	}

	appCancel()

	done := make(chan error, 1)
	go func() {
		done <- imagesInfra.WaitForCleanup(shutdownCtx)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Warnf("MinIO cleanup error: %v", err)
		} else {
			logger.Infof("MinIO cleanup completed")
		}
	case <-time.After(5 * time.Second): // локальный таймаут ожидания cleanup
		logger.Warnf("MinIO cleanup did not finish before shutdown, some temporary objects may remain")
	}

	if err := cl.Close(shutdownCtx); err != nil {
		logger.Warnf("Resource close errors: %v", err)
	}

	logger.Infof("Application shutdown complete")
	if appErr != nil {
		os.Exit(1)
	}
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
