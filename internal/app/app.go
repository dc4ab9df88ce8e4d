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
	config "github.com/sage-media/video-compare-backend/internal/cfg"
	v1Http "github.com/sage-media/video-compare-backend/internal/delivery/v1/http"
	"github.com/sage-media/video-compare-backend/internal/infrastructure/embedder"
	"github.com/sage-media/video-compare-backend/internal/infrastructure/kafka"
	minioInfra "github.com/sage-media/video-compare-backend/internal/infrastructure/minio"
	s3Repo "github.com/sage-media/video-compare-backend/internal/repository/minio"
	"github.com/sage-media/video-compare-backend/internal/repository/pgdb"
	pgdbConv "github.com/sage-media/video-compare-backend/internal/repository/pgdb/converter/generated"
	qdrantRepo "github.com/sage-media/video-compare-backend/internal/repository/qdrant"
	"github.com/sage-media/video-compare-backend/internal/repository/redis"
	redisConv "github.com/sage-media/video-compare-backend/internal/repository/redis/converter/generated"
	"github.com/sage-media/video-compare-backend/internal/usecase"
	"github.com/sage-media/video-compare-backend/pkg/clients"
	"github.com/sage-media/video-compare-backend/pkg/closer"
	"github.com/sage-media/video-compare-backend/pkg/e"
	"github.com/sage-media/video-compare-backend/pkg/logger"
	"github.com/sage-media/video-compare-backend/pkg/postgres"
)

const (
	initTimeout        = 10 * time.Second
	shutdownTimeout    = 10 * time.Second
	ensureTopicTimeout = 15 * time.Second
)

// App связывает все компоненты сервиса сравнения видео.
type App struct {
	cfg    *config.Config
	logger logger.Logger

	httpSrv      *v1Http.Server
	worker       *kafka.OutboxWorker
	storageInfra *minioInfra.MinioInfrastructure
	closer       *closer.Closer

	// appCtx живёт до начала graceful shutdown и ограничивает фоновые задачи
	appCtx    context.Context
	appCancel context.CancelFunc
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	appCtx, appCancel := context.WithCancel(context.Background())
	cl := closer.NewCloser(0)

	db, err := initPGDB(log, cfg)
	if err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	videoConv := pgdbConv.NewVideoConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	comparisonConv := redisConv.NewComparisonConverterImpl()

	videoRepo := pgdb.NewVideoRepo(db.Pool, videoConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	minioClient, err := clients.NewMinIOClient(cfg)
	if err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), initTimeout)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	minioCancel()

	fileRepo := s3Repo.NewVideoRepo(minioClient, cfg.Minio)

	qdrantClient, err := clients.NewQdrantClient(cfg.Qdrant)
	if err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	qdrantCtx, qdrantCancel := context.WithTimeout(context.Background(), initTimeout)
	if err := clients.EnsureCollection(qdrantCtx, qdrantClient); err != nil {
		qdrantCancel()
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	qdrantCancel()
	cl.Add(func(ctx context.Context) error {
		return qdrantClient.Client.Close()
	})

	segmentRepo := qdrantRepo.NewSegmentRepo(qdrantClient.Client, cfg.Qdrant)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), initTimeout)
	if err := redisClient.Ping(redisCtx); err != nil {
		redisCancel()
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	redisCancel()
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	cacheRepo := redis.NewComparisonCacheRepo(redisClient, comparisonConv, cfg.Redis, log)

	storageInfra := minioInfra.NewMinioInfrastructure(fileRepo, cfg.Minio, log, appCtx)
	embedderService := embedder.NewEmbedderService(cfg.Embedder, log)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(ensureTopicTimeout); err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	worker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)

	videoUC := usecase.NewVideoUC(
		videoRepo,
		segmentRepo,
		fileRepo,
		storageInfra,
		embedderService,
		outboxRepo,
		db.Pool,
		log,
		appCtx,
	)

	comparisonUC := usecase.NewComparisonUC(
		videoRepo,
		segmentRepo,
		cacheRepo,
		outboxRepo,
		db.Pool,
		cfg.Compare,
		log,
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, cfg.Minio.MaxVideoSizeBytes, log)
	router.Init(videoUC, comparisonUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	return &App{
		cfg:          cfg,
		logger:       log,
		httpSrv:      httpSrv,
		worker:       worker,
		storageInfra: storageInfra,
		closer:       cl,
		appCtx:       appCtx,
		appCancel:    appCancel,
	}, nil
}

// Run запускает outbox-worker и HTTP-сервер и блокируется
// до сигнала завершения или фатальной ошибки сервера.
func (a *App) Run() error {
	a.worker.Start(a.appCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.stop()

	return appErr
}

// stop выполняет graceful shutdown: HTTP-сервер, worker,
// фоновая очистка MinIO и закрытие клиентов в порядке LIFO.
func (a *App) stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	// Останавливаем фоновые задачи и worker
	a.appCancel()
	a.worker.Stop()

	if err := a.storageInfra.WaitForCleanup(shutdownCtx); err != nil {
		a.logger.Warnf("MinIO cleanup error: %v", err)
	} else {
		a.logger.Infof("MinIO cleanup completed")
	}

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("Resource close error: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
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
