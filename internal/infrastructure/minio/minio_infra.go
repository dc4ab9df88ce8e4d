package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sage-media/video-compare-backend/internal/cfg"
	"github.com/sage-media/video-compare-backend/internal/domain"
	"github.com/sage-media/video-compare-backend/internal/infrastructure"
	"github.com/sage-media/video-compare-backend/internal/usecase"
	"github.com/sage-media/video-compare-backend/pkg/e"
	"github.com/sage-media/video-compare-backend/pkg/jitter"
	"github.com/sage-media/video-compare-backend/pkg/logger"
)

const (
	cleanupTimeout  = 30 * time.Second
	cleanupAttempts = 3
	cleanupBackoff  = time.Second
)

// MinioInfrastructure управляет загрузкой и компенсирующей очисткой видеофайлов в MinIO.
type MinioInfrastructure struct {
	videoRepo   usecase.VideoFileRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewMinioInfrastructure(videoRepo usecase.VideoFileRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		videoRepo:   videoRepo,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
		wg:          sync.WaitGroup{},
	}
}

// UploadVideo потоково загружает видео в MinIO.
// Ключ объекта содержит идентификатор видео, поэтому коллизии исключены.
func (m *MinioInfrastructure) UploadVideo(ctx context.Context, req *usecase.UploadObjectReq) (*usecase.UploadObjectRes, error) {
	const op = "MinioInfrastructure.UploadVideo"

	if req.Size > m.cfg.MaxVideoSizeBytes {
		return nil, e.Wrap(fmt.Sprintf("size %d exceeds limit %d", req.Size, m.cfg.MaxVideoSizeBytes), e.ErrFileTooLarge)
	}

	ext, err := infrastructure.GetExtensionFromMIME(req.MimeType)
	if err != nil {
		return nil, e.Wrap(fmt.Sprintf("invalid mime type %s for %s", req.MimeType, req.Filename), err)
	}

	objKey := fmt.Sprintf("videos/%s.%s", req.VideoID, ext)
	obj := domain.NewVideoObject(req.VideoID, m.cfg.BucketName, objKey, &req.Size, &req.MimeType, req.Body)

	key, err := m.videoRepo.Upload(ctx, obj)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return usecase.NewUploadObjectRes(key), nil
}

// CleanupObjects запускает фоновую очистку указанных ключей MinIO
func (m *MinioInfrastructure) CleanupObjects(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// cleanupUploadedKeys удаляет указанные объекты из MinIO с экспоненциальной задержкой и jitter.
func (m *MinioInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done() // сигнализируем завершение компенсации
	const op = "MinioInfrastructure.cleanupUploadedKeys"
	m.logger.Infof("%s: Cleaning up uploaded keys", op)

	ctx, cancel := context.WithTimeout(m.shutdownCtx, cleanupTimeout)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			if err := m.videoRepo.Delete(ctx, key); err == nil {
				break // Успешно удалено
			}

			select {
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			default:
			}

			if attempt < cleanupAttempts-1 {
				sleepTime := jitter.ExponentialBackoff(cleanupBackoff, cleanupTimeout, attempt, jitter.DefaultJitter)

				select {
				case <-time.After(sleepTime):
				case <-ctx.Done():
					m.logger.Warnf("cleanup interrupted by shutdown during backoff, key=%v", key)
					return
				}
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
