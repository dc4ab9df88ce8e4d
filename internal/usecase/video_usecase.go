package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sage-media/video-compare-backend/internal/domain"
	"github.com/sage-media/video-compare-backend/pkg/e"
	"github.com/sage-media/video-compare-backend/pkg/logger"
)

// VideoUseCase реализует бизнес-логику загрузки видео
// и генерации эмбеддингов для последующего сравнения.
type VideoUseCase struct {
	videoRepo    VideoRepository
	segmentRepo  SegmentRepository
	fileRepo     VideoFileRepository
	storageInfra VideoStorageInfra
	embedder     EmbedderInfra
	outboxRepo   OutboxRepository
	dbPool       transaction.Transactional
	logger       logger.Logger
	// shutdownCtx ограничивает фоновую генерацию эмбеддингов временем жизни приложения
	shutdownCtx context.Context
}

func NewVideoUC(
	videoRepo VideoRepository,
	segmentRepo SegmentRepository,
	fileRepo VideoFileRepository,
	storageInfra VideoStorageInfra,
	embedder EmbedderInfra,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
	shutdownCtx context.Context,
) *VideoUseCase {
	return &VideoUseCase{
		videoRepo:    videoRepo,
		segmentRepo:  segmentRepo,
		fileRepo:     fileRepo,
		storageInfra: storageInfra,
		embedder:     embedder,
		outboxRepo:   outboxRepo,
		dbPool:       dbPool,
		logger:       logger,
		shutdownCtx:  shutdownCtx,
	}
}

// RegisterNewVideo обрабатывает загрузку нового видео: сохраняет файл в MinIO,
// создаёт запись со статусом processing и запускает фоновую генерацию эмбеддингов.
func (v *VideoUseCase) RegisterNewVideo(ctx context.Context, req *UploadVideoReq) (*UploadVideoRes, error) {
	const op = "VideoUseCase.RegisterNewVideo"

	// Валидация данных
	var err error
	if err = v.validateUpload(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	videoID := uuid.NewString()

	// Сохранение видеофайла в MinIO
	uploadRes, err := v.storageInfra.UploadVideo(ctx, NewUploadObjectReq(videoID, req.Filename, req.MimeType, req.Size, req.Body))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	uploaded := true

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, v.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// Если произошла ошибка, происходит Rollback транзакции и очистка загруженного файла
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			if uploaded {
				v.logger.Warnf(
					"Cleaning up orphaned video object after transaction failure. video_id: %s, error: %v",
					videoID,
					e.Wrap(op, err),
				)

				v.storageInfra.CleanupObjects([]string{uploadRes.ObjectKey})
			}
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	video, err := v.videoRepo.Create(ctx, domain.NewVideo(videoID, req.Filename, uploadRes.ObjectKey))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = v.createOutboxEvent(ctx, EventVideoRegistered, video.ID, map[string]any{
		"video_id": video.ID,
		"filename": video.Filename,
	}); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Генерация эмбеддингов занимает минуты: выполняется в фоне,
	// клиент опрашивает статус через GetVideoInfo.
	go v.generateEmbeddings(video.ID, uploadRes.ObjectKey)

	return NewUploadVideoRes(video.ID, video.Status), nil
}

// GetVideoInfo возвращает информацию о видео и состоянии его эмбеддингов.
func (v *VideoUseCase) GetVideoInfo(ctx context.Context, videoID string) (*VideoInfoRes, error) {
	const op = "VideoUseCase.GetVideoInfo"

	video, err := v.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewVideoInfoRes(video), nil
}

// generateEmbeddings запрашивает эмбеддинги у внешнего сервиса и сохраняет
// сегменты в Qdrant. Ошибки переводят видео в статус failed, а не теряются.
func (v *VideoUseCase) generateEmbeddings(videoID, objectKey string) {
	const op = "VideoUseCase.generateEmbeddings"

	ctx := v.shutdownCtx

	videoURL, err := v.fileRepo.PresignedURL(ctx, objectKey)
	if err != nil {
		v.failVideo(ctx, videoID, e.Wrap(op, err))
		return
	}

	res, err := v.embedder.GenerateEmbeddings(ctx, NewGenerateEmbeddingsReq(videoID, videoURL))
	if err != nil {
		v.failVideo(ctx, videoID, e.Wrap(op, err))
		return
	}

	if len(res.Segments) == 0 {
		v.failVideo(ctx, videoID, e.Wrap(op, e.ErrEmptyEmbeddingSet))
		return
	}

	embeddings := make([]domain.Embedding, 0, len(res.Segments))
	for _, seg := range res.Segments {
		payload := domain.NewSegmentPayload(videoID, seg.StartOffsetSec, seg.EndOffsetSec, res.ModelVersion)
		embeddings = append(embeddings, *domain.NewEmbedding(uuid.NewString(), seg.Vector, payload))
	}

	if err := v.segmentRepo.Upsert(ctx, embeddings); err != nil {
		v.failVideo(ctx, videoID, e.Wrap(op, err))
		return
	}

	if err := v.videoRepo.MarkReady(ctx, videoID, res.DurationSec, len(res.Segments)); err != nil {
		v.failVideo(ctx, videoID, e.Wrap(op, err))
		return
	}

	if err := v.notifyEmbedded(ctx, videoID, res); err != nil {
		// событие не критично для готовности видео
		v.logger.Warnf("failed to create outbox event: %v", e.Wrap(op, err))
	}

	v.logger.Infof("video %s embedded: %d segments, %.1fs", videoID, len(res.Segments), res.DurationSec)
}

// notifyEmbedded создаёт событие video.embedded в собственной транзакции.
func (v *VideoUseCase) notifyEmbedded(ctx context.Context, videoID string, res *GenerateEmbeddingsRes) error {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, v.dbPool)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = v.createOutboxEvent(ctx, EventVideoEmbedded, videoID, map[string]any{
		"video_id":      videoID,
		"segment_count": len(res.Segments),
		"duration_sec":  res.DurationSec,
		"model_version": res.ModelVersion,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// failVideo переводит видео в статус failed с причиной.
func (v *VideoUseCase) failVideo(ctx context.Context, videoID string, cause error) {
	v.logger.Errorf(cause, "embedding generation failed for video %s", videoID)

	markCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := v.videoRepo.MarkFailed(markCtx, videoID, cause.Error()); err != nil {
		v.logger.Errorf(err, "failed to mark video %s as failed", videoID)
	}
}

// createOutboxEvent сериализует payload и кладёт событие в outbox внутри текущей транзакции.
func (v *VideoUseCase) createOutboxEvent(ctx context.Context, eventType OutboxEventType, videoID string, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = v.outboxRepo.Create(ctx, NewOutboxEvent(uuid.NewString(), eventType, videoID, data))
	return err
}

// validateUpload проверяет корректность входных данных запроса на загрузку видео.
func (v *VideoUseCase) validateUpload(req *UploadVideoReq) error {
	if strings.TrimSpace(req.Filename) == "" {
		return e.ErrMissingFields
	}

	if req.Body == nil || req.Size <= 0 {
		return e.ErrNoVideoFile
	}

	return nil
}
