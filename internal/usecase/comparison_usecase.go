package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sage-media/video-compare-backend/internal/cfg"
	"github.com/sage-media/video-compare-backend/internal/compare"
	"github.com/sage-media/video-compare-backend/internal/domain"
	"github.com/sage-media/video-compare-backend/pkg/e"
	"github.com/sage-media/video-compare-backend/pkg/logger"
)

// ComparisonUseCase реализует бизнес-логику сравнения эмбеддингов двух видео.
type ComparisonUseCase struct {
	videoRepo   VideoRepository
	segmentRepo SegmentRepository
	cacheRepo   CacheRepository
	outboxRepo  OutboxRepository
	dbPool      transaction.Transactional
	compareCfg  *cfg.CompareCfg
	logger      logger.Logger
}

func NewComparisonUC(
	videoRepo VideoRepository,
	segmentRepo SegmentRepository,
	cacheRepo CacheRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	compareCfg *cfg.CompareCfg,
	logger logger.Logger,
) *ComparisonUseCase {
	return &ComparisonUseCase{
		videoRepo:   videoRepo,
		segmentRepo: segmentRepo,
		cacheRepo:   cacheRepo,
		outboxRepo:  outboxRepo,
		dbPool:      dbPool,
		compareCfg:  compareCfg,
		logger:      logger,
	}
}

// CompareVideos сравнивает посекундные эмбеддинги двух готовых видео и
// возвращает интервалы расхождений. Результат кэшируется в Redis.
func (c *ComparisonUseCase) CompareVideos(ctx context.Context, req *CompareVideosReq) (*CompareVideosRes, error) {
	const op = "ComparisonUseCase.CompareVideos"

	// Валидация данных
	params, err := c.resolveParams(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if req.VideoID1 == req.VideoID2 {
		return nil, e.Wrap(op, e.ErrSameVideo)
	}

	// Поиск готового результата в кэше
	cacheKey := comparisonCacheKey(req.VideoID1, req.VideoID2, params)
	if cached, err := c.cacheRepo.GetComparison(ctx, cacheKey); err == nil && cached != nil {
		cached.FromCache = true
		return cached, nil
	}

	video1, err := c.resolveVideo(ctx, req.VideoID1)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	video2, err := c.resolveVideo(ctx, req.VideoID2)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	set1, err := c.fetchEmbeddingSet(ctx, video1)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	set2, err := c.fetchEmbeddingSet(ctx, video2)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result, err := compare.Compare(&set1, &set2, params)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := NewCompareVideosRes(video1.ID, video2.ID, video1.Filename, video2.Filename, result)

	if result.SkippedSlots > 0 {
		c.logger.Debugf("comparison %s vs %s: %d slots had no embeddings on either side", video1.ID, video2.ID, result.SkippedSlots)
	}

	// Фоновое добавление результата в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := c.cacheRepo.SetComparison(bgCtx, cacheKey, res); err != nil {
			c.logger.Warnf("Failed to cache comparison in background: %v", e.Wrap(op, err))
		}
	}()

	if err := c.notifyCompared(ctx, res, params); err != nil {
		// событие не влияет на ответ клиенту
		c.logger.Warnf("failed to create outbox event: %v", e.Wrap(op, err))
	}

	return res, nil
}

// resolveParams применяет значения по умолчанию из конфигурации и валидирует параметры.
func (c *ComparisonUseCase) resolveParams(req *CompareVideosReq) (compare.Params, error) {
	params := compare.Params{
		Threshold:        req.Threshold,
		SamplingInterval: req.SamplingInterval,
	}

	if params.Threshold == 0 {
		params.Threshold = c.compareCfg.DefaultThreshold
	}

	if params.SamplingInterval == 0 {
		params.SamplingInterval = c.compareCfg.SamplingInterval
	}

	metricName := req.Metric
	if metricName == "" {
		metricName = c.compareCfg.DefaultMetric
	}

	metric, err := compare.ParseMetric(metricName)
	if err != nil {
		return compare.Params{}, err
	}
	params.Metric = metric

	if err := params.Validate(); err != nil {
		return compare.Params{}, err
	}

	return params, nil
}

// resolveVideo находит видео и проверяет готовность его эмбеддингов.
func (c *ComparisonUseCase) resolveVideo(ctx context.Context, videoID string) (*domain.Video, error) {
	video, err := c.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if !video.IsReady() {
		return nil, e.Wrap(fmt.Sprintf("video %s status %s", video.ID, video.Status), e.ErrVideoNotReady)
	}

	return video, nil
}

// fetchEmbeddingSet загружает сегменты видео из Qdrant.
func (c *ComparisonUseCase) fetchEmbeddingSet(ctx context.Context, video *domain.Video) (domain.VideoEmbeddingSet, error) {
	segments, err := c.segmentRepo.FetchByVideoID(ctx, video.ID)
	if err != nil {
		return domain.VideoEmbeddingSet{}, err
	}

	if len(segments) == 0 {
		return domain.VideoEmbeddingSet{}, e.Wrap(fmt.Sprintf("video %s", video.ID), e.ErrEmptyEmbeddingSet)
	}

	var duration float64
	if video.DurationSec != nil {
		duration = *video.DurationSec
	}

	return domain.VideoEmbeddingSet{
		Segments:    segments,
		DurationSec: duration,
	}, nil
}

// notifyCompared создаёт событие comparison.completed в собственной транзакции.
func (c *ComparisonUseCase) notifyCompared(ctx context.Context, res *CompareVideosRes, params compare.Params) error {
	payload, err := json.Marshal(map[string]any{
		"video_id_1":         res.VideoID1,
		"video_id_2":         res.VideoID2,
		"metric":             string(params.Metric),
		"threshold":          params.Threshold,
		"differing_segments": res.Result.DifferingSegments,
		"total_segments":     res.Result.TotalSegments,
		"similarity_percent": res.Result.SimilarityPercent,
	})
	if err != nil {
		return err
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	_, err = c.outboxRepo.Create(ctx, NewOutboxEvent(uuid.NewString(), EventComparisonCompleted, res.VideoID1, payload))
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// comparisonCacheKey строит ключ кэша. Порядок идентификаторов сохраняется:
// ответ содержит filename1/filename2 в порядке запроса.
func comparisonCacheKey(id1, id2 string, params compare.Params) string {
	return fmt.Sprintf("comparison:%s:%s:%s:%g:%g", id1, id2, params.Metric, params.Threshold, params.SamplingInterval)
}
