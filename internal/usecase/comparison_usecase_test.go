package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/sage-media/video-compare-backend/internal/cfg"
	"github.com/sage-media/video-compare-backend/internal/domain"
	"github.com/sage-media/video-compare-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDB реализует transaction.Transactional поверх заглушки pgx.Tx.
type fakeDB struct{}

func (fakeDB) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return fakeTx{}, nil
}

type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

type fakeVideoRepo struct {
	mu     sync.Mutex
	videos map[string]*domain.Video
	calls  int
}

func newFakeVideoRepo(videos ...*domain.Video) *fakeVideoRepo {
	m := make(map[string]*domain.Video, len(videos))
	for _, v := range videos {
		m[v.ID] = v
	}
	return &fakeVideoRepo{videos: m}
}

func (f *fakeVideoRepo) Create(ctx context.Context, video *domain.Video) (*domain.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videos[video.ID] = video
	return video, nil
}

func (f *fakeVideoRepo) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	v, ok := f.videos[id]
	if !ok {
		return nil, e.Wrap(id, e.ErrVideoNotFound)
	}
	return v, nil
}

func (f *fakeVideoRepo) MarkReady(ctx context.Context, id string, durationSec float64, segmentCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return e.ErrVideoNotFound
	}
	v.Status = domain.VideoStatusReady
	v.DurationSec = &durationSec
	v.SegmentCount = segmentCount
	return nil
}

func (f *fakeVideoRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return e.ErrVideoNotFound
	}
	v.Status = domain.VideoStatusFailed
	v.FailureReason = &reason
	return nil
}

type fakeSegmentRepo struct {
	mu       sync.Mutex
	segments map[string][]domain.EmbeddingSegment
	upserted []domain.Embedding
}

func newFakeSegmentRepo() *fakeSegmentRepo {
	return &fakeSegmentRepo{segments: make(map[string][]domain.EmbeddingSegment)}
}

func (f *fakeSegmentRepo) Upsert(ctx context.Context, embeddings []domain.Embedding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserted = append(f.upserted, embeddings...)
	return nil
}

func (f *fakeSegmentRepo) FetchByVideoID(ctx context.Context, videoID string) ([]domain.EmbeddingSegment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.segments[videoID], nil
}

type fakeCacheRepo struct {
	mu     sync.Mutex
	stored map[string]*CompareVideosRes
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{stored: make(map[string]*CompareVideosRes)}
}

func (f *fakeCacheRepo) GetComparison(ctx context.Context, key string) (*CompareVideosRes, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stored[key], nil
}

func (f *fakeCacheRepo) SetComparison(ctx context.Context, key string, res *CompareVideosRes) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored[key] = res
	return nil
}

type fakeOutboxRepo struct {
	mu     sync.Mutex
	events []*OutboxEvent
}

func (f *fakeOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event.ID = int64(len(f.events) + 1)
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeOutboxRepo) eventTypes() []OutboxEventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]OutboxEventType, 0, len(f.events))
	for _, ev := range f.events {
		types = append(types, ev.EventType)
	}
	return types
}

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

func defaultCompareCfg() *cfg.CompareCfg {
	return &cfg.CompareCfg{
		DefaultThreshold: 0.1,
		DefaultMetric:    "cosine",
		SamplingInterval: 2.0,
	}
}

func readyVideo(id, filename string, duration float64) *domain.Video {
	return &domain.Video{
		ID:          id,
		Filename:    filename,
		Status:      domain.VideoStatusReady,
		DurationSec: &duration,
	}
}

func segAt(start, end float64, vector ...float64) domain.EmbeddingSegment {
	return domain.EmbeddingSegment{StartOffsetSec: start, EndOffsetSec: end, Vector: vector}
}

const (
	videoID1 = "8b9f1fb5-7f62-4f1a-9c55-111111111111"
	videoID2 = "8b9f1fb5-7f62-4f1a-9c55-222222222222"
)

func newComparisonUC(videoRepo *fakeVideoRepo, segmentRepo *fakeSegmentRepo, cacheRepo *fakeCacheRepo, outboxRepo *fakeOutboxRepo) *ComparisonUseCase {
	return NewComparisonUC(videoRepo, segmentRepo, cacheRepo, outboxRepo, fakeDB{}, defaultCompareCfg(), nopLogger{})
}

func TestComparisonUseCase_CompareVideos(t *testing.T) {
	t.Parallel()

	t.Run("identical videos produce no differences", func(t *testing.T) {
		t.Parallel()

		videoRepo := newFakeVideoRepo(
			readyVideo(videoID1, "a.mp4", 4),
			readyVideo(videoID2, "b.mp4", 4),
		)
		segmentRepo := newFakeSegmentRepo()
		segments := []domain.EmbeddingSegment{
			segAt(0, 2, 1, 0),
			segAt(2, 4, 0, 1),
		}
		segmentRepo.segments[videoID1] = segments
		segmentRepo.segments[videoID2] = segments

		outboxRepo := &fakeOutboxRepo{}
		uc := newComparisonUC(videoRepo, segmentRepo, newFakeCacheRepo(), outboxRepo)

		res, err := uc.CompareVideos(context.Background(), NewCompareVideosReq(videoID1, videoID2, 0, "", 0))
		require.NoError(t, err)

		assert.Equal(t, "a.mp4", res.Filename1)
		assert.Equal(t, "b.mp4", res.Filename2)
		assert.False(t, res.FromCache)
		assert.Empty(t, res.Result.Differences)
		assert.Equal(t, 2, res.Result.TotalSegments)
		assert.Equal(t, 0.1, res.Result.ThresholdUsed)
		assert.Equal(t, 100.0, res.Result.SimilarityPercent)

		assert.Equal(t, []OutboxEventType{EventComparisonCompleted}, outboxRepo.eventTypes())
	})

	t.Run("orthogonal segments exceed threshold", func(t *testing.T) {
		t.Parallel()

		videoRepo := newFakeVideoRepo(
			readyVideo(videoID1, "a.mp4", 2),
			readyVideo(videoID2, "b.mp4", 2),
		)
		segmentRepo := newFakeSegmentRepo()
		segmentRepo.segments[videoID1] = []domain.EmbeddingSegment{segAt(0, 2, 1, 0)}
		segmentRepo.segments[videoID2] = []domain.EmbeddingSegment{segAt(0, 2, 0, 1)}

		uc := newComparisonUC(videoRepo, segmentRepo, newFakeCacheRepo(), &fakeOutboxRepo{})

		res, err := uc.CompareVideos(context.Background(), NewCompareVideosReq(videoID1, videoID2, 0, "", 0))
		require.NoError(t, err)

		require.Len(t, res.Result.Differences, 1)
		assert.InDelta(t, 1.0, res.Result.Differences[0].Distance, 1e-12)
		assert.Equal(t, 1, res.Result.DifferingSegments)
	})

	t.Run("cached result is returned without repository access", func(t *testing.T) {
		t.Parallel()

		videoRepo := newFakeVideoRepo()
		cacheRepo := newFakeCacheRepo()
		cached := NewCompareVideosRes(videoID1, videoID2, "a.mp4", "b.mp4", &domain.ComparisonResult{TotalSegments: 3})
		cacheRepo.stored["comparison:"+videoID1+":"+videoID2+":cosine:0.1:2"] = cached

		uc := newComparisonUC(videoRepo, newFakeSegmentRepo(), cacheRepo, &fakeOutboxRepo{})

		res, err := uc.CompareVideos(context.Background(), NewCompareVideosReq(videoID1, videoID2, 0, "", 0))
		require.NoError(t, err)

		assert.True(t, res.FromCache)
		assert.Equal(t, 3, res.Result.TotalSegments)
		assert.Zero(t, videoRepo.calls)
	})

	t.Run("comparing a video with itself is rejected", func(t *testing.T) {
		t.Parallel()

		uc := newComparisonUC(newFakeVideoRepo(), newFakeSegmentRepo(), newFakeCacheRepo(), &fakeOutboxRepo{})

		_, err := uc.CompareVideos(context.Background(), NewCompareVideosReq(videoID1, videoID1, 0, "", 0))
		assert.ErrorIs(t, err, e.ErrSameVideo)
	})

	t.Run("unknown metric is rejected before repository access", func(t *testing.T) {
		t.Parallel()

		videoRepo := newFakeVideoRepo()
		uc := newComparisonUC(videoRepo, newFakeSegmentRepo(), newFakeCacheRepo(), &fakeOutboxRepo{})

		_, err := uc.CompareVideos(context.Background(), NewCompareVideosReq(videoID1, videoID2, 0, "manhattan", 0))
		assert.ErrorIs(t, err, e.ErrUnknownMetric)
		assert.Zero(t, videoRepo.calls)
	})

	t.Run("unknown video id", func(t *testing.T) {
		t.Parallel()

		videoRepo := newFakeVideoRepo(readyVideo(videoID1, "a.mp4", 2))
		uc := newComparisonUC(videoRepo, newFakeSegmentRepo(), newFakeCacheRepo(), &fakeOutboxRepo{})

		_, err := uc.CompareVideos(context.Background(), NewCompareVideosReq(videoID1, videoID2, 0, "", 0))
		assert.ErrorIs(t, err, e.ErrVideoNotFound)
	})

	t.Run("video that is still processing", func(t *testing.T) {
		t.Parallel()

		processing := readyVideo(videoID2, "b.mp4", 2)
		processing.Status = domain.VideoStatusProcessing

		videoRepo := newFakeVideoRepo(readyVideo(videoID1, "a.mp4", 2), processing)
		uc := newComparisonUC(videoRepo, newFakeSegmentRepo(), newFakeCacheRepo(), &fakeOutboxRepo{})

		_, err := uc.CompareVideos(context.Background(), NewCompareVideosReq(videoID1, videoID2, 0, "", 0))
		assert.ErrorIs(t, err, e.ErrVideoNotReady)
	})

	t.Run("ready video without stored segments", func(t *testing.T) {
		t.Parallel()

		videoRepo := newFakeVideoRepo(
			readyVideo(videoID1, "a.mp4", 2),
			readyVideo(videoID2, "b.mp4", 2),
		)
		uc := newComparisonUC(videoRepo, newFakeSegmentRepo(), newFakeCacheRepo(), &fakeOutboxRepo{})

		_, err := uc.CompareVideos(context.Background(), NewCompareVideosReq(videoID1, videoID2, 0, "", 0))
		assert.ErrorIs(t, err, e.ErrEmptyEmbeddingSet)
	})

	t.Run("explicit parameters override defaults", func(t *testing.T) {
		t.Parallel()

		videoRepo := newFakeVideoRepo(
			readyVideo(videoID1, "a.mp4", 1),
			readyVideo(videoID2, "b.mp4", 1),
		)
		segmentRepo := newFakeSegmentRepo()
		segmentRepo.segments[videoID1] = []domain.EmbeddingSegment{segAt(0, 1, 1, 0)}
		segmentRepo.segments[videoID2] = []domain.EmbeddingSegment{segAt(0, 1, 1, 0)}

		uc := newComparisonUC(videoRepo, segmentRepo, newFakeCacheRepo(), &fakeOutboxRepo{})

		res, err := uc.CompareVideos(context.Background(), NewCompareVideosReq(videoID1, videoID2, 0.5, "euclidean", 1))
		require.NoError(t, err)

		assert.Equal(t, 0.5, res.Result.ThresholdUsed)
		assert.Equal(t, 1, res.Result.TotalSegments)
	})
}
