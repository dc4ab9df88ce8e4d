package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sage-media/video-compare-backend/internal/domain"
	"github.com/sage-media/video-compare-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorageInfra struct {
	mu        sync.Mutex
	uploadErr error
	cleaned   [][]string
}

func (f *fakeStorageInfra) UploadVideo(ctx context.Context, req *UploadObjectReq) (*UploadObjectRes, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return NewUploadObjectRes(fmt.Sprintf("videos/%s.mp4", req.VideoID)), nil
}

func (f *fakeStorageInfra) CleanupObjects(keys []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleaned = append(f.cleaned, keys)
}

func (f *fakeStorageInfra) WaitForCleanup(ctx context.Context) error { return nil }

type fakeFileRepo struct {
	presignErr error
}

func (f *fakeFileRepo) Upload(ctx context.Context, obj *domain.VideoObject) (string, error) {
	return obj.ObjectKey, nil
}

func (f *fakeFileRepo) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeFileRepo) PresignedURL(ctx context.Context, key string) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://storage.local/" + key, nil
}

type fakeEmbedder struct {
	res *GenerateEmbeddingsRes
	err error
}

func (f *fakeEmbedder) GenerateEmbeddings(ctx context.Context, req *GenerateEmbeddingsReq) (*GenerateEmbeddingsRes, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

func newVideoUC(videoRepo *fakeVideoRepo, segmentRepo *fakeSegmentRepo, storage *fakeStorageInfra, embedder *fakeEmbedder, outboxRepo *fakeOutboxRepo) *VideoUseCase {
	return NewVideoUC(
		videoRepo,
		segmentRepo,
		&fakeFileRepo{},
		storage,
		embedder,
		outboxRepo,
		fakeDB{},
		nopLogger{},
		context.Background(),
	)
}

func uploadReq() *UploadVideoReq {
	return NewUploadVideoReq("clip.mp4", "video/mp4", 1024, strings.NewReader("fake video bytes"))
}

func embeddingsFixture() *GenerateEmbeddingsRes {
	return NewGenerateEmbeddingsRes(
		[]domain.EmbeddingSegment{
			segAt(0, 2, 1, 0),
			segAt(2, 4, 0, 1),
		},
		4.0,
		"Marengo-retrieval-2.7",
	)
}

func videoByID(t *testing.T, repo *fakeVideoRepo, id string) *domain.Video {
	t.Helper()
	v, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return v
}

func TestVideoUseCase_RegisterNewVideo(t *testing.T) {
	t.Parallel()

	t.Run("happy path ends with ready video", func(t *testing.T) {
		t.Parallel()

		videoRepo := newFakeVideoRepo()
		segmentRepo := newFakeSegmentRepo()
		outboxRepo := &fakeOutboxRepo{}
		uc := newVideoUC(videoRepo, segmentRepo, &fakeStorageInfra{}, &fakeEmbedder{res: embeddingsFixture()}, outboxRepo)

		res, err := uc.RegisterNewVideo(context.Background(), uploadReq())
		require.NoError(t, err)
		require.NotEmpty(t, res.VideoID)
		assert.Equal(t, domain.VideoStatusProcessing, res.Status)

		require.Eventually(t, func() bool {
			return videoByID(t, videoRepo, res.VideoID).IsReady()
		}, time.Second, 10*time.Millisecond)

		video := videoByID(t, videoRepo, res.VideoID)
		require.NotNil(t, video.DurationSec)
		assert.Equal(t, 4.0, *video.DurationSec)
		assert.Equal(t, 2, video.SegmentCount)

		segmentRepo.mu.Lock()
		upserted := len(segmentRepo.upserted)
		segmentRepo.mu.Unlock()
		assert.Equal(t, 2, upserted)

		require.Eventually(t, func() bool {
			return len(outboxRepo.eventTypes()) == 2
		}, time.Second, 10*time.Millisecond)
		assert.Equal(t, []OutboxEventType{EventVideoRegistered, EventVideoEmbedded}, outboxRepo.eventTypes())
	})

	t.Run("embedder failure marks video as failed", func(t *testing.T) {
		t.Parallel()

		videoRepo := newFakeVideoRepo()
		uc := newVideoUC(videoRepo, newFakeSegmentRepo(), &fakeStorageInfra{}, &fakeEmbedder{err: fmt.Errorf("provider unavailable")}, &fakeOutboxRepo{})

		res, err := uc.RegisterNewVideo(context.Background(), uploadReq())
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			return videoByID(t, videoRepo, res.VideoID).Status == domain.VideoStatusFailed
		}, time.Second, 10*time.Millisecond)

		video := videoByID(t, videoRepo, res.VideoID)
		require.NotNil(t, video.FailureReason)
		assert.Contains(t, *video.FailureReason, "provider unavailable")
	})

	t.Run("empty embedding set marks video as failed", func(t *testing.T) {
		t.Parallel()

		videoRepo := newFakeVideoRepo()
		uc := newVideoUC(videoRepo, newFakeSegmentRepo(), &fakeStorageInfra{},
			&fakeEmbedder{res: NewGenerateEmbeddingsRes(nil, 0, "")}, &fakeOutboxRepo{})

		res, err := uc.RegisterNewVideo(context.Background(), uploadReq())
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			return videoByID(t, videoRepo, res.VideoID).Status == domain.VideoStatusFailed
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("missing filename is rejected", func(t *testing.T) {
		t.Parallel()

		uc := newVideoUC(newFakeVideoRepo(), newFakeSegmentRepo(), &fakeStorageInfra{}, &fakeEmbedder{}, &fakeOutboxRepo{})

		_, err := uc.RegisterNewVideo(context.Background(), NewUploadVideoReq("  ", "video/mp4", 10, strings.NewReader("x")))
		assert.ErrorIs(t, err, e.ErrMissingFields)
	})

	t.Run("empty body is rejected", func(t *testing.T) {
		t.Parallel()

		uc := newVideoUC(newFakeVideoRepo(), newFakeSegmentRepo(), &fakeStorageInfra{}, &fakeEmbedder{}, &fakeOutboxRepo{})

		_, err := uc.RegisterNewVideo(context.Background(), NewUploadVideoReq("clip.mp4", "video/mp4", 0, nil))
		assert.ErrorIs(t, err, e.ErrNoVideoFile)
	})

	t.Run("storage failure aborts registration", func(t *testing.T) {
		t.Parallel()

		storage := &fakeStorageInfra{uploadErr: e.ErrFileTooLarge}
		videoRepo := newFakeVideoRepo()
		uc := newVideoUC(videoRepo, newFakeSegmentRepo(), storage, &fakeEmbedder{}, &fakeOutboxRepo{})

		_, err := uc.RegisterNewVideo(context.Background(), uploadReq())
		assert.ErrorIs(t, err, e.ErrFileTooLarge)
		assert.Empty(t, videoRepo.videos)
	})
}

func TestVideoUseCase_GetVideoInfo(t *testing.T) {
	t.Parallel()

	t.Run("returns stored video", func(t *testing.T) {
		t.Parallel()

		video := readyVideo(videoID1, "clip.mp4", 8)
		uc := newVideoUC(newFakeVideoRepo(video), newFakeSegmentRepo(), &fakeStorageInfra{}, &fakeEmbedder{}, &fakeOutboxRepo{})

		info, err := uc.GetVideoInfo(context.Background(), videoID1)
		require.NoError(t, err)

		assert.Equal(t, videoID1, info.VideoID)
		assert.Equal(t, "clip.mp4", info.Filename)
		assert.Equal(t, domain.VideoStatusReady, info.Status)
	})

	t.Run("unknown video", func(t *testing.T) {
		t.Parallel()

		uc := newVideoUC(newFakeVideoRepo(), newFakeSegmentRepo(), &fakeStorageInfra{}, &fakeEmbedder{}, &fakeOutboxRepo{})

		_, err := uc.GetVideoInfo(context.Background(), videoID2)
		assert.ErrorIs(t, err, e.ErrVideoNotFound)
	})
}
