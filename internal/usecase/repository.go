package usecase

import (
	"context"

	"github.com/sage-media/video-compare-backend/internal/domain"
)

type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) (*domain.Video, error)
	GetByID(ctx context.Context, id string) (*domain.Video, error)
	MarkReady(ctx context.Context, id string, durationSec float64, segmentCount int) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type SegmentRepository interface {
	Upsert(ctx context.Context, embeddings []domain.Embedding) error
	FetchByVideoID(ctx context.Context, videoID string) ([]domain.EmbeddingSegment, error)
}

type VideoFileRepository interface {
	Upload(ctx context.Context, obj *domain.VideoObject) (string, error)
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string) (string, error)
}

type CacheRepository interface {
	GetComparison(ctx context.Context, key string) (*CompareVideosRes, error)
	SetComparison(ctx context.Context, key string, res *CompareVideosRes) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}
