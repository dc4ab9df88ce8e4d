package qdrant

import (
	"context"
	"sort"

	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
	"github.com/sage-media/video-compare-backend/internal/cfg"
	"github.com/sage-media/video-compare-backend/internal/domain"
	"github.com/sage-media/video-compare-backend/pkg/e"
)

// scrollLimit ограничивает выборку сегментов одного видео.
// При интервале в несколько секунд даже многочасовое видео укладывается в лимит.
const scrollLimit = 8192

// SegmentRepo репозиторий для работы с векторами сегментов видео в Qdrant
type SegmentRepo struct {
	client *qdrant.Client
	cfg    *cfg.QdrantCfg
}

func NewSegmentRepo(client *qdrant.Client, cfg *cfg.QdrantCfg) *SegmentRepo {
	return &SegmentRepo{
		client: client,
		cfg:    cfg,
	}
}

// Upsert сохраняет или обновляет векторы сегментов в указанной коллекции Qdrant.
func (q *SegmentRepo) Upsert(ctx context.Context, embeddings []domain.Embedding) error {
	points := make([]*qdrant.PointStruct, 0, len(embeddings))
	for _, emb := range embeddings {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(emb.ID),
			Vectors: qdrant.NewVectors(toFloat32(emb.Vector)...),
			Payload: qdrant.NewValueMap(emb.Payload),
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Points:         points,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// FetchByVideoID возвращает все сегменты видео, отсортированные по началу интервала.
func (q *SegmentRepo) FetchByVideoID(ctx context.Context, videoID string) ([]domain.EmbeddingSegment, error) {
	points, err := q.client.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("video_id", videoID),
			},
		},
		Limit:       qdrant.PtrOf(uint32(scrollLimit)),
		WithVectors: qdrant.NewWithVectors(true),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	segments := make([]domain.EmbeddingSegment, 0, len(points))
	for _, point := range points {
		segments = append(segments, domain.EmbeddingSegment{
			StartOffsetSec: point.Payload["start_offset_sec"].GetDoubleValue(),
			EndOffsetSec:   point.Payload["end_offset_sec"].GetDoubleValue(),
			Vector:         toFloat64(point.Vectors.GetVector().GetData()),
		})
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].StartOffsetSec < segments[j].StartOffsetSec
	})

	return segments, nil
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
