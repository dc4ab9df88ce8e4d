package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-media/video-compare-backend/internal/domain"
	"github.com/sage-media/video-compare-backend/pkg/e"
)

func params(threshold float64, metric Metric, interval float64) Params {
	return Params{Threshold: threshold, Metric: metric, SamplingInterval: interval}
}

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, DefaultParams().Validate())
	})

	tests := []struct {
		name    string
		p       Params
		wantErr error
	}{
		{"zero threshold", params(0, MetricCosine, 2), e.ErrNonPositiveThreshold},
		{"negative threshold", params(-0.1, MetricCosine, 2), e.ErrNonPositiveThreshold},
		{"zero interval", params(0.1, MetricCosine, 0), e.ErrNonPositiveInterval},
		{"negative interval", params(0.1, MetricEuclidean, -1), e.ErrNonPositiveInterval},
		{"unknown metric", params(0.1, Metric("hamming"), 2), e.ErrUnknownMetric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tt.p.Validate(), tt.wantErr)
		})
	}
}

func TestCompareScenarios(t *testing.T) {
	t.Parallel()

	t.Run("identical single-segment sets yield no differences", func(t *testing.T) {
		t.Parallel()
		a := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{*seg(0, 2, 1, 0, 0)}, 2)
		b := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{*seg(0, 2, 1, 0, 0)}, 2)

		res, err := Compare(a, b, params(0.1, MetricCosine, 2))
		require.NoError(t, err)

		assert.Empty(t, res.Differences)
		assert.Equal(t, 1, res.TotalSegments)
		assert.Equal(t, 0, res.DifferingSegments)
		assert.Equal(t, 0, res.MissingSegments)
		assert.Equal(t, 100.0, res.SimilarityPercent)
		assert.Equal(t, 0.1, res.ThresholdUsed)
	})

	t.Run("orthogonal vectors produce one full-distance interval", func(t *testing.T) {
		t.Parallel()
		a := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{*seg(0, 2, 1, 0, 0)}, 2)
		b := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{*seg(0, 2, 0, 1, 0)}, 2)

		res, err := Compare(a, b, params(0.1, MetricCosine, 2))
		require.NoError(t, err)

		require.Len(t, res.Differences, 1)
		assert.Equal(t, 0.0, res.Differences[0].StartSec)
		assert.Equal(t, 2.0, res.Differences[0].EndSec)
		assert.InDelta(t, 1.0, res.Differences[0].Distance, 1e-12)
		assert.Equal(t, 1, res.DifferingSegments)
		assert.Equal(t, 0, res.MissingSegments)
	})

	t.Run("shorter video produces sentinel entries regardless of threshold", func(t *testing.T) {
		t.Parallel()
		a := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{
			*seg(0, 2, 1, 0),
			*seg(2, 4, 1, 0),
		}, 4)
		b := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{*seg(0, 2, 1, 0)}, 2)

		// порог заведомо огромный: sentinel-запись всё равно обязана появиться
		res, err := Compare(a, b, params(1000, MetricCosine, 2))
		require.NoError(t, err)

		require.Len(t, res.Differences, 1)
		assert.Equal(t, 2.0, res.Differences[0].StartSec)
		assert.Equal(t, 4.0, res.Differences[0].EndSec)
		assert.True(t, IsMissingDistance(res.Differences[0].Distance))
		assert.Equal(t, 2, res.TotalSegments)
		assert.Equal(t, 0, res.DifferingSegments)
		assert.Equal(t, 1, res.MissingSegments)
	})

	t.Run("dimension mismatch aborts without partial result", func(t *testing.T) {
		t.Parallel()
		a := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{*seg(0, 2, 1, 2)}, 2)
		b := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{*seg(0, 2, 1, 2, 3)}, 2)

		res, err := Compare(a, b, params(0.1, MetricCosine, 2))
		assert.ErrorIs(t, err, e.ErrDimensionMismatch)
		assert.Nil(t, res)
	})

	t.Run("raising the threshold never raises the differing count", func(t *testing.T) {
		t.Parallel()
		a := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{
			*seg(0, 2, 1, 0, 0),
			*seg(2, 4, 0, 1, 0),
			*seg(4, 6, 0.9, 0.1, 0),
		}, 6)
		b := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{
			*seg(0, 2, 1, 0, 0),
			*seg(2, 4, 1, 0, 0),
			*seg(4, 6, 1, 0, 0),
		}, 6)

		low, err := Compare(a, b, params(0.05, MetricCosine, 2))
		require.NoError(t, err)
		high, err := Compare(a, b, params(0.4, MetricCosine, 2))
		require.NoError(t, err)

		assert.LessOrEqual(t, high.DifferingSegments, low.DifferingSegments)
	})
}

func TestCompareProperties(t *testing.T) {
	t.Parallel()

	t.Run("self comparison is empty for both metrics", func(t *testing.T) {
		t.Parallel()
		s := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{
			*seg(0, 2, 0.5, 1.5, -0.3),
			*seg(2, 4, 0.1, 0.1, 0.1),
			*seg(4, 6, -2, 3, 4),
		}, 6)

		for _, metric := range []Metric{MetricCosine, MetricEuclidean} {
			res, err := Compare(s, s, params(0.01, metric, 2))
			require.NoError(t, err)
			assert.Empty(t, res.Differences, "metric %s", metric)
			assert.Equal(t, 100.0, res.SimilarityPercent)
		}
	})

	t.Run("comparison is symmetric", func(t *testing.T) {
		t.Parallel()
		a := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{
			*seg(0, 2, 1, 0),
			*seg(2, 4, 0, 1),
		}, 4)
		b := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{
			*seg(0, 2, 0, 1),
			*seg(2, 4, 0, 1),
		}, 4)

		ab, err := Compare(a, b, params(0.1, MetricCosine, 2))
		require.NoError(t, err)
		ba, err := Compare(b, a, params(0.1, MetricCosine, 2))
		require.NoError(t, err)

		assert.Equal(t, ab.Differences, ba.Differences)
		assert.Equal(t, ab.DifferingSegments, ba.DifferingSegments)
		assert.Equal(t, ab.MissingSegments, ba.MissingSegments)
		assert.Equal(t, ab.TotalSegments, ba.TotalSegments)
	})

	t.Run("every slot past the shorter video is a sentinel entry", func(t *testing.T) {
		t.Parallel()
		longSegs := make([]domain.EmbeddingSegment, 0, 10)
		for i := 0; i < 10; i++ {
			longSegs = append(longSegs, *seg(float64(i*2), float64(i*2+2), 1, 0))
		}
		a := domain.NewVideoEmbeddingSet(longSegs, 20)
		b := domain.NewVideoEmbeddingSet(longSegs[:3], 6)

		res, err := Compare(a, b, params(0.1, MetricCosine, 2))
		require.NoError(t, err)

		// слоты t=6..18 — семь sentinel-записей, молчаливых пропусков нет
		assert.Equal(t, 10, res.TotalSegments)
		assert.Equal(t, 7, res.MissingSegments)
		require.Len(t, res.Differences, 7)
		for i, d := range res.Differences {
			assert.True(t, IsMissingDistance(d.Distance))
			assert.Equal(t, float64(6+i*2), d.StartSec)
		}
	})

	t.Run("unsorted input is aligned correctly and left unmodified", func(t *testing.T) {
		t.Parallel()
		a := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{
			*seg(2, 4, 0, 1),
			*seg(0, 2, 1, 0),
		}, 4)
		b := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{
			*seg(0, 2, 1, 0),
			*seg(2, 4, 0, 1),
		}, 4)

		res, err := Compare(a, b, params(0.1, MetricCosine, 2))
		require.NoError(t, err)
		assert.Empty(t, res.Differences)

		// вход не мутирован
		assert.Equal(t, 2.0, a.Segments[0].StartOffsetSec)
	})

	t.Run("differences are ordered by start ascending", func(t *testing.T) {
		t.Parallel()
		a := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{
			*seg(0, 2, 1, 0),
			*seg(2, 4, 1, 0),
			*seg(4, 6, 1, 0),
		}, 6)
		b := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{
			*seg(0, 2, 0, 1),
			*seg(2, 4, 1, 0),
			*seg(4, 6, 0, 1),
		}, 6)

		res, err := Compare(a, b, params(0.1, MetricCosine, 2))
		require.NoError(t, err)

		require.Len(t, res.Differences, 2)
		assert.Less(t, res.Differences[0].StartSec, res.Differences[1].StartSec)
	})

	t.Run("last interval is clamped to the video duration", func(t *testing.T) {
		t.Parallel()
		a := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{
			*seg(0, 2, 1, 0),
			*seg(2, 3, 0, 1),
		}, 3)
		b := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{
			*seg(0, 2, 1, 0),
			*seg(2, 3, 1, 0),
		}, 3)

		res, err := Compare(a, b, params(0.1, MetricCosine, 2))
		require.NoError(t, err)

		require.Len(t, res.Differences, 1)
		assert.Equal(t, 2.0, res.Differences[0].StartSec)
		assert.Equal(t, 3.0, res.Differences[0].EndSec)
	})

	t.Run("gap on both sides is skipped, not fabricated", func(t *testing.T) {
		t.Parallel()
		a := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{
			*seg(0, 2, 1, 0),
			*seg(4, 6, 1, 0),
		}, 6)
		b := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{
			*seg(0, 2, 1, 0),
			*seg(4, 6, 1, 0),
		}, 6)

		res, err := Compare(a, b, params(0.1, MetricCosine, 2))
		require.NoError(t, err)

		assert.Empty(t, res.Differences)
		assert.Equal(t, 3, res.TotalSegments)
		assert.Equal(t, 1, res.SkippedSlots)
	})

	t.Run("degenerate zero vector counts as maximally different", func(t *testing.T) {
		t.Parallel()
		a := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{*seg(0, 2, 0, 0)}, 2)
		b := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{*seg(0, 2, 1, 0)}, 2)

		res, err := Compare(a, b, params(0.1, MetricCosine, 2))
		require.NoError(t, err)

		require.Len(t, res.Differences, 1)
		assert.Equal(t, 1.0, res.Differences[0].Distance)
		assert.False(t, IsMissingDistance(res.Differences[0].Distance))
		assert.Equal(t, 1, res.DifferingSegments)
	})
}

func TestCompareInputValidation(t *testing.T) {
	t.Parallel()

	valid := domain.NewVideoEmbeddingSet([]domain.EmbeddingSegment{*seg(0, 2, 1)}, 2)

	t.Run("nil sets are rejected", func(t *testing.T) {
		t.Parallel()
		_, err := Compare(nil, valid, DefaultParams())
		assert.ErrorIs(t, err, e.ErrEmptySegments)

		_, err = Compare(valid, nil, DefaultParams())
		assert.ErrorIs(t, err, e.ErrEmptySegments)
	})

	t.Run("empty segment lists are rejected", func(t *testing.T) {
		t.Parallel()
		empty := domain.NewVideoEmbeddingSet(nil, 10)
		_, err := Compare(empty, valid, DefaultParams())
		assert.ErrorIs(t, err, e.ErrEmptySegments)
	})

	t.Run("invalid params fail before any computation", func(t *testing.T) {
		t.Parallel()
		_, err := Compare(valid, valid, params(-1, MetricCosine, 2))
		assert.ErrorIs(t, err, e.ErrNonPositiveThreshold)

		_, err = Compare(valid, valid, params(0.1, Metric("chebyshev"), 2))
		assert.ErrorIs(t, err, e.ErrUnknownMetric)
	})
}

func TestSimilarityPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100.0, similarityPercent(0, 0))
	assert.Equal(t, 100.0, similarityPercent(4, 0))
	assert.Equal(t, 50.0, similarityPercent(4, 2))
	assert.Equal(t, 0.0, similarityPercent(4, 4))
	assert.Equal(t, 0.0, similarityPercent(2, 5)) // защита от отрицательных значений
}
