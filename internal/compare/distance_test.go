package compare

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-media/video-compare-backend/pkg/e"
)

func TestCosineDistance(t *testing.T) {
	t.Parallel()

	t.Run("identical vectors have zero distance", func(t *testing.T) {
		t.Parallel()
		d, err := CosineDistance([]float64{1, 2, 3}, []float64{1, 2, 3})
		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-12)
	})

	t.Run("orthogonal vectors have distance one", func(t *testing.T) {
		t.Parallel()
		d, err := CosineDistance([]float64{1, 0, 0}, []float64{0, 1, 0})
		require.NoError(t, err)
		assert.InDelta(t, 1, d, 1e-12)
	})

	t.Run("opposite vectors have distance two", func(t *testing.T) {
		t.Parallel()
		d, err := CosineDistance([]float64{1, 0}, []float64{-1, 0})
		require.NoError(t, err)
		assert.InDelta(t, 2, d, 1e-12)
	})

	t.Run("zero norm yields maximal distance instead of NaN", func(t *testing.T) {
		t.Parallel()
		d, err := CosineDistance([]float64{0, 0, 0}, []float64{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, 1.0, d)
		assert.False(t, math.IsNaN(d))

		d, err = CosineDistance([]float64{1, 2, 3}, []float64{0, 0, 0})
		require.NoError(t, err)
		assert.Equal(t, 1.0, d)
	})

	t.Run("dimension mismatch is fatal", func(t *testing.T) {
		t.Parallel()
		_, err := CosineDistance([]float64{1, 2}, []float64{1, 2, 3})
		require.Error(t, err)
		assert.ErrorIs(t, err, e.ErrDimensionMismatch)
	})

	t.Run("is symmetric", func(t *testing.T) {
		t.Parallel()
		v1 := []float64{0.3, -1.7, 2.4, 0.01}
		v2 := []float64{1.1, 0.2, -0.8, 3.5}

		d12, err := CosineDistance(v1, v2)
		require.NoError(t, err)
		d21, err := CosineDistance(v2, v1)
		require.NoError(t, err)
		assert.Equal(t, d12, d21)
	})
}

func TestEuclideanDistance(t *testing.T) {
	t.Parallel()

	t.Run("identical vectors have zero distance", func(t *testing.T) {
		t.Parallel()
		d, err := EuclideanDistance([]float64{1, 2, 3}, []float64{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, 0.0, d)
	})

	t.Run("classic 3-4-5 triangle", func(t *testing.T) {
		t.Parallel()
		d, err := EuclideanDistance([]float64{0, 0}, []float64{3, 4})
		require.NoError(t, err)
		assert.InDelta(t, 5, d, 1e-12)
	})

	t.Run("dimension mismatch is fatal", func(t *testing.T) {
		t.Parallel()
		_, err := EuclideanDistance([]float64{1}, []float64{1, 2})
		assert.ErrorIs(t, err, e.ErrDimensionMismatch)
	})
}

func TestParseMetric(t *testing.T) {
	t.Parallel()

	t.Run("known metrics", func(t *testing.T) {
		t.Parallel()
		m, err := ParseMetric("cosine")
		require.NoError(t, err)
		assert.Equal(t, MetricCosine, m)

		m, err = ParseMetric("euclidean")
		require.NoError(t, err)
		assert.Equal(t, MetricEuclidean, m)
	})

	t.Run("empty string falls back to cosine", func(t *testing.T) {
		t.Parallel()
		m, err := ParseMetric("")
		require.NoError(t, err)
		assert.Equal(t, MetricCosine, m)
	})

	t.Run("unknown metric is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := ParseMetric("manhattan")
		assert.ErrorIs(t, err, e.ErrUnknownMetric)
	})
}
