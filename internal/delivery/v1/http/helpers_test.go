package http

import (
	"net/http"
	"testing"

	"github.com/sage-media/video-compare-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseThreshold(t *testing.T) {
	t.Parallel()

	t.Run("valid values", func(t *testing.T) {
		t.Parallel()

		cases := map[string]float64{
			"0.1":    0.1,
			"0.25":   0.25,
			"1":      1,
			"0.0001": 0.0001,
			"2.5":    2.5,
		}
		for input, want := range cases {
			got, err := parseThreshold(input)
			require.NoError(t, err, input)
			assert.InDelta(t, want, got, 1e-12, input)
		}
	})

	t.Run("empty string means default", func(t *testing.T) {
		t.Parallel()

		got, err := parseThreshold("")
		require.NoError(t, err)
		assert.Zero(t, got)

		got, err = parseThreshold("   ")
		require.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{"abc", "-0.1", "0", "0.00001", "1e99999", "10000"} {
			_, err := parseThreshold(input)
			assert.ErrorIs(t, err, e.ErrInvalidThreshold, input)
		}
	})
}

func TestParseInterval(t *testing.T) {
	t.Parallel()

	t.Run("valid values", func(t *testing.T) {
		t.Parallel()

		got, err := parseInterval("2")
		require.NoError(t, err)
		assert.Equal(t, 2.0, got)

		got, err = parseInterval("0.5")
		require.NoError(t, err)
		assert.Equal(t, 0.5, got)
	})

	t.Run("empty string means default", func(t *testing.T) {
		t.Parallel()

		got, err := parseInterval("")
		require.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{"xyz", "-2", "0", "3601"} {
			_, err := parseInterval(input)
			assert.ErrorIs(t, err, e.ErrInvalidInterval, input)
		}
	})
}

func TestParseVideoID(t *testing.T) {
	t.Parallel()

	t.Run("valid uuid", func(t *testing.T) {
		t.Parallel()

		id, err := parseVideoID("8b9f1fb5-7f62-4f1a-9c55-111111111111")
		require.NoError(t, err)
		assert.Equal(t, "8b9f1fb5-7f62-4f1a-9c55-111111111111", id)
	})

	t.Run("surrounding spaces are trimmed", func(t *testing.T) {
		t.Parallel()

		id, err := parseVideoID("  8b9f1fb5-7f62-4f1a-9c55-111111111111 ")
		require.NoError(t, err)
		assert.Equal(t, "8b9f1fb5-7f62-4f1a-9c55-111111111111", id)
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{"", "42", "not-a-uuid"} {
			_, err := parseVideoID(input)
			assert.ErrorIs(t, err, e.ErrInvalidVideoID, input)
		}
	})
}

func TestToHTTPResponse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		code int
	}{
		{e.ErrMissingFields, http.StatusBadRequest},
		{e.ErrNoVideoFile, http.StatusBadRequest},
		{e.ErrInvalidThreshold, http.StatusBadRequest},
		{e.ErrInvalidInterval, http.StatusBadRequest},
		{e.ErrInvalidVideoID, http.StatusBadRequest},
		{e.ErrSameVideo, http.StatusBadRequest},
		{e.ErrUnknownMetric, http.StatusBadRequest},
		{e.ErrDimensionMismatch, http.StatusBadRequest},
		{e.ErrEmptyEmbeddingSet, http.StatusBadRequest},
		{e.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{e.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{e.ErrVideoNotFound, http.StatusNotFound},
		{e.ErrVideoNotReady, http.StatusConflict},
		{e.ErrTransactionNotFound, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		code, msg := ToHTTPResponse(tc.err)
		assert.Equal(t, tc.code, code, tc.err.Error())
		assert.NotEmpty(t, msg)
	}

	t.Run("wrapped errors keep their mapping", func(t *testing.T) {
		t.Parallel()

		code, _ := ToHTTPResponse(e.Wrap("ComparisonUseCase.CompareVideos", e.ErrVideoNotReady))
		assert.Equal(t, http.StatusConflict, code)
	})
}
