package compare

import (
	"github.com/sage-media/video-compare-backend/internal/domain"
)

// buildResult агрегирует результат детектора в ComparisonResult.
// totalSegments — число всех оценённых слотов, включая те, что не дали записи.
func buildResult(det *detection, totalSegments int, threshold float64) *domain.ComparisonResult {
	return &domain.ComparisonResult{
		Differences:       det.diffs,
		TotalSegments:     totalSegments,
		DifferingSegments: det.differing,
		MissingSegments:   det.missing,
		SkippedSlots:      det.skipped,
		ThresholdUsed:     threshold,
		SimilarityPercent: similarityPercent(totalSegments, det.differing+det.missing),
	}
}

// similarityPercent — доля слотов без различий.
// Нет данных — нет обнаруженных различий, поэтому пустой вход даёт 100%.
func similarityPercent(total, dissimilar int) float64 {
	if total == 0 {
		return 100
	}

	p := 100 * float64(total-dissimilar) / float64(total)
	if p < 0 {
		return 0
	}

	return p
}
