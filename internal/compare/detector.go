package compare

import (
	"math"

	"github.com/sage-media/video-compare-backend/internal/domain"
)

// MissingSegmentDistance — sentinel-дистанция слота, у которого нет сегмента
// с одной из сторон. Конечное значение вместо +Inf: результат сериализуется
// в JSON, а Inf в нём не представим.
const MissingSegmentDistance = math.MaxFloat64

// IsMissingDistance различает sentinel-записи и вычисленные дистанции.
func IsMissingDistance(d float64) bool {
	return d == MissingSegmentDistance
}

// detection — результат прохода детектора по слотам.
type detection struct {
	diffs     []domain.DifferenceInterval
	differing int // слоты с настоящей семантической разницей
	missing   int // слоты без сегмента с одной стороны
	skipped   int // слоты без данных с обеих сторон
}

// detectDifferences фильтрует выровненные слоты по порогу.
// Отсутствие сегмента с одной стороны — всегда различие, независимо от порога:
// отсутствие контента не бывает «похожим». Слот без данных с обеих сторон
// пропускается и учитывается как сигнал о качестве входа.
func detectDifferences(slots []alignedSlot, metric Metric, threshold, interval, maxDuration float64) (*detection, error) {
	dist := distanceFunc(metric)
	det := &detection{diffs: make([]domain.DifferenceInterval, 0)}

	for _, slot := range slots {
		end := math.Min(slot.T+interval, maxDuration)

		switch {
		case slot.Seg1 != nil && slot.Seg2 != nil:
			d, err := dist(slot.Seg1.Vector, slot.Seg2.Vector)
			if err != nil {
				return nil, err
			}

			if d > threshold {
				det.diffs = append(det.diffs, domain.NewDifferenceInterval(slot.T, end, d))
				det.differing++
			}
		case slot.Seg1 != nil || slot.Seg2 != nil:
			det.diffs = append(det.diffs, domain.NewDifferenceInterval(slot.T, end, MissingSegmentDistance))
			det.missing++
		default:
			det.skipped++
		}
	}

	return det, nil
}
