package compare

import (
	"math"
	"sort"

	"github.com/sage-media/video-compare-backend/internal/domain"
)

// alignedSlot — пара (возможно отсутствующих) сегментов,
// покрывающих один и тот же слот времени t.
type alignedSlot struct {
	T    float64
	Seg1 *domain.EmbeddingSegment
	Seg2 *domain.EmbeddingSegment
}

// slotCount возвращает число слотов выравнивания для длительности maxDuration.
// Слоты идут с шагом interval начиная с нуля; последний слот покрывает хвост
// [t, maxDuration), поэтому слот ровно на границе длительности не создаётся.
func slotCount(maxDuration, interval float64) int {
	if maxDuration <= 0 {
		return 0
	}
	return int(math.Ceil(maxDuration / interval))
}

// alignSlots отображает сегменты двух наборов на общую сетку слотов.
// Наборы должны быть отсортированы по StartOffsetSec (см. sortedSegments).
func alignSlots(segs1, segs2 []domain.EmbeddingSegment, maxDuration, interval float64) []alignedSlot {
	n := slotCount(maxDuration, interval)
	slots := make([]alignedSlot, 0, n)

	var idx1, idx2 int
	for k := 0; k < n; k++ {
		t := float64(k) * interval
		slots = append(slots, alignedSlot{
			T:    t,
			Seg1: segmentAt(segs1, &idx1, t),
			Seg2: segmentAt(segs2, &idx2, t),
		})
	}

	return slots
}

// segmentAt возвращает первый (по возрастанию начала) сегмент, покрывающий t,
// либо nil. Курсор idx продвигается только вперёд: слоты запрашиваются
// в порядке возрастания t, поэтому уже пройденные сегменты не пересматриваются.
func segmentAt(segs []domain.EmbeddingSegment, idx *int, t float64) *domain.EmbeddingSegment {
	for *idx < len(segs) && segs[*idx].EndOffsetSec <= t {
		*idx++
	}

	if *idx < len(segs) && segs[*idx].Covers(t) {
		return &segs[*idx]
	}

	return nil
}

// sortedSegments возвращает копию сегментов, отсортированную по началу окна.
// Копия нужна, чтобы движок никогда не мутировал входной VideoEmbeddingSet.
func sortedSegments(set *domain.VideoEmbeddingSet) []domain.EmbeddingSegment {
	segs := make([]domain.EmbeddingSegment, len(set.Segments))
	copy(segs, set.Segments)

	sort.SliceStable(segs, func(i, j int) bool {
		return segs[i].StartOffsetSec < segs[j].StartOffsetSec
	})

	return segs
}
