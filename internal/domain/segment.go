package domain

// EmbeddingSegment описывает короткое временное окно видео
// с вектором признаков, полученным от внешнего embedding-сервиса.
// Интервал окна — [StartOffsetSec, EndOffsetSec).
type EmbeddingSegment struct {
	StartOffsetSec float64
	EndOffsetSec   float64
	Vector         []float64
}

func NewEmbeddingSegment(startSec, endSec float64, vector []float64) *EmbeddingSegment {
	return &EmbeddingSegment{
		StartOffsetSec: startSec,
		EndOffsetSec:   endSec,
		Vector:         vector,
	}
}

// Covers сообщает, покрывает ли окно сегмента момент времени t.
func (s *EmbeddingSegment) Covers(t float64) bool {
	return t >= s.StartOffsetSec && t < s.EndOffsetSec
}

// VideoEmbeddingSet — последовательность сегментов одного видео,
// упорядоченная по StartOffsetSec по возрастанию.
// DurationSec — номинальная длительность исходного видео; может превышать
// конец последнего сегмента, если эмбеддинги покрывают его не полностью.
type VideoEmbeddingSet struct {
	Segments    []EmbeddingSegment
	DurationSec float64
}

func NewVideoEmbeddingSet(segments []EmbeddingSegment, durationSec float64) *VideoEmbeddingSet {
	return &VideoEmbeddingSet{
		Segments:    segments,
		DurationSec: durationSec,
	}
}
