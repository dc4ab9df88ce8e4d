package domain

// DifferenceInterval описывает один слот времени, в котором видео различаются.
// Distance — вычисленная дистанция метрики либо sentinel-значение,
// когда у одной из сторон нет сегмента для этого слота.
type DifferenceInterval struct {
	StartSec float64
	EndSec   float64
	Distance float64
}

func NewDifferenceInterval(startSec, endSec, distance float64) DifferenceInterval {
	return DifferenceInterval{
		StartSec: startSec,
		EndSec:   endSec,
		Distance: distance,
	}
}

// ComparisonResult — итог одного сравнения двух видео.
// DifferingSegments считает только «настоящие» семантические различия;
// слоты без сегмента с одной стороны учитываются отдельно в MissingSegments.
// SkippedSlots — слоты без данных с обеих сторон (сигнал о качестве входа).
type ComparisonResult struct {
	Differences       []DifferenceInterval
	TotalSegments     int
	DifferingSegments int
	MissingSegments   int
	SkippedSlots      int
	ThresholdUsed     float64
	SimilarityPercent float64
}
