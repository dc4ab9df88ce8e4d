// Package compare реализует движок посегментного сравнения двух видео:
// выравнивание сегментов по общей сетке времени, вычисление дистанции
// между векторами каждой пары, фильтрация по порогу и сводная статистика.
// Движок чистый и синхронный: без I/O, без состояния между вызовами,
// входные наборы никогда не мутируются.
package compare

import (
	"math"

	"github.com/sage-media/video-compare-backend/internal/domain"
	"github.com/sage-media/video-compare-backend/pkg/e"
)

const (
	// DefaultThreshold — порог чувствительности по умолчанию
	// (исторический диапазон для косинусной дистанции: 0.01–0.5).
	DefaultThreshold = 0.1

	// DefaultSamplingInterval — ширина слота выравнивания, секунды.
	DefaultSamplingInterval = 2.0
)

// Params — параметры одного сравнения.
type Params struct {
	Threshold        float64
	Metric           Metric
	SamplingInterval float64
}

// DefaultParams возвращает параметры по умолчанию: косинусная метрика,
// порог 0.1, слот 2 секунды.
func DefaultParams() Params {
	return Params{
		Threshold:        DefaultThreshold,
		Metric:           MetricCosine,
		SamplingInterval: DefaultSamplingInterval,
	}
}

// Validate проверяет параметры до начала вычислений (fail fast).
func (p Params) Validate() error {
	if p.Threshold <= 0 || math.IsNaN(p.Threshold) || math.IsInf(p.Threshold, 0) {
		return e.ErrNonPositiveThreshold
	}

	if p.SamplingInterval <= 0 || math.IsNaN(p.SamplingInterval) || math.IsInf(p.SamplingInterval, 0) {
		return e.ErrNonPositiveInterval
	}

	if !p.Metric.Valid() {
		return e.Wrap(string(p.Metric), e.ErrUnknownMetric)
	}

	return nil
}

// Compare сравнивает два набора эмбеддингов и возвращает интервалы различий
// со сводной статистикой. Детерминирован: одинаковые входы и параметры
// всегда дают одинаковый результат.
func Compare(set1, set2 *domain.VideoEmbeddingSet, p Params) (*domain.ComparisonResult, error) {
	const op = "compare.Compare"

	if err := p.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	if set1 == nil || len(set1.Segments) == 0 || set2 == nil || len(set2.Segments) == 0 {
		return nil, e.Wrap(op, e.ErrEmptySegments)
	}

	// Выравнивание требует сортировки по началу окна; сортируются копии,
	// чтобы не трогать вход вызывающей стороны.
	segs1 := sortedSegments(set1)
	segs2 := sortedSegments(set2)

	maxDuration := math.Max(set1.DurationSec, set2.DurationSec)
	slots := alignSlots(segs1, segs2, maxDuration, p.SamplingInterval)

	det, err := detectDifferences(slots, p.Metric, p.Threshold, p.SamplingInterval, maxDuration)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return buildResult(det, len(slots), p.Threshold), nil
}
