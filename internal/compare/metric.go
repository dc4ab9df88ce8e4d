package compare

import (
	"github.com/sage-media/video-compare-backend/pkg/e"
)

// Metric — метрика дистанции между векторами сегментов.
type Metric string

const (
	MetricCosine    Metric = "cosine"
	MetricEuclidean Metric = "euclidean"
)

// ParseMetric разбирает имя метрики. Пустая строка означает метрику по умолчанию.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricCosine, MetricEuclidean:
		return Metric(s), nil
	case "":
		return MetricCosine, nil
	default:
		return "", e.Wrap(s, e.ErrUnknownMetric)
	}
}

// Valid сообщает, известна ли метрика движку.
func (m Metric) Valid() bool {
	return m == MetricCosine || m == MetricEuclidean
}
