package compare

import (
	"fmt"

	"github.com/sage-media/video-compare-backend/pkg/e"
	"gonum.org/v1/gonum/floats"
)

// maxCosineDistance возвращается для вырожденных (нулевых) векторов:
// пустой сегмент нельзя признать похожим ни на что.
const maxCosineDistance = 1.0

// CosineDistance вычисляет 1 - cos(v1, v2).
// Векторы с нулевой нормой дают максимальную дистанцию вместо деления на ноль.
func CosineDistance(v1, v2 []float64) (float64, error) {
	if err := checkDimensions(v1, v2); err != nil {
		return 0, err
	}

	norm1 := floats.Norm(v1, 2)
	norm2 := floats.Norm(v2, 2)
	if norm1 == 0 || norm2 == 0 {
		return maxCosineDistance, nil
	}

	return 1 - floats.Dot(v1, v2)/(norm1*norm2), nil
}

// EuclideanDistance вычисляет L2-дистанцию между векторами.
func EuclideanDistance(v1, v2 []float64) (float64, error) {
	if err := checkDimensions(v1, v2); err != nil {
		return 0, err
	}

	return floats.Distance(v1, v2, 2), nil
}

// distanceFunc возвращает функцию дистанции для метрики.
// Метрика валидируется раньше, в Params.Validate.
func distanceFunc(m Metric) func(v1, v2 []float64) (float64, error) {
	if m == MetricEuclidean {
		return EuclideanDistance
	}
	return CosineDistance
}

// checkDimensions запрещает сравнение векторов разной размерности:
// вход с несовпадающими размерностями повреждён, усечение недопустимо.
func checkDimensions(v1, v2 []float64) error {
	if len(v1) != len(v2) {
		return e.Wrap(fmt.Sprintf("len(v1)=%d, len(v2)=%d", len(v1), len(v2)), e.ErrDimensionMismatch)
	}

	return nil
}
