//go:generate goverter gen github.com/sage-media/video-compare-backend/internal/repository/redis/converter

package converter

import (
	"github.com/sage-media/video-compare-backend/internal/usecase"
)

// ComparisonConverter преобразует результат сравнения между usecase и моделью Redis.
// goverter:converter
type ComparisonConverter interface {
	ToRedisModel(entity *usecase.CompareVideosRes) *ComparisonRedisModel
	// goverter:ignore FromCache
	ToUseCase(model *ComparisonRedisModel) *usecase.CompareVideosRes
}
