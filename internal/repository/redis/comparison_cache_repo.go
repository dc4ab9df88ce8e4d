package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
	"github.com/sage-media/video-compare-backend/internal/cfg"
	"github.com/sage-media/video-compare-backend/internal/repository/redis/converter"
	"github.com/sage-media/video-compare-backend/internal/usecase"
	"github.com/sage-media/video-compare-backend/pkg/clients"
	"github.com/sage-media/video-compare-backend/pkg/e"
	"github.com/sage-media/video-compare-backend/pkg/logger"
)

// ComparisonCacheRepo кэширует результаты сравнения видео в Redis.
// Результат детерминирован по паре видео и параметрам, поэтому TTL достаточно короткого.
type ComparisonCacheRepo struct {
	client *clients.RedisClient
	conv   converter.ComparisonConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewComparisonCacheRepo(client *clients.RedisClient, conv converter.ComparisonConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *ComparisonCacheRepo {
	return &ComparisonCacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetComparison возвращает закэшированный результат сравнения.
// Промах кэша возвращается как (nil, nil).
func (r *ComparisonCacheRepo) GetComparison(ctx context.Context, key string) (*usecase.CompareVideosRes, error) {
	data, err := r.client.Client.Get(ctx, key).Bytes()
	if err != nil {
		if isCacheMiss(err) {
			return nil, nil
		}

		r.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.ComparisonRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		r.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		// битая запись не должна ломать сравнение
		if err := r.client.Client.Del(context.Background(), key).Err(); err != nil {
			r.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil
	}

	return r.conv.ToUseCase(&model), nil
}

// SetComparison кэширует результат сравнения с TTL из конфигурации.
func (r *ComparisonCacheRepo) SetComparison(ctx context.Context, key string, res *usecase.CompareVideosRes) error {
	model := r.conv.ToRedisModel(res)

	data, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("%s: failed to marshal comparison for caching: %w", whereami.WhereAmI(), err)
	}

	if err := r.client.Client.Set(ctx, key, data, r.cfg.ComparisonTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// isCacheMiss отличает промах кэша от ошибки соединения.
func isCacheMiss(err error) bool {
	return errors.Is(err, r.Nil)
}
