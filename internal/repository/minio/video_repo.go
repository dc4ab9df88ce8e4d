package minio

import (
	"context"
	"net/url"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
	"github.com/sage-media/video-compare-backend/internal/cfg"
	"github.com/sage-media/video-compare-backend/internal/domain"
	"github.com/sage-media/video-compare-backend/pkg/e"
)

// presignedURLExpiry — срок жизни ссылки на видеофайл.
// Должен покрывать время генерации эмбеддингов внешним сервисом.
const presignedURLExpiry = 2 * time.Hour

// VideoRepo реализует репозиторий видеофайлов поверх MinIO.
type VideoRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewVideoRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *VideoRepo {
	return &VideoRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload потоково загружает видео в MinIO и возвращает ключ объекта.
func (v *VideoRepo) Upload(ctx context.Context, obj *domain.VideoObject) (string, error) {
	info, err := v.mc.PutObject(ctx, v.cfg.BucketName, obj.ObjectKey, obj.Body, *obj.Size, minio.PutObjectOptions{
		ContentType: *obj.ContentType,
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет объект из MinIO по указанному ключу.
func (v *VideoRepo) Delete(ctx context.Context, key string) error {
	if err := v.mc.RemoveObject(ctx, v.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// PresignedURL возвращает временную ссылку на видеофайл
// для передачи внешнему сервису генерации эмбеддингов.
func (v *VideoRepo) PresignedURL(ctx context.Context, key string) (string, error) {
	u, err := v.mc.PresignedGetObject(ctx, v.cfg.BucketName, key, presignedURLExpiry, url.Values{})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return u.String(), nil
}
