package usecase

import "context"

// EmbedderInfra — внешний сервис генерации эмбеддингов видео.
type EmbedderInfra interface {
	GenerateEmbeddings(ctx context.Context, req *GenerateEmbeddingsReq) (*GenerateEmbeddingsRes, error)
}

// VideoStorageInfra — загрузка видеофайлов в S3 с компенсирующей очисткой.
type VideoStorageInfra interface {
	UploadVideo(ctx context.Context, req *UploadObjectReq) (*UploadObjectRes, error)
	CleanupObjects(keys []string)
	WaitForCleanup(ctx context.Context) error
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
