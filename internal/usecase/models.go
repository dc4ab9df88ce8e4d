package usecase

import (
	"io"
	"time"

	"github.com/sage-media/video-compare-backend/internal/domain"
)

// VIDEO USECASE

// UploadVideoReq — запрос на регистрацию нового видео.
type UploadVideoReq struct {
	Filename string
	MimeType string // Content-Type из multipart (video/mp4)
	Size     int64  // фактический размер в байтах
	Body     io.Reader
}

// UploadVideoRes — ответ на регистрацию: идентификатор для опроса статуса.
type UploadVideoRes struct {
	VideoID string
	Status  domain.VideoStatus
}

// VideoInfoRes — DTO с информацией о видео и состоянии его эмбеддингов.
type VideoInfoRes struct {
	VideoID       string
	Filename      string
	Status        domain.VideoStatus
	DurationSec   *float64
	SegmentCount  int
	FailureReason *string
	CreatedAt     time.Time
}

// COMPARISON USECASE

// CompareVideosReq — запрос на сравнение двух видео.
// Нулевые значения параметров означают значения по умолчанию из конфигурации.
type CompareVideosReq struct {
	VideoID1         string
	VideoID2         string
	Threshold        float64
	Metric           string
	SamplingInterval float64
}

// CompareVideosRes — результат сравнения для внешнего использования.
type CompareVideosRes struct {
	VideoID1  string
	VideoID2  string
	Filename1 string
	Filename2 string
	Result    *domain.ComparisonResult
	FromCache bool
}

// INFRASTRUCTURE

// UploadObjectReq — запрос на загрузку видеофайла в S3.
type UploadObjectReq struct {
	VideoID  string
	Filename string
	MimeType string
	Size     int64
	Body     io.Reader
}

// UploadObjectRes — результат загрузки (ключ объекта в MinIO).
type UploadObjectRes struct {
	ObjectKey string
}

// GenerateEmbeddingsReq — запрос на генерацию эмбеддингов видео.
type GenerateEmbeddingsReq struct {
	VideoID  string
	VideoURL string // presigned-ссылка на объект в MinIO
}

// GenerateEmbeddingsRes — сегменты, возвращённые embedding-сервисом.
type GenerateEmbeddingsRes struct {
	Segments     []domain.EmbeddingSegment
	DurationSec  float64
	ModelVersion string
}

type WriteRawMessageReq struct {
	VideoID string
	Payload []byte
}

// MAPPERS

func NewUploadVideoReq(filename, mimeType string, size int64, body io.Reader) *UploadVideoReq {
	return &UploadVideoReq{
		Filename: filename,
		MimeType: mimeType,
		Size:     size,
		Body:     body,
	}
}

func NewUploadVideoRes(videoID string, status domain.VideoStatus) *UploadVideoRes {
	return &UploadVideoRes{
		VideoID: videoID,
		Status:  status,
	}
}

func NewVideoInfoRes(video *domain.Video) *VideoInfoRes {
	return &VideoInfoRes{
		VideoID:       video.ID,
		Filename:      video.Filename,
		Status:        video.Status,
		DurationSec:   video.DurationSec,
		SegmentCount:  video.SegmentCount,
		FailureReason: video.FailureReason,
		CreatedAt:     video.CreatedAt,
	}
}

func NewCompareVideosReq(videoID1, videoID2 string, threshold float64, metric string, samplingInterval float64) *CompareVideosReq {
	return &CompareVideosReq{
		VideoID1:         videoID1,
		VideoID2:         videoID2,
		Threshold:        threshold,
		Metric:           metric,
		SamplingInterval: samplingInterval,
	}
}

func NewCompareVideosRes(videoID1, videoID2, filename1, filename2 string, result *domain.ComparisonResult) *CompareVideosRes {
	return &CompareVideosRes{
		VideoID1:  videoID1,
		VideoID2:  videoID2,
		Filename1: filename1,
		Filename2: filename2,
		Result:    result,
	}
}

func NewUploadObjectReq(videoID, filename, mimeType string, size int64, body io.Reader) *UploadObjectReq {
	return &UploadObjectReq{
		VideoID:  videoID,
		Filename: filename,
		MimeType: mimeType,
		Size:     size,
		Body:     body,
	}
}

func NewUploadObjectRes(objectKey string) *UploadObjectRes {
	return &UploadObjectRes{ObjectKey: objectKey}
}

func NewGenerateEmbeddingsReq(videoID, videoURL string) *GenerateEmbeddingsReq {
	return &GenerateEmbeddingsReq{
		VideoID:  videoID,
		VideoURL: videoURL,
	}
}

func NewGenerateEmbeddingsRes(segments []domain.EmbeddingSegment, durationSec float64, modelVersion string) *GenerateEmbeddingsRes {
	return &GenerateEmbeddingsRes{
		Segments:     segments,
		DurationSec:  durationSec,
		ModelVersion: modelVersion,
	}
}

func NewWriteRawMessageReq(videoID string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		VideoID: videoID,
		Payload: payload,
	}
}
