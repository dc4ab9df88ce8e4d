package domain

import "time"

// VideoStatus — стадия обработки видео.
type VideoStatus string

const (
	VideoStatusProcessing VideoStatus = "processing" // эмбеддинги ещё генерируются
	VideoStatusReady      VideoStatus = "ready"      // сегменты сохранены, видео готово к сравнению
	VideoStatusFailed     VideoStatus = "failed"
)

// Video описывает загруженное видео и состояние его эмбеддингов.
type Video struct {
	ID            string // uuid
	Filename      string
	ObjectKey     string // ключ объекта в MinIO
	Status        VideoStatus
	DurationSec   *float64 // становится известна после генерации эмбеддингов
	SegmentCount  int
	FailureReason *string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func NewVideo(id, filename, objectKey string) *Video {
	return &Video{
		ID:        id,
		Filename:  filename,
		ObjectKey: objectKey,
		Status:    VideoStatusProcessing,
	}
}

// IsReady сообщает, готово ли видео к участию в сравнении.
func (v *Video) IsReady() bool {
	return v.Status == VideoStatusReady
}
