package converter

import (
	"time"

	"github.com/sage-media/video-compare-backend/internal/domain"
	"github.com/sage-media/video-compare-backend/internal/usecase"
)

// VideoModel представляет запись таблицы videos в PostgreSQL.
type VideoModel struct {
	ID            string             `db:"id"`
	Filename      string             `db:"filename"`
	ObjectKey     string             `db:"object_key"`
	Status        domain.VideoStatus `db:"status"`
	DurationSec   *float64           `db:"duration_sec"`
	SegmentCount  int                `db:"segment_count"`
	FailureReason *string            `db:"failure_reason"`
	CreatedAt     time.Time          `db:"created_at"`
	UpdatedAt     *time.Time         `db:"updated_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64                   `db:"id"`
	EventID     string                  `db:"event_id"`
	EventType   usecase.OutboxEventType `db:"event_type"`
	VideoID     string                  `db:"video_id"`
	Payload     []byte                  `db:"payload"`
	Status      usecase.OutboxStatus    `db:"status"`
	CreatedAt   time.Time               `db:"created_at"`
	ProcessedAt *time.Time              `db:"processed_at"`
}
