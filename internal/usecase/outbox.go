package usecase

import "time"

// OutboxStatus — стадия обработки события в таблице outbox_events.
type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

// OutboxEventType — тип доменного события.
type OutboxEventType string

const (
	EventVideoRegistered     OutboxEventType = "video.registered"
	EventVideoEmbedded       OutboxEventType = "video.embedded"
	EventComparisonCompleted OutboxEventType = "comparison.completed"
)

// OutboxEvent — доменное событие, которое worker ретранслирует в Kafka.
// Payload хранится как JSON.
type OutboxEvent struct {
	ID          int64
	EventID     string // uuid
	EventType   OutboxEventType
	VideoID     string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, videoID string, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		VideoID:   videoID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}
