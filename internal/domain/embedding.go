package domain

import "time"

// Payload описывает дополнительную информацию вектора
type Payload map[string]any

// Embedding представляет вектор одного сегмента видео в Qdrant
type Embedding struct {
	ID      string
	Vector  []float64
	Payload Payload
}

func NewEmbedding(id string, vector []float64, payload Payload) *Embedding {
	return &Embedding{
		ID:      id,
		Vector:  vector,
		Payload: payload,
	}
}

// NewSegmentPayload формирует payload сегмента для Qdrant:
// привязка к видео, границы окна и версия модели эмбеддингов.
func NewSegmentPayload(videoID string, startSec, endSec float64, modelVersion string) Payload {
	return Payload{
		"video_id":         videoID,
		"start_offset_sec": startSec,
		"end_offset_sec":   endSec,
		"created_at":       time.Now().UTC().UnixNano(),
		"model_version":    modelVersion,
	}
}
