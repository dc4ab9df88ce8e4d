package domain

import "io"

// VideoObject описывает видеофайл, который хранится в S3.
type VideoObject struct {
	ID        string // uuid
	Bucket    string
	ObjectKey string
	// Передайте значение -1 в Size, если размер потока неизвестен
	// (внимание: при передаче значения -1 будет выделен большой объем памяти).
	Size        *int64
	ContentType *string // Example: "video/mp4"
	Body        io.Reader
}

func NewVideoObject(id, bucket, objectKey string, size *int64, contentType *string, body io.Reader) *VideoObject {
	return &VideoObject{
		ID:          id,
		Bucket:      bucket,
		ObjectKey:   objectKey,
		Size:        size,
		ContentType: contentType,
		Body:        body,
	}
}
