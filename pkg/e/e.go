package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки движка сравнения сегментов
	ErrDimensionMismatch    = fmt.Errorf("embedding vectors have different dimensions")
	ErrEmptySegments        = fmt.Errorf("embedding set contains no segments")
	ErrNonPositiveThreshold = fmt.Errorf("threshold must be positive")
	ErrNonPositiveInterval  = fmt.Errorf("sampling interval must be positive")
	ErrUnknownMetric        = fmt.Errorf("unknown distance metric")

	// Ошибки жизненного цикла видео
	ErrVideoNotFound      = fmt.Errorf("video not found")
	ErrVideoNotReady      = fmt.Errorf("video embeddings are not ready yet")
	ErrEmptyEmbeddingSet  = fmt.Errorf("embedding provider returned no segments")
	ErrEmbeddingTaskState = fmt.Errorf("embedding task finished in unexpected state")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrMissingFields        = fmt.Errorf("missing required fields")
	ErrNoVideoFile          = fmt.Errorf("no video file provided")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrInvalidThreshold     = fmt.Errorf("invalid threshold value")
	ErrInvalidInterval      = fmt.Errorf("invalid sampling interval value")
	ErrInvalidVideoID       = fmt.Errorf("invalid video id")
	ErrSameVideo            = fmt.Errorf("cannot compare a video with itself")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
