package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/sage-media/video-compare-backend/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, e.ErrExpectedMultipart.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrNoVideoFile):
		return http.StatusBadRequest, e.ErrNoVideoFile.Error()
	case errors.Is(err, e.ErrInvalidThreshold):
		return http.StatusBadRequest, e.ErrInvalidThreshold.Error()
	case errors.Is(err, e.ErrInvalidInterval):
		return http.StatusBadRequest, e.ErrInvalidInterval.Error()
	case errors.Is(err, e.ErrInvalidVideoID):
		return http.StatusBadRequest, e.ErrInvalidVideoID.Error()
	case errors.Is(err, e.ErrSameVideo):
		return http.StatusBadRequest, e.ErrSameVideo.Error()
	case errors.Is(err, e.ErrUnknownMetric):
		return http.StatusBadRequest, e.ErrUnknownMetric.Error()
	case errors.Is(err, e.ErrNonPositiveThreshold):
		return http.StatusBadRequest, e.ErrNonPositiveThreshold.Error()
	case errors.Is(err, e.ErrNonPositiveInterval):
		return http.StatusBadRequest, e.ErrNonPositiveInterval.Error()
	case errors.Is(err, e.ErrDimensionMismatch):
		return http.StatusBadRequest, e.ErrDimensionMismatch.Error()
	case errors.Is(err, e.ErrEmptySegments):
		return http.StatusBadRequest, e.ErrEmptySegments.Error()
	case errors.Is(err, e.ErrEmptyEmbeddingSet):
		return http.StatusBadRequest, e.ErrEmptyEmbeddingSet.Error()
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, e.ErrUnsupportedMediaType.Error()
	case errors.Is(err, e.ErrVideoNotFound):
		return http.StatusNotFound, e.ErrVideoNotFound.Error()
	case errors.Is(err, e.ErrVideoNotReady):
		return http.StatusConflict, e.ErrVideoNotReady.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseThreshold разбирает порог расхождения из строки запроса.
// Пустая строка означает значение по умолчанию (возвращается 0).
// Отклоняются: неверный формат, неположительные значения,
// больше 4 знаков после запятой и значения свыше разумного предела.
func parseThreshold(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidThreshold
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return 0, e.ErrInvalidThreshold
	}

	// у косинусного расстояния максимум 2, у евклидова порог тоже невелик
	if d.GreaterThan(decimal.NewFromInt(1000)) {
		return 0, e.ErrInvalidThreshold
	}

	if d.Exponent() < -4 {
		return 0, e.ErrInvalidThreshold
	}

	f, _ := d.Float64()
	return f, nil
}

// parseInterval разбирает ширину слота выравнивания в секундах.
// Пустая строка означает значение по умолчанию (возвращается 0).
func parseInterval(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidInterval
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return 0, e.ErrInvalidInterval
	}

	// слот длиннее часа не имеет смысла для посегментного сравнения
	if d.GreaterThan(decimal.NewFromInt(3600)) {
		return 0, e.ErrInvalidInterval
	}

	f, _ := d.Float64()
	return f, nil
}

// parseVideoID проверяет, что идентификатор видео является валидным UUID.
func parseVideoID(s string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", e.Wrap(s, e.ErrInvalidVideoID)
	}

	return id.String(), nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}
