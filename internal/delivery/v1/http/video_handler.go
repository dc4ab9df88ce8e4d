package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sage-media/video-compare-backend/internal/usecase"
	"github.com/sage-media/video-compare-backend/pkg/e"
	"github.com/sage-media/video-compare-backend/pkg/logger"
)

type VideoHandler struct {
	videoUsecase usecase.VideoUC
	maxVideoSize int64
	logger       logger.Logger
}

func NewVideoHandler(videoUsecase usecase.VideoUC, maxVideoSize int64, logger logger.Logger) *VideoHandler {
	return &VideoHandler{videoUsecase: videoUsecase, maxVideoSize: maxVideoSize, logger: logger}
}

type uploadVideoResponse struct {
	VideoID string `json:"video_id"`
	Status  string `json:"status"`
}

type videoInfoResponse struct {
	VideoID       string   `json:"video_id"`
	Filename      string   `json:"filename"`
	Status        string   `json:"status"`
	DurationSec   *float64 `json:"duration_sec,omitempty"`
	SegmentCount  int      `json:"segment_count"`
	FailureReason *string  `json:"failure_reason,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

// uploadVideo
//
//	@Summary		Загрузка видео
//	@Description	Принимает видеофайл, сохраняет его и запускает фоновую генерацию эмбеддингов
//	@Tags			videos
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			video		formData	file	true	"Видеофайл (mp4, mov, webm, mkv)"
//	@Param			filename	formData	string	false	"Имя файла (по умолчанию — имя из формы)"
//	@Success		202			{object}	uploadVideoResponse	"Видео принято в обработку"
//	@Failure		400			{object}	ErrorResponse		"Ошибка валидации"
//	@Failure		413			{object}	ErrorResponse		"Файл слишком большой"
//	@Failure		415			{object}	ErrorResponse		"Неподдерживаемый тип файла"
//	@Router			/videos [post]
func (h *VideoHandler) uploadVideo(w http.ResponseWriter, r *http.Request) {
	const maxMemory = 32 << 20

	r.Body = http.MaxBytesReader(w, r.Body, h.maxVideoSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	file, fh, err := r.FormFile("video")
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrNoVideoFile.Error(), err.Error())
		WriteError(w, e.ErrNoVideoFile)
		return
	}
	defer file.Close()

	filename := r.FormValue("filename")
	if filename == "" {
		filename = fh.Filename
	}

	mimeType := fh.Header.Get("Content-Type")

	res, err := h.videoUsecase.RegisterNewVideo(r.Context(), usecase.NewUploadVideoReq(filename, mimeType, fh.Size, file))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusAccepted, uploadVideoResponse{
		VideoID: res.VideoID,
		Status:  string(res.Status),
	})
}

// getVideo
//
//	@Summary		Информация о видео
//	@Description	Возвращает метаданные видео и статус генерации эмбеддингов
//	@Tags			videos
//	@Produce		json
//	@Param			id	path		string	true	"Идентификатор видео (UUID)"
//	@Success		200	{object}	videoInfoResponse
//	@Failure		400	{object}	ErrorResponse	"Неверный идентификатор"
//	@Failure		404	{object}	ErrorResponse	"Видео не найдено"
//	@Router			/videos/{id} [get]
func (h *VideoHandler) getVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseVideoID(chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidVideoID.Error(), err.Error())
		WriteError(w, err)
		return
	}

	info, err := h.videoUsecase.GetVideoInfo(r.Context(), videoID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, videoInfoResponse{
		VideoID:       info.VideoID,
		Filename:      info.Filename,
		Status:        string(info.Status),
		DurationSec:   info.DurationSec,
		SegmentCount:  info.SegmentCount,
		FailureReason: info.FailureReason,
		CreatedAt:     info.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}
