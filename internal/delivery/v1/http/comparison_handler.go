package http

import (
	"net/http"

	"github.com/sage-media/video-compare-backend/internal/domain"
	"github.com/sage-media/video-compare-backend/internal/usecase"
	"github.com/sage-media/video-compare-backend/pkg/e"
	"github.com/sage-media/video-compare-backend/pkg/logger"
)

type ComparisonHandler struct {
	comparisonUsecase usecase.ComparisonUC
	logger            logger.Logger
}

func NewComparisonHandler(comparisonUsecase usecase.ComparisonUC, logger logger.Logger) *ComparisonHandler {
	return &ComparisonHandler{comparisonUsecase: comparisonUsecase, logger: logger}
}

type differenceResponse struct {
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	Distance float64 `json:"distance"`
}

type comparisonResponse struct {
	VideoID1          string               `json:"video_id_1"`
	VideoID2          string               `json:"video_id_2"`
	Filename1         string               `json:"filename_1"`
	Filename2         string               `json:"filename_2"`
	Differences       []differenceResponse `json:"differences"`
	TotalSegments     int                  `json:"total_segments"`
	DifferingSegments int                  `json:"differing_segments"`
	MissingSegments   int                  `json:"missing_segments"`
	SkippedSlots      int                  `json:"skipped_slots"`
	ThresholdUsed     float64              `json:"threshold_used"`
	SimilarityPercent float64              `json:"similarity_percent"`
	FromCache         bool                 `json:"from_cache"`
}

// compareVideos
//
//	@Summary		Сравнение двух видео
//	@Description	Сравнивает посекундные эмбеддинги двух готовых видео и возвращает интервалы расхождений
//	@Tags			comparisons
//	@Produce		json
//	@Param			video_id1			query		string	true	"Идентификатор первого видео (UUID)"
//	@Param			video_id2			query		string	true	"Идентификатор второго видео (UUID)"
//	@Param			threshold			query		number	false	"Порог расхождения (по умолчанию из конфигурации)"
//	@Param			distance_metric		query		string	false	"Метрика: cosine или euclidean"
//	@Param			sampling_interval	query		number	false	"Ширина слота выравнивания в секундах"
//	@Success		200					{object}	comparisonResponse
//	@Failure		400					{object}	ErrorResponse	"Ошибка валидации параметров"
//	@Failure		404					{object}	ErrorResponse	"Видео не найдено"
//	@Failure		409					{object}	ErrorResponse	"Эмбеддинги ещё не готовы"
//	@Router			/comparisons [post]
func (h *ComparisonHandler) compareVideos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	videoID1, err := parseVideoID(q.Get("video_id1"))
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidVideoID.Error(), err.Error())
		WriteError(w, err)
		return
	}

	videoID2, err := parseVideoID(q.Get("video_id2"))
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidVideoID.Error(), err.Error())
		WriteError(w, err)
		return
	}

	threshold, err := parseThreshold(q.Get("threshold"))
	if err != nil {
		h.logger.Warnf("%d %s: %q", http.StatusBadRequest, e.ErrInvalidThreshold.Error(), q.Get("threshold"))
		WriteError(w, err)
		return
	}

	interval, err := parseInterval(q.Get("sampling_interval"))
	if err != nil {
		h.logger.Warnf("%d %s: %q", http.StatusBadRequest, e.ErrInvalidInterval.Error(), q.Get("sampling_interval"))
		WriteError(w, err)
		return
	}

	req := usecase.NewCompareVideosReq(videoID1, videoID2, threshold, q.Get("distance_metric"), interval)

	res, err := h.comparisonUsecase.CompareVideos(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toComparisonResponse(res))
}

func toComparisonResponse(res *usecase.CompareVideosRes) comparisonResponse {
	return comparisonResponse{
		VideoID1:          res.VideoID1,
		VideoID2:          res.VideoID2,
		Filename1:         res.Filename1,
		Filename2:         res.Filename2,
		Differences:       toDifferenceResponses(res.Result.Differences),
		TotalSegments:     res.Result.TotalSegments,
		DifferingSegments: res.Result.DifferingSegments,
		MissingSegments:   res.Result.MissingSegments,
		SkippedSlots:      res.Result.SkippedSlots,
		ThresholdUsed:     res.Result.ThresholdUsed,
		SimilarityPercent: res.Result.SimilarityPercent,
		FromCache:         res.FromCache,
	}
}

func toDifferenceResponses(diffs []domain.DifferenceInterval) []differenceResponse {
	out := make([]differenceResponse, 0, len(diffs))
	for _, d := range diffs {
		out = append(out, differenceResponse{
			StartSec: d.StartSec,
			EndSec:   d.EndSec,
			Distance: d.Distance,
		})
	}
	return out
}
