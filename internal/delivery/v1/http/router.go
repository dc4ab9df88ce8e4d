package http

import (
	"github.com/go-chi/chi/v5"
	_ "github.com/sage-media/video-compare-backend/docs" // Импорт сгенерированных файлов
	"github.com/sage-media/video-compare-backend/internal/usecase"
	"github.com/sage-media/video-compare-backend/pkg/logger"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router       *chi.Mux
	maxVideoSize int64
	logger       logger.Logger
}

func NewRouter(router *chi.Mux, maxVideoSize int64, logger logger.Logger) *Router {
	return &Router{router: router, maxVideoSize: maxVideoSize, logger: logger}
}

func (r *Router) Init(videoUC usecase.VideoUC, comparisonUC usecase.ComparisonUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		videoHandler := NewVideoHandler(videoUC, r.maxVideoSize, r.logger)
		registerVideoRoutes(v1, videoHandler)

		comparisonHandler := NewComparisonHandler(comparisonUC, r.logger)
		registerComparisonRoutes(v1, comparisonHandler)
	})
}

func registerVideoRoutes(router chi.Router, h *VideoHandler) {
	router.Route("/videos", func(v chi.Router) {
		v.Post("/", h.uploadVideo)
		v.Get("/{id}", h.getVideo)
	})
}

func registerComparisonRoutes(router chi.Router, h *ComparisonHandler) {
	router.Route("/comparisons", func(c chi.Router) {
		c.Post("/", h.compareVideos)
	})
}
