// Package embedder реализует клиент внешнего сервиса генерации видеоэмбеддингов.
// Сервис работает асинхронно: создаётся задача, статус опрашивается до готовности,
// после чего выгружаются сегменты с векторами.
package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sage-media/video-compare-backend/internal/cfg"
	"github.com/sage-media/video-compare-backend/internal/domain"
	"github.com/sage-media/video-compare-backend/internal/usecase"
	"github.com/sage-media/video-compare-backend/pkg/e"
	"github.com/sage-media/video-compare-backend/pkg/jitter"
	"github.com/sage-media/video-compare-backend/pkg/logger"
)

const (
	taskStatusReady  = "ready"
	taskStatusFailed = "failed"
)

// EmbedderService клиент для взаимодействия с внешним embedding-сервисом
type EmbedderService struct {
	httpClient *http.Client
	cfg        *cfg.EmbedderCfg
	logger     logger.Logger
}

func NewEmbedderService(cfg *cfg.EmbedderCfg, logger logger.Logger) *EmbedderService {
	return &EmbedderService{
		httpClient: &http.Client{Timeout: cfg.ClientTimeout},
		cfg:        cfg,
		logger:     logger,
	}
}

type createTaskReq struct {
	ModelName string `json:"model_name"`
	VideoURL  string `json:"video_url"`
}

type createTaskRes struct {
	TaskID string `json:"task_id"`
}

type taskStatusRes struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type segmentModel struct {
	StartOffsetSec float64   `json:"start_offset_sec"`
	EndOffsetSec   float64   `json:"end_offset_sec"`
	Embedding      []float64 `json:"embedding"`
}

type taskResultRes struct {
	Segments     []segmentModel `json:"segments"`
	DurationSec  float64        `json:"duration_sec"`
	ModelVersion string         `json:"model_version"`
}

// GenerateEmbeddings создаёт задачу генерации, дожидается её готовности
// и возвращает сегменты с векторами. Создание задачи повторяется с retry-логикой
// и экспоненциальной задержкой.
func (s *EmbedderService) GenerateEmbeddings(ctx context.Context, req *usecase.GenerateEmbeddingsReq) (*usecase.GenerateEmbeddingsRes, error) {
	const (
		op         = "EmbedderService.GenerateEmbeddings"
		baseJitter = 1 * time.Second
		maxJitter  = 30 * time.Second
	)

	var taskID string
	var err error
	for attempt := 0; attempt < s.cfg.MaxRetries; attempt++ {
		taskID, err = s.createTask(ctx, req)
		if err == nil {
			break
		}

		if attempt == s.cfg.MaxRetries-1 {
			return nil, e.Wrap(op, fmt.Errorf("all %d attempts failed: %w", s.cfg.MaxRetries, err))
		}

		sleepTime := jitter.ExponentialBackoff(
			baseJitter,
			maxJitter,
			attempt,
			jitter.DefaultJitter,
		)

		s.logger.Warnf("embedding task creation failed, retrying in %v (attempt %d)", sleepTime, attempt+1)
		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	if err := s.waitForTask(ctx, taskID); err != nil {
		return nil, e.Wrap(op, err)
	}

	result, err := s.fetchResult(ctx, taskID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	segments := make([]domain.EmbeddingSegment, 0, len(result.Segments))
	for _, seg := range result.Segments {
		segments = append(segments, domain.EmbeddingSegment{
			StartOffsetSec: seg.StartOffsetSec,
			EndOffsetSec:   seg.EndOffsetSec,
			Vector:         seg.Embedding,
		})
	}

	return usecase.NewGenerateEmbeddingsRes(segments, result.DurationSec, result.ModelVersion), nil
}

// createTask регистрирует задачу генерации эмбеддингов и возвращает её идентификатор.
func (s *EmbedderService) createTask(ctx context.Context, req *usecase.GenerateEmbeddingsReq) (string, error) {
	body, err := json.Marshal(createTaskReq{
		ModelName: s.cfg.ModelName,
		VideoURL:  req.VideoURL,
	})
	if err != nil {
		return "", err
	}

	var res createTaskRes
	if err := s.doJSON(ctx, http.MethodPost, s.cfg.BaseURL+"/v1/embed/tasks", bytes.NewReader(body), &res); err != nil {
		return "", err
	}

	if res.TaskID == "" {
		return "", fmt.Errorf("embedding service returned empty task id for video %s", req.VideoID)
	}

	return res.TaskID, nil
}

// waitForTask опрашивает статус задачи с джиттером до готовности или таймаута.
func (s *EmbedderService) waitForTask(ctx context.Context, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.PollTimeout)
	defer cancel()

	statusURL := fmt.Sprintf("%s/v1/embed/tasks/%s/status", s.cfg.BaseURL, taskID)

	for {
		var status taskStatusRes
		if err := s.doJSON(ctx, http.MethodGet, statusURL, nil, &status); err != nil {
			// временная ошибка опроса не означает провал задачи
			s.logger.Warnf("embedding task %s status poll failed: %v", taskID, err)
		} else {
			switch status.Status {
			case taskStatusReady:
				return nil
			case taskStatusFailed:
				return e.Wrap(fmt.Sprintf("task %s: %s", taskID, status.Error), e.ErrEmbeddingTaskState)
			}
		}

		select {
		case <-time.After(jitter.Duration(s.cfg.PollInterval, jitter.DefaultJitter)):
		case <-ctx.Done():
			return fmt.Errorf("embedding task %s not ready: %w", taskID, ctx.Err())
		}
	}
}

// fetchResult выгружает сегменты готовой задачи.
func (s *EmbedderService) fetchResult(ctx context.Context, taskID string) (*taskResultRes, error) {
	var result taskResultRes
	url := fmt.Sprintf("%s/v1/embed/tasks/%s", s.cfg.BaseURL, taskID)
	if err := s.doJSON(ctx, http.MethodGet, url, nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// doJSON выполняет HTTP-запрос с авторизацией и декодирует JSON-ответ.
func (s *EmbedderService) doJSON(ctx context.Context, method, url string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}

	req.Header.Set("x-api-key", s.cfg.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: status %d: %s", method, url, resp.StatusCode, data)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
