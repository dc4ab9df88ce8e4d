package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/sage-media/video-compare-backend/internal/domain"
	"github.com/sage-media/video-compare-backend/internal/repository/pgdb/converter"
	"github.com/sage-media/video-compare-backend/pkg/e"
	"github.com/sage-media/video-compare-backend/pkg/tr"
)

// VideoRepo реализует репозиторий видео поверх PostgreSQL.
type VideoRepo struct {
	pool *pgxpool.Pool
	conv converter.VideoConverter
}

func NewVideoRepo(pool *pgxpool.Pool, conv converter.VideoConverter) *VideoRepo {
	return &VideoRepo{
		pool: pool,
		conv: conv,
	}
}

// Create сохраняет новое видео в статусе processing.
func (v *VideoRepo) Create(ctx context.Context, video *domain.Video) (*domain.Video, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := v.conv.ToModel(video)
	query := `
		INSERT INTO videos (id, filename, object_key, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at;
	`

	if err := tx.QueryRow(ctx, query,
		model.ID,
		model.Filename,
		model.ObjectKey,
		model.Status,
	).Scan(&model.CreatedAt); err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: video with id %s already exists", whereami.WhereAmI(), video.ID)
		}

		return nil, fmt.Errorf("%s: failed to insert video: %w", whereami.WhereAmI(), err)
	}

	return v.conv.ToEntity(model), nil
}

// GetByID возвращает видео по идентификатору.
func (v *VideoRepo) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	query := `
		SELECT id, filename, object_key, status, duration_sec, segment_count,
		       failure_reason, created_at, updated_at
		FROM videos
		WHERE id = $1
	`

	var model converter.VideoModel
	err := v.pool.QueryRow(ctx, query, id).Scan(
		&model.ID,
		&model.Filename,
		&model.ObjectKey,
		&model.Status,
		&model.DurationSec,
		&model.SegmentCount,
		&model.FailureReason,
		&model.CreatedAt,
		&model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrVideoNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return v.conv.ToEntity(&model), nil
}

// MarkReady переводит видео в статус ready после сохранения эмбеддингов.
func (v *VideoRepo) MarkReady(ctx context.Context, id string, durationSec float64, segmentCount int) error {
	query := `
		UPDATE videos
		SET status = $1, duration_sec = $2, segment_count = $3,
		    failure_reason = NULL, updated_at = NOW()
		WHERE id = $4
	`

	result, err := v.pool.Exec(ctx, query, domain.VideoStatusReady, durationSec, segmentCount, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrVideoNotFound)
	}

	return nil
}

// MarkFailed переводит видео в статус failed с причиной сбоя.
func (v *VideoRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	query := `
		UPDATE videos
		SET status = $1, failure_reason = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := v.pool.Exec(ctx, query, domain.VideoStatusFailed, reason, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrVideoNotFound)
	}

	return nil
}

// postgresDuplicate сообщает, является ли ошибка нарушением уникальности (код 23505).
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
