package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"vidmark/internal/httpkit"
	"vidmark/internal/models"
)

var ErrVideoNotFound = errors.New("video not found")
var ErrVideosTableMissing = errors.New("videos table does not exist")

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// VideoRepository keeps videos.status in step with the worker.
type VideoRepository struct {
	db DB
}

func NewVideoRepository(db DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) MarkProcessing(ctx context.Context, videoID string) error {
	return r.exec(ctx, videoID, `
		UPDATE videos
		SET status=$2, processing_started_at=NOW(), processing_finished_at=NULL, error_text=NULL
		WHERE id=$1
	`, videoID, models.VideoProcessing)
}

func (r *VideoRepository) MarkDone(ctx context.Context, videoID, processedPath string) error {
	return r.exec(ctx, videoID, `
		UPDATE videos
		SET status=$2, processed_path=$3, processing_finished_at=NOW()
		WHERE id=$1
	`, videoID, models.VideoDone, processedPath)
}

func (r *VideoRepository) MarkError(ctx context.Context, videoID, errorText string) error {
	return r.exec(ctx, videoID, `
		UPDATE videos
		SET status=$2, error_text=$3, processing_finished_at=NOW()
		WHERE id=$1
	`, videoID, models.VideoError, errorText)
}

func (r *VideoRepository) exec(ctx context.Context, videoID, sql string, args ...any) error {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if httpkit.IsUndefinedTable(err) {
			return ErrVideosTableMissing
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}
	return nil
}
