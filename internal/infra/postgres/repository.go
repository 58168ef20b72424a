package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const insertKeypoint = `
	INSERT INTO keypoints_normalizados (
		video_nome, frame, landmark_id, landmark_nome,
		x, y, z, visibilidade, data_processamento
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	ON CONFLICT (video_nome, frame, landmark_id) DO NOTHING`

type KeypointRepository struct {
	pool *pgxpool.Pool
}

func NewKeypointRepository(pool *pgxpool.Pool) *KeypointRepository {
	return &KeypointRepository{pool: pool}
}

// InsertBatch writes one video's rows in a single transaction. Rows whose
// (video_nome, frame, landmark_id) key already exists are dropped by the
// conflict clause, so stored values are never overwritten and the call is
// safe to repeat with identical or overlapping input.
func (r *KeypointRepository) InsertBatch(ctx context.Context, rows []entity.NormalizedRow) (inserted, skipped int, err error) {
	if len(rows) == 0 {
		return 0, 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, 0, mapStoreError("begin tx", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(insertKeypoint,
			row.VideoName, row.Frame, row.LandmarkID, row.LandmarkName,
			row.X, row.Y, row.Z, row.Visibility,
			row.ProcessedAt.Format("2006-01-02T15:04:05.999999"),
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range rows {
		tag, execErr := results.Exec()
		if execErr != nil {
			results.Close()
			return 0, 0, mapStoreError("insert keypoints", execErr)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, 0, mapStoreError("close batch", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, mapStoreError("commit tx", err)
	}
	return inserted, len(rows) - inserted, nil
}

// CountByVideo reports how many rows are stored for one video.
func (r *KeypointRepository) CountByVideo(ctx context.Context, videoName string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM keypoints_normalizados WHERE video_nome=$1`,
		videoName,
	).Scan(&n)
	if err != nil {
		return 0, mapStoreError("count keypoints", err)
	}
	return n, nil
}

// Postgres error classes: 42xxx is a missing or incompatible schema object,
// anything else from the driver is treated as the store being unavailable.
func mapStoreError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01", "42703", "42804":
			return fmt.Errorf("%s: %w: %s", op, entity.ErrSchemaMissing, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w: %v", op, entity.ErrStoreUnavailable, err)
}
