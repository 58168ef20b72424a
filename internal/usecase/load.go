package usecase

import (
	"context"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/port"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/infra/metrics"
	"go.uber.org/zap"
)

type LoadResult struct {
	Inserted int
	Skipped  int
}

// LoadStage applies one video's normalized rows to the keypoint store as a
// single transactional batch.
type LoadStage struct {
	repo   port.KeypointRepository
	logger *zap.Logger
}

func NewLoadStage(repo port.KeypointRepository, logger *zap.Logger) *LoadStage {
	return &LoadStage{repo: repo, logger: logger}
}

// Load inserts the rows, dropping any whose composite key already exists.
// The inserted/skipped split is the only signal distinguishing "new data
// landed" from "this video was already fully loaded".
func (l *LoadStage) Load(ctx context.Context, rows []entity.NormalizedRow) (LoadResult, error) {
	inserted, skipped, err := l.repo.InsertBatch(ctx, rows)
	if err != nil {
		return LoadResult{}, err
	}

	metrics.RowsInsertedTotal.Add(float64(inserted))
	metrics.RowsSkippedTotal.Add(float64(skipped))

	if inserted == 0 && len(rows) > 0 {
		l.logger.Info("load found only duplicates, store unchanged",
			zap.Int("skipped", skipped),
		)
	}
	return LoadResult{Inserted: inserted, Skipped: skipped}, nil
}
