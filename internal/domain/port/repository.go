package port

import (
	"context"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
)

// KeypointRepository stores normalized landmark rows. InsertBatch applies
// the whole slice as one transaction: on success it reports how many rows
// were newly inserted and how many were dropped because their
// (video, frame, landmark) key already existed; on failure nothing is
// committed. Existing rows are never overwritten.
type KeypointRepository interface {
	InsertBatch(ctx context.Context, rows []entity.NormalizedRow) (inserted, skipped int, err error)
}
