package port

import (
	"context"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
)

// OutcomePublisher emits one event per finished video job. Publishing is
// best effort; a publish failure never fails the job.
type OutcomePublisher interface {
	PublishOutcome(ctx context.Context, outcome entity.VideoOutcome) error
}
