package port

import (
	"context"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
)

// FailureNotifier reports a finished run that contains failed videos.
type FailureNotifier interface {
	NotifyRunFailures(ctx context.Context, summary *entity.RunSummary) error
}
