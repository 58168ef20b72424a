package port

import (
	"context"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
)

// ArtifactStore persists per-video RawCapture artifacts. Save must be
// atomic: a crash mid-write never leaves a partial artifact visible, and a
// re-save for the same video replaces the prior artifact whole.
type ArtifactStore interface {
	Save(ctx context.Context, capture *entity.RawCapture) (path string, err error)
	Load(ctx context.Context, videoName string) (*entity.RawCapture, error)
}
