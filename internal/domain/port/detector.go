package port

import (
	"context"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
)

// LandmarkDetector detects pose landmarks in decoded frames. A detector
// carries tracking state across consecutive frames of the same video, so
// frames must be submitted strictly in order and one detector must never be
// shared between videos.
type LandmarkDetector interface {
	// Detect returns the landmarks found in the frame, or detected=false
	// when the frame contains no pose.
	Detect(ctx context.Context, frame *Frame) (landmarks []entity.Landmark, detected bool, err error)
	Close() error
}

// DetectorProvider hands out detector instances. Acquire returns a fresh
// detector with clean tracking state; the caller owns it for the lifetime of
// one video job and must Close it at job end.
type DetectorProvider interface {
	Acquire(ctx context.Context, videoName string) (LandmarkDetector, error)
}
