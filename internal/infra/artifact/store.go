// Package artifact persists RawCapture intermediates as one JSON file per
// video. Writes go to a temp file first and become visible only through an
// atomic rename, so a crash mid-write never exposes a partial artifact.
package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
	"go.uber.org/zap"
)

// Mirror replicates a finished artifact to secondary storage. Mirroring is
// best effort and runs only after the local write is durable.
type Mirror interface {
	Upload(ctx context.Context, videoName string, data []byte) error
}

type Store struct {
	dir    string
	mirror Mirror
	logger *zap.Logger
}

// NewStore creates the artifact directory if needed. mirror may be nil.
func NewStore(dir string, mirror Mirror, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &Store{dir: dir, mirror: mirror, logger: logger}, nil
}

func (s *Store) path(videoName string) string {
	return filepath.Join(s.dir, videoName+".json")
}

// Save writes the capture whole, replacing any prior artifact for the same
// video.
func (s *Store) Save(ctx context.Context, capture *entity.RawCapture) (string, error) {
	data, err := json.MarshalIndent(capture, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal capture: %w", err)
	}

	final := s.path(capture.VideoName)
	tmp := final + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename artifact: %w", err)
	}

	if s.mirror != nil {
		if err := s.mirror.Upload(ctx, capture.VideoName, data); err != nil {
			s.logger.Warn("artifact mirror upload failed",
				zap.String("video", capture.VideoName),
				zap.Error(err),
			)
		}
	}

	return final, nil
}

func (s *Store) Load(_ context.Context, videoName string) (*entity.RawCapture, error) {
	data, err := os.ReadFile(s.path(videoName))
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	capture := &entity.RawCapture{VideoName: videoName}
	if err := json.Unmarshal(data, capture); err != nil {
		return nil, fmt.Errorf("unmarshal artifact: %w", err)
	}
	return capture, nil
}
