// Package mediapipe talks to a pose-estimation sidecar over HTTP. The
// sidecar runs the actual MediaPipe Pose model; one sidecar session holds
// the temporal tracking state for one video, so every video job gets its
// own session.
package mediapipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/port"
	"go.uber.org/zap"
)

type ProviderConfig struct {
	Endpoint               string
	ModelComplexity        int
	MinDetectionConfidence float64
	MinTrackingConfidence  float64
}

type Provider struct {
	cfg    ProviderConfig
	client *http.Client
	logger *zap.Logger
}

func NewProvider(cfg ProviderConfig, logger *zap.Logger) *Provider {
	return &Provider{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

type createSessionRequest struct {
	Video                  string  `json:"video"`
	ModelComplexity        int     `json:"model_complexity"`
	MinDetectionConfidence float64 `json:"min_detection_confidence"`
	MinTrackingConfidence  float64 `json:"min_tracking_confidence"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
}

// Acquire creates a fresh detector session with clean tracking state. The
// returned detector belongs to one video job and must be closed at job end.
func (p *Provider) Acquire(ctx context.Context, videoName string) (port.LandmarkDetector, error) {
	body, err := json.Marshal(createSessionRequest{
		Video:                  videoName,
		ModelComplexity:        p.cfg.ModelComplexity,
		MinDetectionConfidence: p.cfg.MinDetectionConfidence,
		MinTrackingConfidence:  p.cfg.MinTrackingConfidence,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint+"/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create detector session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("create detector session: status %d", resp.StatusCode)
	}

	var created createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}

	p.logger.Debug("detector session acquired",
		zap.String("video", videoName),
		zap.String("session_id", created.SessionID),
	)

	return &session{
		id:       created.SessionID,
		endpoint: p.cfg.Endpoint,
		client:   p.client,
	}, nil
}

type session struct {
	id       string
	endpoint string
	client   *http.Client
}

type detectResponse struct {
	Detected  bool `json:"detected"`
	Landmarks []struct {
		ID         int     `json:"id"`
		X          float64 `json:"x"`
		Y          float64 `json:"y"`
		Z          float64 `json:"z"`
		Visibility float64 `json:"visibility"`
	} `json:"landmarks"`
}

func (s *session) Detect(ctx context.Context, frame *port.Frame) ([]entity.Landmark, bool, error) {
	url := fmt.Sprintf("%s/sessions/%s/detect", s.endpoint, s.id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(frame.Pixels))
	if err != nil {
		return nil, false, fmt.Errorf("build detect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-Frame-Index", strconv.Itoa(frame.Index))
	req.Header.Set("X-Frame-Width", strconv.Itoa(frame.Width))
	req.Header.Set("X-Frame-Height", strconv.Itoa(frame.Height))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("detect frame %d: %w", frame.Index, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("detect frame %d: status %d", frame.Index, resp.StatusCode)
	}

	var result detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, false, fmt.Errorf("decode detect response: %w", err)
	}
	if !result.Detected {
		return nil, false, nil
	}

	landmarks := make([]entity.Landmark, 0, len(result.Landmarks))
	for _, lm := range result.Landmarks {
		landmarks = append(landmarks, entity.Landmark{
			ID:         lm.ID,
			Name:       entity.LandmarkName(lm.ID),
			X:          lm.X,
			Y:          lm.Y,
			Z:          lm.Z,
			Visibility: lm.Visibility,
		})
	}
	return landmarks, true, nil
}

func (s *session) Close() error {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/sessions/%s", s.endpoint, s.id), nil)
	if err != nil {
		return fmt.Errorf("build close request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("close detector session: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}
