package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/port"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/infra/metrics"
	"go.uber.org/zap"
)

// CaptureStage drives one video through frame decoding and pose detection
// and persists the resulting RawCapture artifact.
type CaptureStage struct {
	opener    port.FrameSourceOpener
	artifacts port.ArtifactStore
	logger    *zap.Logger
}

func NewCaptureStage(opener port.FrameSourceOpener, artifacts port.ArtifactStore, logger *zap.Logger) *CaptureStage {
	return &CaptureStage{opener: opener, artifacts: artifacts, logger: logger}
}

// Capture iterates the video's frames strictly in order, invoking the
// detector once per frame. Frames without a detection advance the frame
// counter but are not recorded. Returns entity.ErrNoPoseDetected when the
// whole video yields no detection; in that case no artifact is written.
// framesScanned is always the number of decoded frames, detections or not.
func (c *CaptureStage) Capture(ctx context.Context, videoName, videoPath string, detector port.LandmarkDetector) (capture *entity.RawCapture, framesScanned int, err error) {
	log := c.logger.With(zap.String("video", videoName))

	source, err := c.opener.Open(ctx, videoPath)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", entity.ErrVideoUnreadable, err)
	}
	defer source.Close()

	capture = &entity.RawCapture{VideoName: videoName}

	for {
		frame, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, framesScanned, fmt.Errorf("decode frame: %w", err)
		}

		landmarks, detected, err := detector.Detect(ctx, frame)
		if err != nil {
			return nil, framesScanned, fmt.Errorf("detect frame %d: %w", frame.Index, err)
		}
		framesScanned++
		metrics.FramesScannedTotal.Inc()

		if !detected {
			continue
		}

		capture.Frames = append(capture.Frames, entity.FrameRecord{
			Frame:     frame.Index,
			Landmarks: landmarks,
		})
		metrics.LandmarksCapturedTotal.Add(float64(len(landmarks)))
	}

	if len(capture.Frames) == 0 {
		log.Warn("no pose detected in any frame", zap.Int("frames_scanned", framesScanned))
		return nil, framesScanned, entity.ErrNoPoseDetected
	}

	path, err := c.artifacts.Save(ctx, capture)
	if err != nil {
		return nil, framesScanned, fmt.Errorf("%w: %v", entity.ErrArtifactWrite, err)
	}

	log.Info("capture complete",
		zap.Int("frames_scanned", framesScanned),
		zap.Int("frames_with_pose", len(capture.Frames)),
		zap.Int("landmarks", capture.LandmarkCount()),
		zap.String("artifact", path),
	)

	return capture, framesScanned, nil
}
