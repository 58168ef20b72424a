package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/port"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/infra/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// VideoRef identifies one enumerated input video.
type VideoRef struct {
	Name string
	Path string
}

// EnumerateVideos lists the .mp4 files in dir, sorted by name.
func EnumerateVideos(dir string) ([]VideoRef, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.mp4"))
	if err != nil {
		return nil, fmt.Errorf("enumerate videos: %w", err)
	}
	sort.Strings(paths)

	refs := make([]VideoRef, 0, len(paths))
	for _, p := range paths {
		refs = append(refs, VideoRef{Name: filepath.Base(p), Path: p})
	}
	return refs, nil
}

// Orchestrator runs Capture→Transform→Load per video across a bounded
// worker pool. Videos are independent: every failure is contained to its
// own job and recorded in the run summary.
type Orchestrator struct {
	capture   *CaptureStage
	loader    *LoadStage
	detectors port.DetectorProvider
	publisher port.OutcomePublisher
	workers   int
	logger    *zap.Logger
}

func NewOrchestrator(
	capture *CaptureStage,
	loader *LoadStage,
	detectors port.DetectorProvider,
	publisher port.OutcomePublisher,
	workers int,
	logger *zap.Logger,
) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{
		capture:   capture,
		loader:    loader,
		detectors: detectors,
		publisher: publisher,
		workers:   workers,
		logger:    logger,
	}
}

// Run processes every enumerated video and aggregates per-video outcomes.
// It always attempts all videos unless the context is cancelled.
func (o *Orchestrator) Run(ctx context.Context, videos []VideoRef) *entity.RunSummary {
	summary := entity.NewRunSummary()
	defer summary.Finish()

	if len(videos) == 0 {
		o.logger.Warn("no videos to process")
		return summary
	}

	o.logger.Info("starting pipeline run",
		zap.String("run_id", summary.RunID.String()),
		zap.Int("videos", len(videos)),
		zap.Int("workers", o.workers),
	)

	jobs := make(chan VideoRef)
	outcomes := make(chan entity.VideoOutcome)

	var wg sync.WaitGroup
	for i := 0; i < o.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			log := o.logger.With(zap.Int("worker_id", id))
			for ref := range jobs {
				outcomes <- o.processVideo(ctx, ref, log)
			}
		}(i)
	}

	go func() {
		defer close(jobs)
		for _, ref := range videos {
			select {
			case jobs <- ref:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for outcome := range outcomes {
		summary.Record(outcome)
		metrics.VideosProcessedTotal.WithLabelValues(string(outcome.Status)).Inc()
		o.publishOutcome(ctx, outcome)
	}

	o.logger.Info("pipeline run finished",
		zap.String("run_id", summary.RunID.String()),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("no_pose", summary.NoPose),
		zap.Int("failed", summary.Failed),
	)
	return summary
}

// processVideo runs the full pipeline for one video. Each job acquires its
// own detector so tracking state never leaks between videos.
func (o *Orchestrator) processVideo(ctx context.Context, ref VideoRef, log *zap.Logger) entity.VideoOutcome {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "Orchestrator.processVideo")
	defer span.End()
	span.SetAttributes(attribute.String("video.name", ref.Name))

	log = log.With(zap.String("video", ref.Name))

	metrics.ActiveWorkers.Inc()
	defer metrics.ActiveWorkers.Dec()

	if err := ctx.Err(); err != nil {
		return entity.FailedOutcome(ref.Name, fmt.Errorf("run cancelled: %w", err))
	}

	detector, err := o.detectors.Acquire(ctx, ref.Name)
	if err != nil {
		log.Error("failed to acquire detector", zap.Error(err))
		return entity.FailedOutcome(ref.Name, fmt.Errorf("acquire detector: %w", err))
	}
	defer detector.Close()

	// Capture
	capStart := time.Now()
	capCtx, capSpan := tracer.Start(ctx, "capture")
	capture, framesScanned, err := o.capture.Capture(capCtx, ref.Name, ref.Path, detector)
	capSpan.End()
	metrics.StageDuration.WithLabelValues("capture").Observe(time.Since(capStart).Seconds())

	if errors.Is(err, entity.ErrNoPoseDetected) {
		return entity.NoPoseOutcome(ref.Name, framesScanned)
	}
	if err != nil {
		log.Error("capture failed", zap.Error(err))
		return entity.FailedOutcome(ref.Name, err)
	}

	// Transform
	tfStart := time.Now()
	_, tfSpan := tracer.Start(ctx, "transform")
	rows := Transform(capture, time.Now().UTC())
	tfSpan.End()
	metrics.StageDuration.WithLabelValues("transform").Observe(time.Since(tfStart).Seconds())

	// Load
	loadStart := time.Now()
	loadCtx, loadSpan := tracer.Start(ctx, "load")
	result, err := o.loader.Load(loadCtx, rows)
	loadSpan.End()
	metrics.StageDuration.WithLabelValues("load").Observe(time.Since(loadStart).Seconds())

	if err != nil {
		log.Error("load failed", zap.Error(err))
		return entity.FailedOutcome(ref.Name, err)
	}

	log.Info("video processed",
		zap.Int("frames_scanned", framesScanned),
		zap.Int("frames_with_pose", len(capture.Frames)),
		zap.Int("rows_inserted", result.Inserted),
		zap.Int("rows_skipped", result.Skipped),
	)

	return entity.SucceededOutcome(ref.Name, framesScanned, len(capture.Frames), result.Inserted, result.Skipped)
}

func (o *Orchestrator) publishOutcome(ctx context.Context, outcome entity.VideoOutcome) {
	if o.publisher == nil {
		return
	}
	if err := o.publisher.PublishOutcome(ctx, outcome); err != nil {
		o.logger.Warn("failed to publish outcome",
			zap.String("video", outcome.Video),
			zap.Error(err),
		)
	}
}
