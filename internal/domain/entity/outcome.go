package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Error kinds recovered at the per-video job boundary. They are recorded in
// the run summary and never abort the run.
var (
	ErrVideoUnreadable  = errors.New("video source cannot be opened")
	ErrNoPoseDetected   = errors.New("no pose detected in any frame")
	ErrStoreUnavailable = errors.New("keypoint store unavailable")
	ErrSchemaMissing    = errors.New("keypoint store schema missing or incompatible")
	ErrArtifactWrite    = errors.New("capture artifact could not be persisted")
)

type VideoStatus string

const (
	VideoSucceeded VideoStatus = "SUCCEEDED"
	VideoNoPose    VideoStatus = "NO_POSE"
	VideoFailed    VideoStatus = "FAILED"
)

// VideoOutcome is the result of one video's Capture→Transform→Load job.
// Exactly one is produced per enumerated video, failures included.
type VideoOutcome struct {
	Video          string      `json:"video"`
	Status         VideoStatus `json:"status"`
	FramesScanned  int         `json:"frames_scanned"`
	FramesWithPose int         `json:"frames_with_pose"`
	RowsInserted   int         `json:"rows_inserted"`
	RowsSkipped    int         `json:"rows_skipped"`
	Error          string      `json:"error,omitempty"`

	// Err carries the underlying failure for errors.Is inspection; Error
	// above is its rendering for logs and outcome events.
	Err error `json:"-"`
}

func SucceededOutcome(video string, scanned, withPose, inserted, skipped int) VideoOutcome {
	return VideoOutcome{
		Video:          video,
		Status:         VideoSucceeded,
		FramesScanned:  scanned,
		FramesWithPose: withPose,
		RowsInserted:   inserted,
		RowsSkipped:    skipped,
	}
}

func NoPoseOutcome(video string, scanned int) VideoOutcome {
	return VideoOutcome{Video: video, Status: VideoNoPose, FramesScanned: scanned}
}

func FailedOutcome(video string, err error) VideoOutcome {
	o := VideoOutcome{Video: video, Status: VideoFailed, Err: err}
	if err != nil {
		o.Error = err.Error()
	}
	return o
}

// RunSummary aggregates per-video outcomes for one orchestrator run.
type RunSummary struct {
	RunID      uuid.UUID      `json:"run_id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Succeeded  int            `json:"succeeded"`
	NoPose     int            `json:"no_pose"`
	Failed     int            `json:"failed"`
	Outcomes   []VideoOutcome `json:"outcomes"`
}

func NewRunSummary() *RunSummary {
	return &RunSummary{RunID: uuid.New(), StartedAt: time.Now().UTC()}
}

// Record folds one outcome into the summary counters.
func (s *RunSummary) Record(o VideoOutcome) {
	s.Outcomes = append(s.Outcomes, o)
	switch o.Status {
	case VideoSucceeded:
		s.Succeeded++
	case VideoNoPose:
		s.NoPose++
	case VideoFailed:
		s.Failed++
	}
}

func (s *RunSummary) Finish() {
	s.FinishedAt = time.Now().UTC()
}

func (s *RunSummary) Total() int {
	return len(s.Outcomes)
}
