package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/port"
)

// fakeSource replays a fixed number of tiny frames in order.
type fakeSource struct {
	frameCount int
	next       int
	closed     bool
}

func (s *fakeSource) Next(ctx context.Context) (*port.Frame, error) {
	if s.next >= s.frameCount {
		return nil, io.EOF
	}
	f := &port.Frame{Index: s.next, Width: 2, Height: 2, Pixels: make([]byte, 12)}
	s.next++
	return f, nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

// fakeOpener maps video paths to frame counts; missing paths fail to open.
type fakeOpener struct {
	frameCounts map[string]int
}

func (o *fakeOpener) Open(ctx context.Context, videoPath string) (port.FrameSource, error) {
	n, ok := o.frameCounts[videoPath]
	if !ok {
		return nil, fmt.Errorf("cannot open %s", videoPath)
	}
	return &fakeSource{frameCount: n}, nil
}

// fakeDetector reports landmarks for the frame indexes listed in detections.
type fakeDetector struct {
	detections map[int][]entity.Landmark
	calls      []int
	closed     bool
}

func (d *fakeDetector) Detect(ctx context.Context, frame *port.Frame) ([]entity.Landmark, bool, error) {
	d.calls = append(d.calls, frame.Index)
	lms, ok := d.detections[frame.Index]
	return lms, ok, nil
}

func (d *fakeDetector) Close() error {
	d.closed = true
	return nil
}

// fakeProvider hands out one scripted detector per video and records
// acquisitions.
type fakeProvider struct {
	mu         sync.Mutex
	detections map[string]map[int][]entity.Landmark
	acquired   []string
	handedOut  map[string]*fakeDetector
}

func newFakeProvider(detections map[string]map[int][]entity.Landmark) *fakeProvider {
	return &fakeProvider{
		detections: detections,
		handedOut:  make(map[string]*fakeDetector),
	}
}

func (p *fakeProvider) Acquire(ctx context.Context, videoName string) (port.LandmarkDetector, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.acquired = append(p.acquired, videoName)
	d := &fakeDetector{detections: p.detections[videoName]}
	p.handedOut[videoName] = d
	return d, nil
}

// fakeArtifacts keeps captures in memory; failErr forces Save to fail.
type fakeArtifacts struct {
	mu      sync.Mutex
	saved   map[string]*entity.RawCapture
	failErr error
}

func newFakeArtifacts() *fakeArtifacts {
	return &fakeArtifacts{saved: make(map[string]*entity.RawCapture)}
}

func (a *fakeArtifacts) Save(ctx context.Context, capture *entity.RawCapture) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failErr != nil {
		return "", a.failErr
	}
	a.saved[capture.VideoName] = capture
	return "/artifacts/" + capture.VideoName + ".json", nil
}

func (a *fakeArtifacts) Load(ctx context.Context, videoName string) (*entity.RawCapture, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, ok := a.saved[videoName]
	if !ok {
		return nil, fmt.Errorf("no artifact for %s", videoName)
	}
	return c, nil
}

// memRepo implements the store's conflict policy in memory: first write
// wins, duplicate keys are dropped.
type memRepo struct {
	mu   sync.Mutex
	rows map[string]entity.NormalizedRow
	err  error
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[string]entity.NormalizedRow)}
}

func rowKey(r entity.NormalizedRow) string {
	return fmt.Sprintf("%s|%d|%d", r.VideoName, r.Frame, r.LandmarkID)
}

func (m *memRepo) InsertBatch(ctx context.Context, rows []entity.NormalizedRow) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, 0, m.err
	}
	inserted, skipped := 0, 0
	for _, r := range rows {
		key := rowKey(r)
		if _, exists := m.rows[key]; exists {
			skipped++
			continue
		}
		m.rows[key] = r
		inserted++
	}
	return inserted, skipped, nil
}

func (m *memRepo) countForVideo(video string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.rows {
		if r.VideoName == video {
			n++
		}
	}
	return n
}

// recordingPublisher collects published outcomes.
type recordingPublisher struct {
	mu       sync.Mutex
	outcomes []entity.VideoOutcome
}

func (p *recordingPublisher) PublishOutcome(ctx context.Context, outcome entity.VideoOutcome) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outcomes = append(p.outcomes, outcome)
	return nil
}

func landmarksFor(ids ...int) []entity.Landmark {
	lms := make([]entity.Landmark, 0, len(ids))
	for _, id := range ids {
		lms = append(lms, entity.Landmark{
			ID:         id,
			Name:       entity.LandmarkName(id),
			X:          0.1 * float64(id+1),
			Y:          0.2 * float64(id+1),
			Z:          -0.05,
			Visibility: 0.9,
		})
	}
	return lms
}
