package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLandmarkName(t *testing.T) {
	assert.Equal(t, "NOSE", LandmarkName(0))
	assert.Equal(t, "LEFT_SHOULDER", LandmarkName(11))
	assert.Equal(t, "RIGHT_FOOT_INDEX", LandmarkName(32))
	assert.Empty(t, LandmarkName(-1))
	assert.Empty(t, LandmarkName(NumPoseLandmarks))
}

func TestLandmarkCount(t *testing.T) {
	c := &RawCapture{
		VideoName: "walk.mp4",
		Frames: []FrameRecord{
			{Frame: 0, Landmarks: make([]Landmark, 33)},
			{Frame: 4, Landmarks: make([]Landmark, 2)},
		},
	}
	assert.Equal(t, 35, c.LandmarkCount())
	assert.Zero(t, (&RawCapture{}).LandmarkCount())
}

func TestRunSummaryRecord(t *testing.T) {
	s := NewRunSummary()
	s.Record(SucceededOutcome("a.mp4", 10, 8, 264, 0))
	s.Record(NoPoseOutcome("b.mp4", 12))
	s.Record(FailedOutcome("c.mp4", ErrVideoUnreadable))
	s.Finish()

	assert.Equal(t, 1, s.Succeeded)
	assert.Equal(t, 1, s.NoPose)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 3, s.Total())
	assert.Equal(t, ErrVideoUnreadable.Error(), s.Outcomes[2].Error)
}
