package usecase

import (
	"testing"
	"time"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformFlattensEveryLandmark(t *testing.T) {
	capture := &entity.RawCapture{
		VideoName: "walk.mp4",
		Frames: []entity.FrameRecord{
			{Frame: 0, Landmarks: landmarksFor(0, 11, 12)},
			{Frame: 2, Landmarks: landmarksFor(0, 11)},
		},
	}
	processedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	rows := Transform(capture, processedAt)
	require.Len(t, rows, capture.LandmarkCount())

	first := rows[0]
	assert.Equal(t, "walk.mp4", first.VideoName)
	assert.Equal(t, 0, first.Frame)
	assert.Equal(t, 0, first.LandmarkID)
	assert.Equal(t, "NOSE", first.LandmarkName)

	last := rows[len(rows)-1]
	assert.Equal(t, 2, last.Frame)
	assert.Equal(t, 11, last.LandmarkID)
	assert.Equal(t, "LEFT_SHOULDER", last.LandmarkName)

	// One timestamp per transform invocation, shared by every row.
	for _, row := range rows {
		assert.Equal(t, processedAt, row.ProcessedAt)
	}
}

func TestTransformEmptyCapture(t *testing.T) {
	rows := Transform(&entity.RawCapture{VideoName: "none.mp4"}, time.Now().UTC())
	assert.Empty(t, rows)
}

func TestTransformDeterministic(t *testing.T) {
	capture := &entity.RawCapture{
		VideoName: "walk.mp4",
		Frames:    []entity.FrameRecord{{Frame: 7, Landmarks: landmarksFor(23, 24)}},
	}
	processedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, Transform(capture, processedAt), Transform(capture, processedAt))
}
