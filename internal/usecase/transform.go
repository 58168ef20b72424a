package usecase

import (
	"time"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
)

// Transform flattens a RawCapture into one NormalizedRow per landmark.
// processedAt is assigned once by the caller and stamped onto every emitted
// row. Pure: no I/O, deterministic for fixed inputs, empty capture yields an
// empty slice.
func Transform(capture *entity.RawCapture, processedAt time.Time) []entity.NormalizedRow {
	rows := make([]entity.NormalizedRow, 0, capture.LandmarkCount())
	for _, frame := range capture.Frames {
		for _, lm := range frame.Landmarks {
			rows = append(rows, entity.NormalizedRow{
				VideoName:    capture.VideoName,
				Frame:        frame.Frame,
				LandmarkID:   lm.ID,
				LandmarkName: lm.Name,
				X:            lm.X,
				Y:            lm.Y,
				Z:            lm.Z,
				Visibility:   lm.Visibility,
				ProcessedAt:  processedAt,
			})
		}
	}
	return rows
}
