package entity

import "time"

// Landmark is one detected skeletal point in a frame. Coordinates are
// normalized to the frame dimensions; Visibility is the detector's
// confidence that the point is visible.
type Landmark struct {
	ID         int     `json:"id"`
	Name       string  `json:"nome"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// FrameRecord holds the landmarks detected in a single frame. Frame is the
// frame's ordinal position in the source video; frames without a detection
// are never recorded, so a video's records are sparse.
type FrameRecord struct {
	Frame     int        `json:"frame"`
	Landmarks []Landmark `json:"landmarks"`
}

// RawCapture is the durable per-video intermediate: every frame that produced
// a detection, in strictly increasing frame order. It is written once by the
// capture stage and read-only afterwards.
type RawCapture struct {
	VideoName string        `json:"-"`
	Frames    []FrameRecord `json:"frames"`
}

// LandmarkCount returns the total number of landmarks across all frames,
// which is exactly the number of rows a transform of this capture emits.
func (c *RawCapture) LandmarkCount() int {
	n := 0
	for _, f := range c.Frames {
		n += len(f.Landmarks)
	}
	return n
}

// NormalizedRow is one flattened (video, frame, landmark) record, the unit
// stored in keypoints_normalizados. ProcessedAt is assigned once per
// transform invocation and shared by every row it emits.
type NormalizedRow struct {
	VideoName    string
	Frame        int
	LandmarkID   int
	LandmarkName string
	X            float64
	Y            float64
	Z            float64
	Visibility   float64
	ProcessedAt  time.Time
}

// poseLandmarkNames is the fixed 33-point pose topology, indexed by landmark id.
var poseLandmarkNames = [...]string{
	"NOSE",
	"LEFT_EYE_INNER",
	"LEFT_EYE",
	"LEFT_EYE_OUTER",
	"RIGHT_EYE_INNER",
	"RIGHT_EYE",
	"RIGHT_EYE_OUTER",
	"LEFT_EAR",
	"RIGHT_EAR",
	"MOUTH_LEFT",
	"MOUTH_RIGHT",
	"LEFT_SHOULDER",
	"RIGHT_SHOULDER",
	"LEFT_ELBOW",
	"RIGHT_ELBOW",
	"LEFT_WRIST",
	"RIGHT_WRIST",
	"LEFT_PINKY",
	"RIGHT_PINKY",
	"LEFT_INDEX",
	"RIGHT_INDEX",
	"LEFT_THUMB",
	"RIGHT_THUMB",
	"LEFT_HIP",
	"RIGHT_HIP",
	"LEFT_KNEE",
	"RIGHT_KNEE",
	"LEFT_ANKLE",
	"RIGHT_ANKLE",
	"LEFT_HEEL",
	"RIGHT_HEEL",
	"LEFT_FOOT_INDEX",
	"RIGHT_FOOT_INDEX",
}

// NumPoseLandmarks is the size of the pose landmark enumeration.
const NumPoseLandmarks = len(poseLandmarkNames)

// LandmarkName returns the symbolic label for a landmark id, or an empty
// string for ids outside the enumeration.
func LandmarkName(id int) string {
	if id < 0 || id >= len(poseLandmarkNames) {
		return ""
	}
	return poseLandmarkNames[id]
}
