package port

import "context"

// Frame is one decoded video frame. Pixels is packed RGB, row-major,
// Width*Height*3 bytes. Index is the frame's ordinal position in the video,
// starting at 0.
type Frame struct {
	Index  int
	Width  int
	Height int
	Pixels []byte
}

// FrameSource yields a video's decoded frames strictly in order. Next
// returns io.EOF after the last frame.
type FrameSource interface {
	Next(ctx context.Context) (*Frame, error)
	Close() error
}

// FrameSourceOpener opens a video file for decoding. An open failure means
// the video is unreadable and the job cannot proceed.
type FrameSourceOpener interface {
	Open(ctx context.Context, videoPath string) (FrameSource, error)
}
