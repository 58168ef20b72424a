package ffmpeg

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/port"
	"go.uber.org/zap"
)

// Opener decodes videos with ffmpeg into a sequential stream of raw RGB
// frames. One decode process per opened video.
type Opener struct {
	ffmpegBin  string
	ffprobeBin string
	logger     *zap.Logger
}

func NewOpener(ffmpegBin, ffprobeBin string, logger *zap.Logger) *Opener {
	return &Opener{ffmpegBin: ffmpegBin, ffprobeBin: ffprobeBin, logger: logger}
}

func (o *Opener) Open(ctx context.Context, videoPath string) (port.FrameSource, error) {
	width, height, err := o.probeGeometry(ctx, videoPath)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", videoPath, err)
	}

	cmd := exec.CommandContext(ctx, o.ffmpegBin,
		"-i", videoPath,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-v", "error",
		"pipe:1",
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	o.logger.Debug("decoding video",
		zap.String("path", videoPath),
		zap.Int("width", width),
		zap.Int("height", height),
	)

	return &frameSource{
		cmd:    cmd,
		out:    bufio.NewReaderSize(stdout, 1<<20),
		width:  width,
		height: height,
	}, nil
}

func (o *Opener) probeGeometry(ctx context.Context, videoPath string) (width, height int, err error) {
	cmd := exec.CommandContext(ctx, o.ffprobeBin,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=p=0",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe: %w", err)
	}

	parts := strings.Split(strings.TrimSpace(string(output)), ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unexpected ffprobe output %q", strings.TrimSpace(string(output)))
	}
	width, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("parse width: %w", err)
	}
	height, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("parse height: %w", err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid geometry %dx%d", width, height)
	}
	return width, height, nil
}

type frameSource struct {
	cmd    *exec.Cmd
	out    *bufio.Reader
	width  int
	height int
	index  int
}

func (s *frameSource) Next(ctx context.Context) (*port.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pixels := make([]byte, s.width*s.height*3)
	_, err := io.ReadFull(s.out, pixels)
	if err == io.EOF {
		// Clean end of stream; reap the decoder.
		if waitErr := s.cmd.Wait(); waitErr != nil {
			return nil, fmt.Errorf("ffmpeg exited: %w", waitErr)
		}
		s.cmd = nil
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read frame %d: %w", s.index, err)
	}

	frame := &port.Frame{
		Index:  s.index,
		Width:  s.width,
		Height: s.height,
		Pixels: pixels,
	}
	s.index++
	return frame, nil
}

func (s *frameSource) Close() error {
	if s.cmd == nil {
		return nil
	}
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.cmd.Wait()
	s.cmd = nil
	return nil
}
