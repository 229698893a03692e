package audio

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alnah/sampleclips/internal/ffmpeg"
)

// Prober reports the container-level duration of a media file using ffprobe.
type Prober struct {
	ffprobePath string

	// Injectable dependencies (defaults to OS implementations).
	cmd commandRunner
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithProberCommandRunner sets the command runner for Prober.
func WithProberCommandRunner(r commandRunner) ProberOption {
	return func(p *Prober) {
		p.cmd = r
	}
}

// NewProber creates a Prober that invokes the ffprobe binary at ffprobePath.
func NewProber(ffprobePath string, opts ...ProberOption) (*Prober, error) {
	if ffprobePath == "" {
		return nil, fmt.Errorf("ffprobePath cannot be empty: %w", ffmpeg.ErrNotFound)
	}

	p := &Prober{
		ffprobePath: ffprobePath,
		cmd:         osCommandRunner{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Duration returns the total duration of the file at path in seconds.
// The exit status of ffprobe is not consulted: only its stdout decides.
// When stdout is not a number, the error carries ffprobe's stderr.
func (p *Prober) Duration(ctx context.Context, path string) (float64, error) {
	stdout, stderr, runErr := p.cmd.Run(ctx, p.ffprobePath, probeArgs(path))
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	seconds, err := parseProbeDuration(string(stdout))
	if err != nil {
		detail := strings.TrimSpace(string(stderr))
		if detail == "" && runErr != nil {
			detail = runErr.Error()
		}
		return 0, fmt.Errorf("%w: %s: %v\nOutput: %s", ErrProbeFailed, path, err, detail)
	}
	return seconds, nil
}

// probeArgs asks ffprobe for the bare format=duration value.
func probeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
}

// parseProbeDuration parses ffprobe's plain-text duration.
// NaN, infinities and negative values are rejected; ffprobe prints "N/A"
// for streams without a known duration.
func parseProbeDuration(output string) (float64, error) {
	value := strings.TrimSpace(output)
	if value == "" {
		return 0, fmt.Errorf("empty duration")
	}

	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	return seconds, nil
}
