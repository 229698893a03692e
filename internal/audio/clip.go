package audio

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alnah/sampleclips/internal/ffmpeg"
)

// Extractor cuts fixed-length clips out of a source file with ffmpeg.
type Extractor struct {
	ffmpegPath string

	// Injectable dependencies (defaults to OS implementations).
	cmd commandRunner
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithExtractorCommandRunner sets the command runner for Extractor.
func WithExtractorCommandRunner(r commandRunner) ExtractorOption {
	return func(e *Extractor) {
		e.cmd = r
	}
}

// NewExtractor creates an Extractor that invokes the ffmpeg binary at ffmpegPath.
func NewExtractor(ffmpegPath string, opts ...ExtractorOption) (*Extractor, error) {
	if ffmpegPath == "" {
		return nil, fmt.Errorf("ffmpegPath cannot be empty: %w", ffmpeg.ErrNotFound)
	}

	e := &Extractor{
		ffmpegPath: ffmpegPath,
		cmd:        osCommandRunner{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Extract writes length seconds of src starting at start to dst, overwriting dst.
func (e *Extractor) Extract(ctx context.Context, src, dst string, start, length float64) error {
	_, stderr, err := e.cmd.Run(ctx, e.ffmpegPath, extractArgs(src, dst, start, length))
	if err != nil {
		return fmt.Errorf("%w: %s: %v\nOutput: %s", ErrExtractFailed, dst, err, string(stderr))
	}
	return nil
}

// clipEncodingArgs returns the encoder settings for clips.
// Re-encoding keeps random-offset cuts valid; -q:a 2 is high quality VBR.
func clipEncodingArgs() []string {
	return []string{
		"-c:a", "libmp3lame",
		"-q:a", "2",
	}
}

// extractArgs builds the ffmpeg command line for one clip.
// -ss precedes -i so ffmpeg seeks the input instead of decoding up to start.
func extractArgs(src, dst string, start, length float64) []string {
	args := []string{
		"-y",
		"-ss", FormatOffset(start),
		"-i", src,
		"-t", formatLength(length),
	}
	args = append(args, clipEncodingArgs()...)
	args = append(args, "-loglevel", "error", dst)
	return args
}

// FormatOffset formats a start offset in seconds with two decimals, as passed to ffmpeg.
func FormatOffset(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 2, 64)
}

// formatLength formats a clip length without trailing zeros (10 -> "10", 2.5 -> "2.5").
func formatLength(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}
