// Package sampler runs the download, probe and clip extraction pipeline.
//
// A run is strictly sequential: every external tool invocation finishes
// before the next one starts. The only state shared between steps is the
// output directory, which a file lock reserves for the duration of the run.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Defaults for a run.
const (
	DefaultClipLength = 10.0
	DefaultCount      = 30
	DefaultOutputDir  = "public/music-presets/sampled"
)

// File layout inside the output directory.
const (
	// SourceBase is the basename of the downloaded full-length audio.
	SourceBase = "temp_source_audio"

	// ClipExt is the extension of the source and of every clip.
	ClipExt = ".mp3"

	// LockFileName is the advisory lock reserving an output directory.
	LockFileName = ".sampleclips.lock"

	outputDirPerm = 0750
)

// Fetcher downloads the audio of url to a yt-dlp style output template.
type Fetcher interface {
	Fetch(ctx context.Context, url, outputTemplate string) error
}

// Prober reports the duration of a media file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Extractor writes length seconds of src starting at start to dst.
type Extractor interface {
	Extract(ctx context.Context, src, dst string, start, length float64) error
}

// Tagger writes metadata into a clip after a successful extraction.
type Tagger interface {
	Tag(path string, meta ClipMeta) error
}

// ClipMeta describes where a clip came from.
type ClipMeta struct {
	URL    string
	Index  int
	Total  int
	Start  float64
	Length float64
}

// Options are the per-run parameters.
type Options struct {
	OutputDir  string
	ClipLength float64
	Count      int
}

// Clip is one planned extraction.
type Clip struct {
	Index int     // 1-based.
	Path  string  // Output file.
	Start float64 // Offset into the source in seconds.
}

// Result summarises a completed run.
type Result struct {
	Source   string
	Duration float64
	Clips    []Clip
	Failed   int // Clips whose extraction returned an error.
}

// Sampler runs the pipeline with injected collaborators.
type Sampler struct {
	fetcher   Fetcher
	prober    Prober
	extractor Extractor
	reporter  Reporter
	tagger    Tagger
	draw      func() float64

	// Injectable dependencies (defaults to OS implementations).
	files fileSystem
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithReporter sets the progress reporter. Default: discard.
func WithReporter(r Reporter) Option {
	return func(s *Sampler) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithTagger tags every extracted clip. Default: no tagging.
func WithTagger(t Tagger) Option {
	return func(s *Sampler) {
		s.tagger = t
	}
}

// WithSeed makes start offsets reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Sampler) {
		s.draw = rand.New(rand.NewPCG(seed, seed)).Float64
	}
}

// WithRandom sets the source of uniform values in [0, 1).
func WithRandom(fn func() float64) Option {
	return func(s *Sampler) {
		s.draw = fn
	}
}

// withFileSystem replaces filesystem access (for testing).
func withFileSystem(fs fileSystem) Option {
	return func(s *Sampler) {
		s.files = fs
	}
}

// New creates a Sampler.
func New(fetcher Fetcher, prober Prober, extractor Extractor, opts ...Option) *Sampler {
	s := &Sampler{
		fetcher:   fetcher,
		prober:    prober,
		extractor: extractor,
		reporter:  nopReporter{},
		draw:      rand.Float64,
		files:     osFileSystem{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run downloads url into opts.OutputDir and extracts opts.Count clips.
//
// Download, probe and too-short failures abort before any clip is written.
// A failing clip extraction does not stop the loop; it is reported and
// counted in Result.Failed. Tagging failures are reported but not counted.
// The temporary source is removed only on success.
//
// The lock file (LockFileName) is left in the output directory. Deleting it
// after unlocking would let a waiting run lock the unlinked file while a new
// run locks a fresh one, and both would share the temporary source.
func (s *Sampler) Run(ctx context.Context, url string, opts Options) (Result, error) {
	opts, err := normalize(opts)
	if err != nil {
		return Result{}, err
	}

	if err := s.files.MkdirAll(opts.OutputDir, outputDirPerm); err != nil {
		return Result{}, fmt.Errorf("cannot create output directory: %w", err)
	}

	lock := flock.New(filepath.Join(opts.OutputDir, LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return Result{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return Result{}, fmt.Errorf("%w: %s", ErrLocked, opts.OutputDir)
	}
	defer func() { _ = lock.Unlock() }()

	if err := s.removeLeftovers(opts.OutputDir); err != nil {
		return Result{}, err
	}

	s.reporter.Downloading(url)
	if err := s.fetcher.Fetch(ctx, url, SourceTemplate(opts.OutputDir)); err != nil {
		return Result{}, err
	}

	source := SourcePath(opts.OutputDir)
	if _, err := s.files.Stat(source); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrSourceMissing, source)
		}
		return Result{}, fmt.Errorf("cannot access downloaded file: %w", err)
	}

	duration, err := s.prober.Duration(ctx, source)
	if err != nil {
		return Result{}, err
	}
	s.reporter.Probed(duration)

	if duration < opts.ClipLength {
		return Result{}, fmt.Errorf("%w: source %.2fs, clip %gs", ErrSourceTooShort, duration, opts.ClipLength)
	}

	res := Result{
		Source:   source,
		Duration: duration,
		Clips:    Plan(s.draw, opts.OutputDir, duration, opts.ClipLength, opts.Count),
	}

	for _, clip := range res.Clips {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		s.reporter.ClipStarted(clip, len(res.Clips))
		if err := s.extractor.Extract(ctx, source, clip.Path, clip.Start, opts.ClipLength); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, ctxErr
			}
			res.Failed++
			s.reporter.ClipFailed(clip, err)
			continue
		}
		s.tag(url, clip, len(res.Clips), opts.ClipLength)
	}
	s.reporter.Finished(res, opts.OutputDir)

	if err := s.files.Remove(source); err != nil {
		return res, fmt.Errorf("remove temporary source file: %w", err)
	}
	s.reporter.SourceRemoved(source)

	return res, nil
}

// tag writes clip metadata. A tagging failure leaves the clip in place.
func (s *Sampler) tag(url string, clip Clip, total int, length float64) {
	if s.tagger == nil {
		return
	}
	meta := ClipMeta{URL: url, Index: clip.Index, Total: total, Start: clip.Start, Length: length}
	if err := s.tagger.Tag(clip.Path, meta); err != nil {
		s.reporter.ClipTagFailed(clip, err)
	}
}

// normalize applies defaults and validates opts.
func normalize(opts Options) (Options, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}
	if opts.ClipLength == 0 {
		opts.ClipLength = DefaultClipLength
	}
	if opts.Count == 0 {
		opts.Count = DefaultCount
	}

	if math.IsNaN(opts.ClipLength) || math.IsInf(opts.ClipLength, 0) || opts.ClipLength <= 0 {
		return opts, fmt.Errorf("%w: %v", ErrInvalidClipLength, opts.ClipLength)
	}
	if opts.Count < 1 {
		return opts, fmt.Errorf("%w: %d", ErrInvalidCount, opts.Count)
	}
	return opts, nil
}
