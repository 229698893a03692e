package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/alnah/sampleclips/internal/audio"
	"github.com/alnah/sampleclips/internal/config"
	"github.com/alnah/sampleclips/internal/download"
	"github.com/alnah/sampleclips/internal/ffmpeg"
	"github.com/alnah/sampleclips/internal/sampler"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Env must not be nil when passed to command functions. Use DefaultEnv()
// or NewEnv() to create a valid instance.
type Env struct {
	// I/O and environment
	Stdout     io.Writer
	Stderr     io.Writer
	Getenv     func(string) string
	Now        func() time.Time
	IsTerminal func(w io.Writer) bool

	// Factories for domain objects
	ToolResolver      ToolResolver
	ConfigLoader      ConfigLoader
	DownloaderFactory DownloaderFactory
	AudioFactory      AudioFactory
}

// ToolResolver locates the external binaries a run needs.
type ToolResolver interface {
	Resolve() (ffmpeg.Paths, error)
	CheckVersion(ctx context.Context, ffmpegPath string)
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// DownloaderFactory creates fetchers backed by yt-dlp.
type DownloaderFactory interface {
	NewFetcher(ytdlpPath, ffmpegPath string, progress download.ProgressFunc) sampler.Fetcher
}

// AudioFactory creates the ffprobe and ffmpeg front-ends and the clip tagger.
type AudioFactory interface {
	NewProber(ffprobePath string) (sampler.Prober, error)
	NewExtractor(ffmpegPath string) (sampler.Extractor, error)
	NewTagger() sampler.Tagger
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = fn
	}
}

// WithToolResolver sets the binary resolver.
func WithToolResolver(r ToolResolver) EnvOption {
	return func(e *Env) {
		e.ToolResolver = r
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithDownloaderFactory sets the downloader factory.
func WithDownloaderFactory(f DownloaderFactory) EnvOption {
	return func(e *Env) {
		e.DownloaderFactory = f
	}
}

// WithAudioFactory sets the audio factory.
func WithAudioFactory(f AudioFactory) EnvOption {
	return func(e *Env) {
		e.AudioFactory = f
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:            os.Stdout,
		Stderr:            os.Stderr,
		Getenv:            os.Getenv,
		Now:               time.Now,
		IsTerminal:        isTerminal,
		ToolResolver:      &defaultToolResolver{},
		ConfigLoader:      &defaultConfigLoader{},
		DownloaderFactory: &defaultDownloaderFactory{},
		AudioFactory:      &defaultAudioFactory{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultToolResolver implements ToolResolver using the ffmpeg package.
type defaultToolResolver struct{}

func (defaultToolResolver) Resolve() (ffmpeg.Paths, error) {
	return ffmpeg.Resolve()
}

func (defaultToolResolver) CheckVersion(ctx context.Context, ffmpegPath string) {
	ffmpeg.CheckVersion(ctx, ffmpegPath)
}

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultDownloaderFactory implements DownloaderFactory using go-ytdlp.
type defaultDownloaderFactory struct{}

func (defaultDownloaderFactory) NewFetcher(ytdlpPath, ffmpegPath string, progress download.ProgressFunc) sampler.Fetcher {
	return download.NewFetcher(
		download.WithExecutable(ytdlpPath),
		download.WithFFmpegLocation(ffmpegPath),
		download.WithProgress(progress),
	)
}

// defaultAudioFactory implements AudioFactory using the audio package.
type defaultAudioFactory struct{}

func (defaultAudioFactory) NewProber(ffprobePath string) (sampler.Prober, error) {
	return audio.NewProber(ffprobePath)
}

func (defaultAudioFactory) NewExtractor(ffmpegPath string) (sampler.Extractor, error) {
	return audio.NewExtractor(ffmpegPath)
}

func (defaultAudioFactory) NewTagger() sampler.Tagger {
	return &clipTagger{w: audio.NewTagger()}
}

// Compile-time interface verification.
var (
	_ ToolResolver      = (*defaultToolResolver)(nil)
	_ ConfigLoader      = (*defaultConfigLoader)(nil)
	_ DownloaderFactory = (*defaultDownloaderFactory)(nil)
	_ AudioFactory      = (*defaultAudioFactory)(nil)
)
