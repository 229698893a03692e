package ffmpeg

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
)

// Tool names an external binary and the environment variable that overrides its location.
type Tool struct {
	Name   string
	EnvVar string
}

// Tools used by the sampling pipeline.
var (
	FFmpeg     = Tool{Name: "ffmpeg", EnvVar: "FFMPEG_PATH"}
	FFprobe    = Tool{Name: "ffprobe", EnvVar: "FFPROBE_PATH"}
	Downloader = Tool{Name: "yt-dlp", EnvVar: "YTDLP_PATH"}
)

// binaryExtWindows is the file extension for Windows executables.
const binaryExtWindows = ".exe"

// minFFmpegMajorVersion is the minimum supported ffmpeg version.
const minFFmpegMajorVersion = 4

// Paths holds resolved absolute paths to every binary the pipeline invokes.
type Paths struct {
	FFmpeg     string
	FFprobe    string
	Downloader string
}

// ---------------------------------------------------------------------------
// Resolver - testable binary resolution with dependency injection
// ---------------------------------------------------------------------------

// Resolver locates ffmpeg, ffprobe and yt-dlp.
type Resolver struct {
	stat fileStatter
	env  envProvider
	goos string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithFileStatter sets the stat implementation.
func WithFileStatter(s fileStatter) ResolverOption {
	return func(res *Resolver) { res.stat = s }
}

// WithEnvProvider sets the environment provider implementation.
func WithEnvProvider(e envProvider) ResolverOption {
	return func(res *Resolver) { res.env = e }
}

// WithPlatform sets the target OS (for testing cross-platform behavior).
func WithPlatform(goos string) ResolverOption {
	return func(res *Resolver) { res.goos = goos }
}

// NewResolver creates a Resolver with the given options.
// Uses production defaults if no options are provided.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		stat: osFileStatter{},
		env:  osEnvProvider{},
		goos: runtime.GOOS,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve locates all three binaries. ffprobe is also searched for next to
// the resolved ffmpeg, since static builds usually ship them together.
func (r *Resolver) Resolve() (Paths, error) {
	var p Paths
	var err error

	if p.FFmpeg, err = r.Lookup(FFmpeg); err != nil {
		return Paths{}, err
	}

	p.FFprobe, err = r.Lookup(FFprobe)
	if err != nil {
		sibling := filepath.Join(filepath.Dir(p.FFmpeg), r.binaryName(FFprobe.Name))
		if _, statErr := r.stat.Stat(sibling); statErr != nil {
			return Paths{}, err
		}
		p.FFprobe = sibling
	}

	if p.Downloader, err = r.Lookup(Downloader); err != nil {
		return Paths{}, err
	}
	return p, nil
}

// Lookup finds a single tool using the following precedence:
//  1. the tool's environment variable (error if set but invalid)
//  2. system PATH
func (r *Resolver) Lookup(tool Tool) (string, error) {
	if envPath := r.env.Getenv(tool.EnvVar); envPath != "" {
		if _, err := r.stat.Stat(envPath); err != nil {
			return "", fmt.Errorf("%w: %s is set to %q but binary not found",
				ErrNotFound, tool.EnvVar, envPath)
		}
		return envPath, nil
	}

	if path, err := r.env.LookPath(tool.Name); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%w: %s\n\n%s", ErrNotFound, tool.Name, r.manualInstallInstructions(tool))
}

// binaryName appends the platform executable suffix.
func (r *Resolver) binaryName(name string) string {
	if r.goos == "windows" {
		return name + binaryExtWindows
	}
	return name
}

// manualInstallInstructions returns platform-specific instructions.
func (r *Resolver) manualInstallInstructions(tool Tool) string {
	pkg := tool.Name
	if tool == FFprobe {
		pkg = FFmpeg.Name // ffprobe ships with the ffmpeg package everywhere
	}

	switch r.goos {
	case "darwin":
		return fmt.Sprintf(`To install %[1]s manually:
  brew install %[2]s

Or set %[3]s environment variable to your %[1]s binary.`, tool.Name, pkg, tool.EnvVar)
	case "linux":
		return fmt.Sprintf(`To install %[1]s manually:
  Ubuntu/Debian: sudo apt install %[2]s
  Fedora:        sudo dnf install %[2]s
  Arch:          sudo pacman -S %[2]s

Or set %[3]s environment variable to your %[1]s binary.`, tool.Name, pkg, tool.EnvVar)
	case "windows":
		return fmt.Sprintf(`To install %[1]s manually:
  winget install %[2]s

Or set %[3]s environment variable to your %[1]s.exe.`, tool.Name, pkg, tool.EnvVar)
	default:
		return fmt.Sprintf(`To install %[1]s manually, use your system package manager.
Or set %[2]s environment variable to your %[1]s binary.`, tool.Name, tool.EnvVar)
	}
}

// ---------------------------------------------------------------------------
// Package-level functions - default resolver facade
// ---------------------------------------------------------------------------

var (
	defaultResolver     *Resolver
	defaultResolverOnce sync.Once
)

// getDefaultResolver returns the lazily-initialized default resolver.
func getDefaultResolver() *Resolver {
	defaultResolverOnce.Do(func() {
		defaultResolver = NewResolver()
	})
	return defaultResolver
}

// Resolve locates all binaries using the default resolver.
func Resolve() (Paths, error) {
	return getDefaultResolver().Resolve()
}
