package sampler

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// fileSystem abstracts the filesystem operations a run performs.
type fileSystem interface {
	MkdirAll(path string, perm os.FileMode) error
	ReadDir(name string) ([]os.DirEntry, error)
	Stat(name string) (os.FileInfo, error)
	Remove(name string) error
}

// osFileSystem implements fileSystem using the os package.
type osFileSystem struct{}

func (osFileSystem) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }
func (osFileSystem) ReadDir(name string) ([]os.DirEntry, error)   { return os.ReadDir(name) }
func (osFileSystem) Stat(name string) (os.FileInfo, error)        { return os.Stat(name) }
func (osFileSystem) Remove(name string) error                     { return os.Remove(name) }

// SourceTemplate is the yt-dlp output template for the temporary source.
func SourceTemplate(dir string) string {
	return filepath.Join(dir, SourceBase+".%(ext)s")
}

// SourcePath is where the transcoded source is expected after download.
func SourcePath(dir string) string {
	return filepath.Join(dir, SourceBase+ClipExt)
}

// ClipPath returns the output path of the clip with 1-based index i.
func ClipPath(dir string, i int) string {
	return filepath.Join(dir, fmt.Sprintf("clip_%03d%s", i, ClipExt))
}

// isLeftover reports whether name is a temporary source from an earlier run,
// in any extension yt-dlp may have left behind (.webm, .part, .mp3, ...).
func isLeftover(name string) bool {
	return strings.HasPrefix(name, SourceBase+".")
}

// removeLeftovers deletes temporary sources left in dir by interrupted runs.
func (s *Sampler) removeLeftovers(dir string) error {
	entries, err := s.files.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("cannot read output directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isLeftover(entry.Name()) {
			continue
		}
		if err := s.files.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("remove leftover %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// StartOffset maps a uniform draw u in [0, 1) to a clip start in [0, duration-length).
// The result is truncated to centiseconds, the precision passed to ffmpeg,
// so start+length never exceeds duration after formatting.
func StartOffset(u, duration, length float64) float64 {
	maxStart := duration - length
	if maxStart <= 0 {
		return 0
	}
	return math.Floor(u*maxStart*100) / 100
}

// Plan draws count clip positions for a source of the given duration.
// Clips are indexed from 1 and named clip_001.mp3, clip_002.mp3, ...
func Plan(draw func() float64, dir string, duration, length float64, count int) []Clip {
	clips := make([]Clip, 0, count)
	for i := 1; i <= count; i++ {
		clips = append(clips, Clip{
			Index: i,
			Path:  ClipPath(dir, i),
			Start: StartOffset(draw(), duration, length),
		})
	}
	return clips
}
