package cli

import (
	"fmt"
	"io"
	"maps"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/alnah/sampleclips/internal/download"
	"github.com/alnah/sampleclips/internal/format"
	"github.com/alnah/sampleclips/internal/sampler"
)

const barThrottle = 65 * time.Millisecond

// progressReporter prints run events to stderr.
//
// On a terminal, download and clip progress are drawn as bars; otherwise one
// status line is written per event so logs stay readable.
type progressReporter struct {
	w           io.Writer
	interactive bool
	now         func() time.Time

	mu       sync.Mutex
	started  time.Time
	download *progressbar.ProgressBar
	clips    *progressbar.ProgressBar
	failed   map[int]bool
}

var _ sampler.Reporter = (*progressReporter)(nil)

func newProgressReporter(env *Env) *progressReporter {
	interactive := false
	if env.IsTerminal != nil {
		interactive = env.IsTerminal(env.Stderr)
	}
	now := env.Now
	if now == nil {
		now = time.Now
	}
	return &progressReporter{
		w:           env.Stderr,
		interactive: interactive,
		now:         now,
		started:     now(),
	}
}

// DownloadProgress feeds yt-dlp byte counts into the download bar.
// It is only wired on a terminal; yt-dlp may call it from another goroutine.
func (r *progressReporter) DownloadProgress(downloaded, total int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.download == nil {
		limit := total
		if limit <= 0 {
			limit = -1 // spinner until yt-dlp knows the size
		}
		r.download = progressbar.NewOptions64(limit,
			progressbar.OptionSetWriter(r.w),
			progressbar.OptionSetDescription("Downloading"),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(barThrottle),
			progressbar.OptionClearOnFinish(),
		)
	} else if total > 0 && total != r.download.GetMax64() {
		r.download.ChangeMax64(total)
	}
	_ = r.download.Set64(downloaded)
}

// progressFunc returns the download callback, or nil when no bar is drawn.
func (r *progressReporter) progressFunc() download.ProgressFunc {
	if !r.interactive {
		return nil
	}
	return r.DownloadProgress
}

func (r *progressReporter) Downloading(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "Downloading audio from %s...\n", url)
}

func (r *progressReporter) Probed(duration float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.finishDownload()
	if r.interactive {
		fmt.Fprintf(r.w, "Total duration: %s seconds (%s)\n", format.Seconds(duration), format.Clock(duration))
		return
	}
	fmt.Fprintf(r.w, "Total duration: %s seconds\n", format.Seconds(duration))
}

func (r *progressReporter) ClipStarted(clip sampler.Clip, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.interactive {
		fmt.Fprintf(r.w, "[%d/%d] Generating clip starting at %ss...\n", clip.Index, total, format.Seconds(clip.Start))
		return
	}

	if r.clips == nil {
		r.clips = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(r.w),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionThrottle(barThrottle),
			progressbar.OptionClearOnFinish(),
		)
	}
	r.clips.Describe(fmt.Sprintf("clip_%03d @ %ss", clip.Index, format.Seconds(clip.Start)))
	_ = r.clips.Set(clip.Index - 1)
}

func (r *progressReporter) ClipFailed(clip sampler.Clip, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.clips != nil {
		_ = r.clips.Clear()
	}
	if r.failed == nil {
		r.failed = make(map[int]bool)
	}
	r.failed[clip.Index] = true
	fmt.Fprintf(r.w, "Warning: clip %d failed: %v\n", clip.Index, err)
}

func (r *progressReporter) ClipTagFailed(clip sampler.Clip, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.clips != nil {
		_ = r.clips.Clear()
	}
	fmt.Fprintf(r.w, "Warning: could not tag clip %d: %v\n", clip.Index, err)
}

func (r *progressReporter) Finished(res sampler.Result, dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.clips != nil {
		_ = r.clips.Finish()
		r.clips = nil
	}

	fmt.Fprintf(r.w, "Done! %d clips saved to %s\n", len(res.Clips), dir)
	if res.Failed > 0 {
		fmt.Fprintf(r.w, "Warning: %d of %d clips failed\n", res.Failed, len(res.Clips))
	}
	if r.interactive {
		fmt.Fprintf(r.w, "  %s in %s\n", format.Size(clipBytes(res.Clips)), format.Elapsed(r.now().Sub(r.started)))
	}
}

func (r *progressReporter) SourceRemoved(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, "Temporary source file removed.")
}

// failedClips returns the indices reported through ClipFailed.
func (r *progressReporter) failedClips() map[int]bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.failed)
}

// Close finishes any bar still on screen. Safe to call more than once.
func (r *progressReporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.finishDownload()
	if r.clips != nil {
		_ = r.clips.Exit()
		r.clips = nil
	}
}

// finishDownload must be called with r.mu held.
func (r *progressReporter) finishDownload() {
	if r.download != nil {
		_ = r.download.Finish()
		r.download = nil
	}
}

// clipBytes sums the size of the clips present on disk.
func clipBytes(clips []sampler.Clip) int64 {
	var total int64
	for _, c := range clips {
		if info, err := os.Stat(c.Path); err == nil {
			total += info.Size()
		}
	}
	return total
}
