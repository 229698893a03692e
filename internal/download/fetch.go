// Package download fetches remote media as a local audio file through yt-dlp.
package download

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// AudioFormat is the container yt-dlp transcodes the extracted audio to.
const AudioFormat = "mp3"

// progressInterval is how often yt-dlp progress is forwarded to the callback.
const progressInterval = 250 * time.Millisecond

// ProgressFunc receives download progress in bytes. total is 0 when unknown.
type ProgressFunc func(downloaded, total int64)

// runFunc executes a prepared yt-dlp command against url.
type runFunc func(ctx context.Context, cmd *ytdlp.Command, url string) (*ytdlp.Result, error)

// Fetcher downloads the audio track of a URL with yt-dlp.
type Fetcher struct {
	executable     string
	ffmpegLocation string
	progress       ProgressFunc

	// Injectable for tests; defaults to running the real binary with the
	// caller's environment.
	run     runFunc
	environ func() []string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithExecutable sets the yt-dlp binary path. Empty keeps the library's own lookup.
func WithExecutable(path string) FetcherOption {
	return func(f *Fetcher) { f.executable = path }
}

// WithFFmpegLocation points yt-dlp at the ffmpeg binary used for its audio
// transcode. Empty leaves yt-dlp to search PATH.
func WithFFmpegLocation(path string) FetcherOption {
	return func(f *Fetcher) { f.ffmpegLocation = path }
}

// WithProgress sets a callback for download progress.
func WithProgress(fn ProgressFunc) FetcherOption {
	return func(f *Fetcher) { f.progress = fn }
}

// NewFetcher creates a Fetcher with the given options.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{run: defaultRun, environ: os.Environ}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch extracts the audio of url to outputTemplate, a yt-dlp output template
// such as "dir/name.%(ext)s". A yt-dlp failure is returned as *ExitError.
func (f *Fetcher) Fetch(ctx context.Context, url, outputTemplate string) error {
	cmd := f.command(outputTemplate)

	res, err := f.run(ctx, cmd, url)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err == nil {
		return nil
	}
	return exitError(res, err)
}

// command builds the yt-dlp invocation: audio only, single item, fixed format.
func (f *Fetcher) command(outputTemplate string) *ytdlp.Command {
	cmd := ytdlp.New().
		ExtractAudio().
		AudioFormat(AudioFormat).
		NoPlaylist().
		Output(outputTemplate)

	if f.executable != "" {
		cmd.SetExecutable(f.executable)
	}
	if f.ffmpegLocation != "" {
		cmd.FFmpegLocation(f.ffmpegLocation)
	}

	// go-ytdlp starts yt-dlp with only the variables set on the command,
	// so proxies, HOME and locale must be copied over explicitly.
	for _, kv := range f.environ() {
		key, value, ok := strings.Cut(kv, "=")
		if ok && key != "" {
			cmd.SetEnvVar(key, value)
		}
	}

	if f.progress != nil {
		progress := f.progress
		cmd.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
			progress(int64(update.DownloadedBytes), int64(update.TotalBytes))
		})
	}
	return cmd
}

// defaultRun is the production implementation.
func defaultRun(ctx context.Context, cmd *ytdlp.Command, url string) (*ytdlp.Result, error) {
	return cmd.Run(ctx, url)
}

// exitError converts a failed run into an ExitError carrying yt-dlp's exit status.
// Failures without a status (binary missing, pipe errors) map to 1.
func exitError(res *ytdlp.Result, err error) *ExitError {
	e := &ExitError{Code: 1, err: err}

	var execErr *exec.ExitError
	if errors.As(err, &execErr) && execErr.ExitCode() > 0 {
		e.Code = execErr.ExitCode()
	}
	if res != nil {
		if res.ExitCode > 0 {
			e.Code = res.ExitCode
		}
		e.Stderr = strings.TrimSpace(res.Stderr)
	}
	return e
}
