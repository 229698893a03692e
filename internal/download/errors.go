package download

import (
	"errors"
	"fmt"
)

// ErrDownloadFailed indicates yt-dlp did not complete successfully.
var ErrDownloadFailed = errors.New("download failed")

// ExitError reports a yt-dlp failure together with the exit status the
// process should propagate.
type ExitError struct {
	Code   int
	Stderr string
	err    error
}

// Error prints yt-dlp's stderr when there is any. The cause is only printed
// without it, since go-ytdlp already embeds stderr in its own error.
func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%v: yt-dlp exited with status %d", ErrDownloadFailed, e.Code)
	switch {
	case e.Stderr != "":
		msg += "\nOutput: " + e.Stderr
	case e.err != nil:
		msg += fmt.Sprintf(" (%v)", e.err)
	}
	return msg
}

// Unwrap lets errors.Is match both ErrDownloadFailed and the underlying cause.
func (e *ExitError) Unwrap() []error {
	if e.err == nil {
		return []error{ErrDownloadFailed}
	}
	return []error{ErrDownloadFailed, e.err}
}
