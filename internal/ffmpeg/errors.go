package ffmpeg

import "errors"

// ErrNotFound indicates a required media binary could not be located.
var ErrNotFound = errors.New("binary not found")
