package audio

import "errors"

// ErrProbeFailed indicates ffprobe output could not be parsed as a duration.
var ErrProbeFailed = errors.New("duration probe failed")

// ErrExtractFailed indicates ffmpeg failed to produce a clip.
var ErrExtractFailed = errors.New("clip extraction failed")

// ErrTagFailed indicates ID3 tags could not be written to a clip.
var ErrTagFailed = errors.New("clip tagging failed")
