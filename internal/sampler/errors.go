package sampler

import "errors"

// ErrSourceMissing indicates the downloader finished but the expected source file is absent.
var ErrSourceMissing = errors.New("could not find downloaded audio file")

// ErrSourceTooShort indicates the source is shorter than the requested clip length.
var ErrSourceTooShort = errors.New("audio is shorter than the requested clip duration")

// ErrInvalidClipLength indicates a clip length that is not a finite positive number.
var ErrInvalidClipLength = errors.New("clip length must be a positive number of seconds")

// ErrInvalidCount indicates a non-positive clip count.
var ErrInvalidCount = errors.New("clip count must be at least 1")

// ErrLocked indicates another run holds the output directory.
var ErrLocked = errors.New("output directory is in use by another run")
