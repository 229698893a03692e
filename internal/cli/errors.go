package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrMissingURL indicates the source URL argument was not given.
	ErrMissingURL = errors.New("missing source URL")

	// ErrInvalidURL indicates the source argument is not an http(s) URL.
	ErrInvalidURL = errors.New("invalid source URL")

	// ErrInvalidClipLength indicates the clip length argument is not a positive number.
	ErrInvalidClipLength = errors.New("invalid clip length")
)
