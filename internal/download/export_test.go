package download

// Export internal functions for testing.

// RunFunc exports runFunc for testing.
type RunFunc = runFunc

// WithRun replaces the yt-dlp runner (for testing).
func WithRun(fn RunFunc) FetcherOption {
	return func(f *Fetcher) { f.run = fn }
}

// WithEnviron replaces the environment copied into the yt-dlp command (for testing).
func WithEnviron(fn func() []string) FetcherOption {
	return func(f *Fetcher) { f.environ = fn }
}
