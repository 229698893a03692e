package cli

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alnah/sampleclips/internal/config"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testMocks - convenience struct for grouping all mocks
// ---------------------------------------------------------------------------

type testMocks struct {
	resolver     *mockToolResolver
	configLoader *mockConfigLoader
	downloader   *mockDownloaderFactory
	audio        *mockAudioFactory
}

func newTestMocks() *testMocks {
	return &testMocks{
		resolver:     &mockToolResolver{},
		configLoader: &mockConfigLoader{},
		downloader:   &mockDownloaderFactory{fetcher: &mockFetcher{}},
		audio: &mockAudioFactory{
			prober:    &mockProber{duration: 120},
			extractor: &mockExtractor{},
			tagger:    &mockTagger{},
		},
	}
}

// ---------------------------------------------------------------------------
// testEnv - creates a fully mocked Env for testing
// ---------------------------------------------------------------------------

// testEnvOptions configures a test environment.
type testEnvOptions struct {
	stdout   io.Writer
	stderr   io.Writer
	getenv   func(string) string
	terminal bool
	mocks    *testMocks
}

// testEnvOption configures testEnv.
type testEnvOption func(*testEnvOptions)

func withTestStderr(w io.Writer) testEnvOption {
	return func(o *testEnvOptions) { o.stderr = w }
}

func withTestStdout(w io.Writer) testEnvOption {
	return func(o *testEnvOptions) { o.stdout = w }
}

func withTestGetenv(fn func(string) string) testEnvOption {
	return func(o *testEnvOptions) { o.getenv = fn }
}

func withTerminal() testEnvOption {
	return func(o *testEnvOptions) { o.terminal = true }
}

func withMocks(m *testMocks) testEnvOption {
	return func(o *testEnvOptions) { o.mocks = m }
}

// testEnv creates a test Env with all dependencies mocked.
// Returns the Env and the mocks for assertions.
func testEnv(opts ...testEnvOption) (*Env, *testMocks) {
	options := &testEnvOptions{
		stdout: &syncBuffer{},
		stderr: &syncBuffer{},
		getenv: staticEnv(nil),
		mocks:  newTestMocks(),
	}

	for _, opt := range opts {
		opt(options)
	}

	terminal := options.terminal
	env := &Env{
		Stdout:            options.stdout,
		Stderr:            options.stderr,
		Getenv:            options.getenv,
		Now:               fixedTime(time.Date(2026, 1, 26, 14, 30, 52, 0, time.UTC)),
		IsTerminal:        func(io.Writer) bool { return terminal },
		ToolResolver:      options.mocks.resolver,
		ConfigLoader:      options.mocks.configLoader,
		DownloaderFactory: options.mocks.downloader,
		AudioFactory:      options.mocks.audio,
	}

	return env, options.mocks
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// fixedTime returns a function that always returns the given time.
func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// configWith returns a ConfigLoader that returns cfg.
func configWith(cfg config.Config) *mockConfigLoader {
	return &mockConfigLoader{
		LoadFunc: func() (config.Config, error) {
			return cfg, nil
		},
	}
}

// executeSample runs the root command with args, the way main does.
func executeSample(t *testing.T, env *Env, args ...string) error {
	t.Helper()

	cmd := SampleCmd(env)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}
