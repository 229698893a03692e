package cli

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/alnah/sampleclips/internal/config"
	"github.com/alnah/sampleclips/internal/download"
	"github.com/alnah/sampleclips/internal/ffmpeg"
	"github.com/alnah/sampleclips/internal/sampler"
)

// ---------------------------------------------------------------------------
// Mock ToolResolver
// ---------------------------------------------------------------------------

type mockToolResolver struct {
	ResolveFunc func() (ffmpeg.Paths, error)

	mu                sync.Mutex
	resolveCalls      int
	checkVersionCalls []string
}

func (m *mockToolResolver) Resolve() (ffmpeg.Paths, error) {
	m.mu.Lock()
	m.resolveCalls++
	m.mu.Unlock()

	if m.ResolveFunc != nil {
		return m.ResolveFunc()
	}
	return ffmpeg.Paths{
		FFmpeg:     "/usr/bin/ffmpeg",
		FFprobe:    "/usr/bin/ffprobe",
		Downloader: "/usr/bin/yt-dlp",
	}, nil
}

func (m *mockToolResolver) CheckVersion(_ context.Context, ffmpegPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkVersionCalls = append(m.checkVersionCalls, ffmpegPath)
}

func (m *mockToolResolver) ResolveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolveCalls
}

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock DownloaderFactory + Fetcher
// ---------------------------------------------------------------------------

type mockDownloaderFactory struct {
	fetcher *mockFetcher

	mu          sync.Mutex
	executables []string
	ffmpegPaths []string
	progress    []download.ProgressFunc
}

func (m *mockDownloaderFactory) NewFetcher(ytdlpPath, ffmpegPath string, progress download.ProgressFunc) sampler.Fetcher {
	m.mu.Lock()
	m.executables = append(m.executables, ytdlpPath)
	m.ffmpegPaths = append(m.ffmpegPaths, ffmpegPath)
	m.progress = append(m.progress, progress)
	m.mu.Unlock()

	if m.fetcher == nil {
		m.fetcher = &mockFetcher{}
	}
	return m.fetcher
}

type fetchCall struct {
	URL      string
	Template string
}

// mockFetcher writes a placeholder source where yt-dlp would, unless FetchFunc is set.
type mockFetcher struct {
	FetchFunc func(ctx context.Context, url, outputTemplate string) error

	mu    sync.Mutex
	calls []fetchCall
}

func (m *mockFetcher) Fetch(ctx context.Context, url, outputTemplate string) error {
	m.mu.Lock()
	m.calls = append(m.calls, fetchCall{URL: url, Template: outputTemplate})
	m.mu.Unlock()

	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, url, outputTemplate)
	}
	source := strings.Replace(outputTemplate, "%(ext)s", download.AudioFormat, 1)
	return os.WriteFile(source, []byte("fake audio"), 0644)
}

func (m *mockFetcher) Calls() []fetchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]fetchCall(nil), m.calls...)
}

// ---------------------------------------------------------------------------
// Mock AudioFactory + Prober + Extractor + Tagger
// ---------------------------------------------------------------------------

type mockAudioFactory struct {
	prober    *mockProber
	extractor *mockExtractor
	tagger    *mockTagger

	NewProberErr    error
	NewExtractorErr error
}

func (m *mockAudioFactory) NewProber(string) (sampler.Prober, error) {
	if m.NewProberErr != nil {
		return nil, m.NewProberErr
	}
	if m.prober == nil {
		m.prober = &mockProber{duration: 120}
	}
	return m.prober, nil
}

func (m *mockAudioFactory) NewExtractor(string) (sampler.Extractor, error) {
	if m.NewExtractorErr != nil {
		return nil, m.NewExtractorErr
	}
	if m.extractor == nil {
		m.extractor = &mockExtractor{}
	}
	return m.extractor, nil
}

func (m *mockAudioFactory) NewTagger() sampler.Tagger {
	if m.tagger == nil {
		m.tagger = &mockTagger{}
	}
	return m.tagger
}

type mockTagger struct {
	err error

	mu    sync.Mutex
	metas []sampler.ClipMeta
}

func (m *mockTagger) Tag(_ string, meta sampler.ClipMeta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metas = append(m.metas, meta)
	return m.err
}

func (m *mockTagger) Metas() []sampler.ClipMeta {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sampler.ClipMeta(nil), m.metas...)
}

type mockProber struct {
	duration float64
	err      error
}

func (m *mockProber) Duration(context.Context, string) (float64, error) {
	return m.duration, m.err
}

type extractCall struct {
	Src, Dst      string
	Start, Length float64
}

type mockExtractor struct {
	ExtractFunc func(ctx context.Context, src, dst string, start, length float64) error

	mu    sync.Mutex
	calls []extractCall
}

func (m *mockExtractor) Extract(ctx context.Context, src, dst string, start, length float64) error {
	m.mu.Lock()
	m.calls = append(m.calls, extractCall{Src: src, Dst: dst, Start: start, Length: length})
	m.mu.Unlock()

	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, src, dst, start, length)
	}
	return nil
}

func (m *mockExtractor) Calls() []extractCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]extractCall(nil), m.calls...)
}

// Compile-time interface verification.
var (
	_ ToolResolver      = (*mockToolResolver)(nil)
	_ ConfigLoader      = (*mockConfigLoader)(nil)
	_ DownloaderFactory = (*mockDownloaderFactory)(nil)
	_ AudioFactory      = (*mockAudioFactory)(nil)
	_ sampler.Fetcher   = (*mockFetcher)(nil)
	_ sampler.Prober    = (*mockProber)(nil)
	_ sampler.Extractor = (*mockExtractor)(nil)
	_ sampler.Tagger    = (*mockTagger)(nil)
)
