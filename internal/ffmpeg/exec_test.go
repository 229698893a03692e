package ffmpeg

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Executor.RunOutput - output capture
// ---------------------------------------------------------------------------

func TestExecutor_RunOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mockOutput string
		mockErr    error
		wantOutput string
		wantErr    bool
	}{
		{
			name:       "returns output",
			mockOutput: "ffmpeg version 6.1.1",
			wantOutput: "ffmpeg version 6.1.1",
		},
		{
			name:       "returns empty output",
			mockOutput: "",
			wantOutput: "",
		},
		{
			name:    "returns error",
			mockErr: errors.New("command failed"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			executor := NewExecutor(
				WithRunOutput(func(ctx context.Context, path string, args []string) (string, error) {
					return tt.mockOutput, tt.mockErr
				}),
			)

			got, err := executor.RunOutput(context.Background(), "/usr/bin/ffmpeg", []string{"-version"})

			if tt.wantErr {
				if err == nil {
					t.Errorf("RunOutput() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("RunOutput() unexpected error: %v", err)
			}
			if got != tt.wantOutput {
				t.Errorf("RunOutput() = %q, want %q", got, tt.wantOutput)
			}
		})
	}
}

func TestDefaultRunOutput_RealCommand(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	output, err := defaultRunOutput(context.Background(), "sh", []string{"-c", "echo out; echo err >&2"})
	if err != nil {
		t.Fatalf("defaultRunOutput() unexpected error: %v", err)
	}
	if !strings.Contains(output, "out") || !strings.Contains(output, "err") {
		t.Errorf("defaultRunOutput() = %q, want both stdout and stderr", output)
	}
}

func TestDefaultRunOutput_NonexistentCommand(t *testing.T) {
	t.Parallel()

	output, err := defaultRunOutput(context.Background(), "/nonexistent/command", nil)
	if err == nil {
		t.Errorf("defaultRunOutput() error = nil, want error")
	}
	if output != "" {
		t.Errorf("defaultRunOutput() = %q, want empty string", output)
	}
}

// ---------------------------------------------------------------------------
// VersionChecker - FFmpeg version parsing
// ---------------------------------------------------------------------------

func TestVersionChecker_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		output        string
		wantChecked   bool
		wantWarning   string
		expectWarning bool
	}{
		{
			name:        "version 6 - no warning",
			output:      "ffmpeg version 6.1.1 Copyright (c) 2000-2023\nbuilt with gcc",
			wantChecked: true,
		},
		{
			name:        "version 4 - no warning (minimum)",
			output:      "ffmpeg version 4.4.1 Copyright (c) 2000-2021",
			wantChecked: true,
		},
		{
			name:          "version 3 - warning expected",
			output:        "ffmpeg version 3.4.8 Copyright (c) 2000-2020",
			wantChecked:   true,
			expectWarning: true,
			wantWarning:   "Warning: ffmpeg version 3 detected, version 4+ recommended",
		},
		{
			name:        "version n6.1.1 format",
			output:      "ffmpeg version n6.1.1 Copyright (c) 2000-2023",
			wantChecked: true,
		},
		{
			name:   "unparseable version",
			output: "something unexpected",
		},
		{
			name:   "empty output",
			output: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stderrBuf strings.Builder
			executor := NewExecutor(
				WithRunOutput(func(ctx context.Context, path string, args []string) (string, error) {
					return tt.output, nil
				}),
			)
			checker := NewVersionChecker(
				WithVersionExecutor(executor),
				WithVersionStderr(&stderrBuf),
			)

			got := checker.Check(context.Background(), "/usr/bin/ffmpeg")
			if got != tt.wantChecked {
				t.Errorf("Check() = %v, want %v", got, tt.wantChecked)
			}

			warning := stderrBuf.String()
			if tt.expectWarning && !strings.Contains(warning, tt.wantWarning) {
				t.Errorf("Check() warning = %q, want containing %q", warning, tt.wantWarning)
			}
			if !tt.expectWarning && warning != "" {
				t.Errorf("Check() unexpected warning: %q", warning)
			}
		})
	}
}
