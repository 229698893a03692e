package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/sampleclips/internal/audio"
	"github.com/alnah/sampleclips/internal/cli"
	"github.com/alnah/sampleclips/internal/download"
	"github.com/alnah/sampleclips/internal/ffmpeg"
	"github.com/alnah/sampleclips/internal/interrupt"
	"github.com/alnah/sampleclips/internal/sampler"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes. A failed yt-dlp run propagates its own status instead.
const (
	ExitOK        = 0
	ExitGeneral   = 1
	ExitUsage     = 2
	ExitSetup     = 3
	ExitInterrupt = interrupt.ExitInterrupt
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	// First Ctrl+C cancels the run, a second one within the window exits.
	handler, ctx := interrupt.NewHandler(context.Background())
	defer handler.Stop()

	env := cli.DefaultEnv()

	rootCmd := cli.SampleCmd(env)
	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", version, commit)
	// Silence Cobra's default error/usage printing; we handle it ourselves.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(cli.ConfigCmd(env))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		code := runExitCode(err, handler.WasInterrupted())
		if code != ExitInterrupt {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		handler.Stop()
		os.Exit(code)
	}
}

// runExitCode is exitCode, except that any failure after an interrupt exits
// with ExitInterrupt: a killed yt-dlp or ffmpeg may report its own status.
func runExitCode(err error, interrupted bool) int {
	if err != nil && interrupted {
		return ExitInterrupt
	}
	return exitCode(err)
}

// exitCode maps errors to process exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	// yt-dlp failures keep the downloader's status.
	var dlErr *download.ExitError
	if errors.As(err, &dlErr) && dlErr.Code > 0 {
		return dlErr.Code
	}

	// Setup errors: a required binary is missing.
	if errors.Is(err, ffmpeg.ErrNotFound) {
		return ExitSetup
	}

	// Input and pipeline errors the tool reports itself.
	if errors.Is(err, cli.ErrMissingURL) || errors.Is(err, cli.ErrInvalidURL) ||
		errors.Is(err, cli.ErrInvalidClipLength) || errors.Is(err, sampler.ErrInvalidCount) ||
		errors.Is(err, sampler.ErrInvalidClipLength) || errors.Is(err, audio.ErrProbeFailed) ||
		errors.Is(err, sampler.ErrSourceMissing) || errors.Is(err, sampler.ErrSourceTooShort) ||
		errors.Is(err, sampler.ErrLocked) {
		return ExitGeneral
	}

	// Usage errors (ExitUsage = 2): Cobra flag/arg parsing errors.
	// Cobra doesn't expose typed errors, so we check for known error message patterns.
	if isCobraUsageError(err) {
		return ExitUsage
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// These patterns are stable across Cobra versions (tested with v1.8+).
var cobraUsageErrorPatterns = []string{
	"required flag",          // Missing required flag
	"unknown flag",           // Flag doesn't exist
	"unknown shorthand",      // Short flag doesn't exist
	"unknown command",        // Subcommand doesn't exist
	"flag needs an argument", // Flag provided without value
	"invalid argument",       // Invalid flag value type
	"accepts ",               // Wrong number of arguments (e.g., "accepts at most 2 arg(s)")
	"requires at least",      // Too few arguments
	"requires at most",       // Too many arguments
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
