package cli

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/sampleclips/internal/config"
	"github.com/alnah/sampleclips/internal/sampler"
)

// usageLine is printed with ErrMissingURL.
const usageLine = "Usage: sampleclips <url> [clip-seconds]"

// sampleOptions holds the parsed flags of the root command.
type sampleOptions struct {
	outputDir string
	count     int
	seed      uint64
	list      bool
	noTags    bool
}

// SampleCmd creates the root command: download a URL and cut random clips from it.
// The env parameter provides injectable dependencies for testing.
func SampleCmd(env *Env) *cobra.Command {
	var opts sampleOptions

	cmd := &cobra.Command{
		Use:   "sampleclips <url> [clip-seconds]",
		Short: "Cut random fixed-length clips from online audio",
		Long: `Download the audio track of a URL with yt-dlp, then cut clips of
clip-seconds (default 10) at random offsets with ffmpeg.

Clips are written as clip_001.mp3, clip_002.mp3, ... into the output directory,
overwriting clips from earlier runs. Each clip is tagged with its source URL and
offset unless --no-tags is given. The downloaded source is deleted afterwards.
A hidden .sampleclips.lock file stays in the output directory to keep two runs
from sharing it.

Binaries are looked up in FFMPEG_PATH, FFPROBE_PATH and YTDLP_PATH, then PATH.
The default output directory comes from "sampleclips config set output-dir",
then SAMPLECLIPS_OUTPUT_DIR.`,
		Example: `  sampleclips https://www.youtube.com/watch?v=dQw4w9WgXcQ
  sampleclips https://www.youtube.com/watch?v=dQw4w9WgXcQ 5
  sampleclips https://soundcloud.com/artist/track -o ~/samples -n 12
  sampleclips https://www.youtube.com/watch?v=dQw4w9WgXcQ --seed 42  # Reproducible offsets
  sampleclips https://www.youtube.com/watch?v=dQw4w9WgXcQ --list     # Print offsets as a table`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(cmd, env, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "Output directory (default: config, then "+sampler.DefaultOutputDir+")")
	cmd.Flags().IntVarP(&opts.count, "count", "n", sampler.DefaultCount, "Number of clips to generate")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed for clip offsets (0 = random)")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "Print a table of the generated clips to stdout")
	cmd.Flags().BoolVar(&opts.noTags, "no-tags", false, "Do not write ID3 tags (source URL, offset) into clips")

	return cmd
}

// runSample validates arguments, resolves settings and runs the sampler.
// Validation order: url -> clip length -> count -> config -> binaries
func runSample(cmd *cobra.Command, env *Env, args []string, opts sampleOptions) error {
	ctx := cmd.Context()

	// === VALIDATION (fail-fast) ===

	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("%w\n%s", ErrMissingURL, usageLine)
	}
	source := strings.TrimSpace(args[0])
	if err := validateURL(source); err != nil {
		return err
	}

	var clipArg string
	if len(args) > 1 {
		clipArg = args[1]
	}
	clipLength, err := parseClipLength(clipArg)
	if err != nil {
		return err
	}

	countChanged := cmd.Flags().Changed("count")
	if countChanged && opts.count < 1 {
		return fmt.Errorf("%w: %d", sampler.ErrInvalidCount, opts.count)
	}

	// Config supplies defaults for anything not given on the command line.
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}

	runOpts := sampler.Options{
		OutputDir:  resolveOutputDir(opts.outputDir, cfg.OutputDir),
		ClipLength: clipLength,
		Count:      opts.count,
	}
	if clipArg == "" && cfg.ClipLength > 0 {
		runOpts.ClipLength = cfg.ClipLength
	}
	if !countChanged && cfg.Count > 0 {
		runOpts.Count = cfg.Count
	}

	// === SETUP ===

	paths, err := env.ToolResolver.Resolve()
	if err != nil {
		return err
	}
	env.ToolResolver.CheckVersion(ctx, paths.FFmpeg)

	reporter := newProgressReporter(env)
	defer reporter.Close()

	fetcher := env.DownloaderFactory.NewFetcher(paths.Downloader, paths.FFmpeg, reporter.progressFunc())
	prober, err := env.AudioFactory.NewProber(paths.FFprobe)
	if err != nil {
		return err
	}
	extractor, err := env.AudioFactory.NewExtractor(paths.FFmpeg)
	if err != nil {
		return err
	}

	samplerOpts := []sampler.Option{sampler.WithReporter(reporter)}
	if opts.seed != 0 {
		samplerOpts = append(samplerOpts, sampler.WithSeed(opts.seed))
	}
	if !opts.noTags {
		samplerOpts = append(samplerOpts, sampler.WithTagger(env.AudioFactory.NewTagger()))
	}

	// === RUN ===

	res, err := sampler.New(fetcher, prober, extractor, samplerOpts...).Run(ctx, source, runOpts)
	if err != nil {
		return err
	}

	if opts.list {
		reporter.Close()
		fmt.Fprintln(env.Stdout, clipTable(res.Clips, reporter.failedClips()))
	}
	return nil
}

// validateURL accepts absolute http and https URLs.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q (expected an http or https URL)", ErrInvalidURL, raw)
	}
	return nil
}

// parseClipLength parses the optional clip-seconds argument.
// An empty argument returns the default length.
func parseClipLength(arg string) (float64, error) {
	if arg == "" {
		return sampler.DefaultClipLength, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("%w: %q (expected a positive number of seconds)", ErrInvalidClipLength, arg)
	}
	return v, nil
}

// resolveOutputDir applies flag > config/env > default and expands ~.
func resolveOutputDir(flag, configured string) string {
	dir := flag
	if dir == "" {
		dir = configured
	}
	if dir == "" {
		dir = sampler.DefaultOutputDir
	}
	return config.ExpandPath(dir)
}
