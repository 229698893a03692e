package audio

// Export internal functions for testing.
// This file is only compiled during tests (suffix _test.go).

// ProbeArgs exports probeArgs for testing.
var ProbeArgs = probeArgs

// ParseProbeDuration exports parseProbeDuration for testing.
var ParseProbeDuration = parseProbeDuration

// ExtractArgs exports extractArgs for testing.
var ExtractArgs = extractArgs

// FormatLength exports formatLength for testing.
var FormatLength = formatLength

// ClipEncodingArgs exports clipEncodingArgs for testing.
var ClipEncodingArgs = clipEncodingArgs

// CommandRunner exports commandRunner interface for testing.
type CommandRunner = commandRunner

// TrackFrame exports trackFrame for testing.
var TrackFrame = trackFrame
