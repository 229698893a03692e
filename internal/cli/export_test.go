package cli

// Export internal functions for testing.

// RunSample exports runSample for testing.
var RunSample = runSample

// RunConfigSet exports runConfigSet for testing.
var RunConfigSet = runConfigSet

// RunConfigGet exports runConfigGet for testing.
var RunConfigGet = runConfigGet

// RunConfigList exports runConfigList for testing.
var RunConfigList = runConfigList

// IsValidConfigKey exports isValidConfigKey for testing.
var IsValidConfigKey = isValidConfigKey

// ValidateURL exports validateURL for testing.
var ValidateURL = validateURL

// ParseClipLength exports parseClipLength for testing.
var ParseClipLength = parseClipLength

// ResolveOutputDir exports resolveOutputDir for testing.
var ResolveOutputDir = resolveOutputDir

// NewProgressReporter exports newProgressReporter for testing.
var NewProgressReporter = newProgressReporter
