package sampler

// Exports for black-box tests.

var Normalize = normalize

var IsLeftover = isLeftover

var WithFileSystem = withFileSystem
