package sieve

import _ "embed"

// Version is the library version, embedded from the VERSION file so the CLI
// and release tooling read the same source of truth.
//
//go:embed VERSION
var Version string
