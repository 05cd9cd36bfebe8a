package sieve

import (
	"log/slog"
	"time"

	"github.com/aretw0/sieve/internal/platform"
	"github.com/aretw0/sieve/pkg/core"
	"github.com/aretw0/sieve/pkg/schema"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Record is a public alias for the core record entity.
type Record = core.Record

// Properties is a public alias for a record's raw property map.
type Properties = core.Properties

// Finding is a public alias for a single type mismatch.
type Finding = core.Finding

// Report is a public alias for one record's ordered findings.
type Report = core.Report

// RecordReport is a public alias for a record paired with its findings.
type RecordReport = core.RecordReport

// CheckEvent is a public alias for the re-check notifications emitted by Watch.
type CheckEvent = core.CheckEvent

// Schema is a public alias for the property type declarations.
type Schema = schema.Schema

// --- Configuration ---

// Option defines a functional option for configuring sieve.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSource allows injecting a custom record source.
func WithSource(src core.Source) Option {
	return platform.WithSource(src)
}

// WithAdapter allows specifying the record source adapter by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSchema injects an already-resolved schema, bypassing file loading.
func WithSchema(types map[string]string) Option {
	return platform.WithSchema(types)
}

// WithSchemaPath points at the schema document to load.
func WithSchemaPath(path string) Option {
	return platform.WithSchemaPath(path)
}

// WithIgnore adds glob patterns for records that scans and watches skip.
func WithIgnore(globs ...string) Option {
	return platform.WithIgnore(globs...)
}

// WithDebounce sets the watch debounce window.
func WithDebounce(d time.Duration) Option {
	return platform.WithDebounce(d)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".sieve").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithNoIndex disables the persistent result index.
func WithNoIndex(disabled bool) Option {
	return platform.WithNoIndex(disabled)
}

// WithEventBuffer allows specifying the size of the check event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a checking Service for the vault at path.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init resolves a record source explicitly, without assembling a Service.
func Init(path string, opts ...Option) (core.Source, error) {
	return platform.Init(path, opts...)
}

// NewChecker creates a bare checking engine: schema in, findings out. Use it
// when the host owns record loading and only wants the type rules.
func NewChecker(types map[string]string) *core.Checker {
	return core.NewChecker(types, core.NewCache())
}

// --- Engine primitives ---

// Infer classifies a raw property value into the semantic type name it most
// resembles.
func Infer(v any) string {
	return core.Infer(v)
}

// Validate reports whether a raw property value conforms to the expected type
// name.
func Validate(v any, expected string) bool {
	return core.Validate(v, expected)
}

// --- Schema helpers ---

// LoadSchema reads a schema document from path.
func LoadSchema(path string) (Schema, error) {
	return schema.Load(path)
}

// DiscoverSchema probes dir for a schema document (types.yaml, types.yml,
// types.json, in that order).
func DiscoverSchema(dir string) (string, bool) {
	return schema.Discover(dir)
}

// --- Utils ---

// FindVaultRoot recursively looks upwards for a vault root indicator.
func FindVaultRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
