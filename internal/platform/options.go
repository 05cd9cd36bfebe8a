package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/sieve/pkg/core"
)

// options holds the internal configuration for the sieve service.
type options struct {
	source  core.Source
	logger  *slog.Logger
	schema  map[string]string
	adapter string
	config  map[string]interface{}
}

// Option defines a functional option for configuring sieve.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		source:  nil,
		logger:  nil,
		schema:  nil,
		adapter: "fs",
		config:  make(map[string]interface{}),
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSource allows injecting a custom record source (e.g. mock, remote).
// If provided, the default filesystem adapter will be skipped.
func WithSource(src core.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithAdapter allows specifying the record source adapter by name (e.g. "fs").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithSchema injects an already-resolved schema (property name to expected
// type name). It takes precedence over WithSchemaPath and discovery.
func WithSchema(types map[string]string) Option {
	return func(o *options) {
		o.schema = types
	}
}

// WithSchemaPath points at the schema document to load. Without it, the vault
// root is probed for types.yaml / types.yml / types.json.
func WithSchemaPath(path string) Option {
	return func(o *options) {
		o.config["schema_path"] = path
	}
}

// WithIgnore adds doublestar glob patterns; matching records are skipped by
// scans and watches. Patterns are matched against vault-relative paths.
func WithIgnore(globs ...string) Option {
	return func(o *options) {
		existing, _ := o.config["ignore"].([]string)
		o.config["ignore"] = append(existing, globs...)
	}
}

// WithDebounce sets the watch debounce window. Zero means default (250ms).
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.config["debounce"] = d
	}
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".sieve").
// Defaults to ".sieve" if not set (handled by adapter).
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithNoIndex disables the persistent result index. Checks still use the
// in-memory cache; nothing is written under the system dir.
func WithNoIndex(disabled bool) Option {
	return func(o *options) {
		o.config["no_index"] = disabled
	}
}

// WithEventBuffer allows specifying the size of the check event buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler registers a callback to handle errors occurring during
// the Watch loop. This allows applications to log or react to runtime watcher
// failures (e.g. permission denied) which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
