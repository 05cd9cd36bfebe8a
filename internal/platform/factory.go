package platform

import (
	"fmt"
	"time"

	"github.com/aretw0/sieve/pkg/adapters/fs"
	"github.com/aretw0/sieve/pkg/core"
	"github.com/aretw0/sieve/pkg/schema"
)

// Init resolves the record source for the vault at uri based on the provided
// configuration. The 'uri' argument is adapter-specific (a directory path for
// 'fs', a connection string for others).
func Init(uri string, opts ...Option) (core.Source, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initSource(uri, o)
}

func initSource(uri string, o *options) (core.Source, error) {
	// 1. Check for injected source
	if o.source != nil {
		return o.source, nil
	}

	// 2. Initialize based on Adapter
	switch o.adapter {
	case "fs":
		return initFS(uri, o)
	default:
		return nil, fmt.Errorf("%w: unknown adapter %q", core.ErrSourceRequired, o.adapter)
	}
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(path string, o *options) (core.Source, error) {
	ignore, _ := o.config["ignore"].([]string)
	systemDir, _ := o.config["system_dir"].(string)
	debounce, _ := o.config["debounce"].(time.Duration)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	return fs.NewSource(fs.Config{
		Path:         path,
		SystemDir:    systemDir,
		Ignore:       ignore,
		Logger:       o.logger,
		Debounce:     debounce,
		ErrorHandler: errorHandler,
	})
}

// New assembles a checking Service for the vault at uri: source, schema,
// checker and (for filesystem vaults) the persistent result index.
//
//	svc, err := sieve.New("./path/to/vault", sieve.WithSchemaPath("types.yaml"))
func New(uri string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	src, err := initSource(uri, o)
	if err != nil {
		return nil, err
	}

	checker := core.NewChecker(resolveSchema(uri, o), core.NewCache())

	svcOpts := []core.ServiceOption{core.WithLogger(o.logger)}
	if store := resolveIndex(uri, o); store != nil {
		svcOpts = append(svcOpts, core.WithIndexStore(store))
	}
	if size, ok := o.config["event_buffer"].(int); ok {
		svcOpts = append(svcOpts, core.WithEventBuffer(size))
	}

	return core.NewService(src, checker, svcOpts...), nil
}

// resolveSchema picks the schema in precedence order: injected map, explicit
// path, then discovery at the vault root. Anything unloadable degrades to an
// empty schema so a broken document never blocks checking.
func resolveSchema(uri string, o *options) map[string]string {
	if o.schema != nil {
		return o.schema
	}

	path, _ := o.config["schema_path"].(string)
	if path == "" && o.source == nil && o.adapter == "fs" {
		if found, ok := schema.Discover(uri); ok {
			path = found
		}
	}
	if path == "" {
		return nil
	}
	return schema.LoadOrEmpty(path, o.logger).Types()
}

// resolveIndex wires the persistent index for filesystem vaults. Injected
// sources have no natural home for an index file, so they run memory-only.
func resolveIndex(uri string, o *options) core.IndexStore {
	if noIndex, _ := o.config["no_index"].(bool); noIndex {
		return nil
	}
	if o.source != nil || o.adapter != "fs" {
		return nil
	}
	systemDir, _ := o.config["system_dir"].(string)
	return fs.NewIndex(uri, systemDir)
}
