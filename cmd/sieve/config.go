// Tool configuration for the sieve CLI.
//
// A vault may carry an optional sieve.yaml at its root:
//
//	schema: types.yaml
//	system_dir: .sieve
//	debounce: 250ms
//	ignore:
//	  - "templates/**"
//	  - "**/*.draft.md"
//
// Flags override config values; environment variables (SIEVE_SCHEMA, ...)
// override the file. A missing sieve.yaml is not an error.
package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/aretw0/sieve"
)

const (
	configFileName = "sieve"
	configFileType = "yaml"

	cfgKeySchema    = "schema"
	cfgKeyIgnore    = "ignore"
	cfgKeyDebounce  = "debounce"
	cfgKeySystemDir = "system_dir"
	cfgKeyEnvPrefix = "SIEVE"
)

// loadConfig reads sieve.yaml from the vault root using Viper.
func loadConfig(vaultDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(vaultDir)
	v.SetEnvPrefix(cfgKeyEnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No sieve.yaml: defaults and flags carry the day.
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// vaultOptions assembles service options from sieve.yaml, overridden by the
// given flag values. Zero flag values leave the config's choice standing.
func vaultOptions(vaultDir, schemaFlag string, debounceFlag time.Duration, noIndex bool) ([]sieve.Option, error) {
	v, err := loadConfig(vaultDir)
	if err != nil {
		return nil, err
	}

	opts := []sieve.Option{sieve.WithLogger(slog.Default())}

	schemaPath := v.GetString(cfgKeySchema)
	if schemaFlag != "" {
		schemaPath = schemaFlag
	}
	if schemaPath != "" {
		// Config-relative paths resolve against the vault root.
		if !filepath.IsAbs(schemaPath) {
			schemaPath = filepath.Join(vaultDir, schemaPath)
		}
		opts = append(opts, sieve.WithSchemaPath(schemaPath))
	}

	if ignore := v.GetStringSlice(cfgKeyIgnore); len(ignore) > 0 {
		opts = append(opts, sieve.WithIgnore(ignore...))
	}
	if systemDir := v.GetString(cfgKeySystemDir); systemDir != "" {
		opts = append(opts, sieve.WithSystemDir(systemDir))
	}

	debounce := v.GetDuration(cfgKeyDebounce)
	if debounceFlag > 0 {
		debounce = debounceFlag
	}
	if debounce > 0 {
		opts = append(opts, sieve.WithDebounce(debounce))
	}

	if noIndex {
		opts = append(opts, sieve.WithNoIndex(true))
	}

	return opts, nil
}
