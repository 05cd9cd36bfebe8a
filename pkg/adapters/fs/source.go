package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/sieve/pkg/core"
)

const (
	// DefaultSystemDir is the vault-local directory for sieve's own files
	// (the persistent result index).
	DefaultSystemDir = ".sieve"

	// DefaultDebounce collapses editor write bursts into one event per file.
	DefaultDebounce = 250 * time.Millisecond
)

// Config holds the configuration for the filesystem source.
type Config struct {
	Path         string
	SystemDir    string        // e.g. ".sieve"
	Ignore       []string      // doublestar globs matched against vault-relative paths
	Logger       *slog.Logger
	Debounce     time.Duration // watch debounce window
	ErrorHandler func(error)   // invoked for async watcher failures
}

// Source implements core.Source over a directory of Markdown/YAML/JSON files.
// Record IDs are vault-relative slash paths; the modification marker is the
// file mtime in nanoseconds.
type Source struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastScanCount int
}

// NewSource creates a filesystem source rooted at config.Path. The vault must
// already exist: sieve only reads, it never scaffolds.
func NewSource(config Config) (*Source, error) {
	info, err := os.Stat(config.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("vault path does not exist: %s", config.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat vault path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path is not a directory: %s", config.Path)
	}

	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}

	return &Source{Path: config.Path, config: config}, nil
}

// Scan walks the vault and returns a record per supported file.
//
// Strategy:
//  1. Walk the tree, skipping .git, the system dir, hidden dirs and
//     user-configured ignore globs.
//  2. Keep .md/.yaml/.yml/.json files.
//  3. Parse properties; unparseable files are logged and skipped so one
//     broken document never blocks the vault.
func (s *Source) Scan(ctx context.Context) ([]core.Record, error) {
	var recs []core.Record

	err := filepath.WalkDir(s.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if path == s.Path {
				return nil
			}
			name := d.Name()
			if name == ".git" || name == s.config.SystemDir || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !supportedExt(filepath.Ext(d.Name())) {
			return nil
		}

		relPath, err := filepath.Rel(s.Path, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if s.ignored(relPath) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil // File vanished mid-walk; skip.
		}

		rec, err := s.readRecord(path, relPath, info.ModTime())
		if err != nil {
			if s.config.Logger != nil {
				s.config.Logger.Warn("skipping unparseable file", "path", relPath, "err", err)
			}
			return nil
		}

		recs = append(recs, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.setLastScanCount(len(recs))
	return recs, nil
}

// Get retrieves a single record by ID. A bare ID without extension resolves
// to .md; the returned record carries the resolved path as its ID.
func (s *Source) Get(ctx context.Context, id string) (core.Record, error) {
	filename := id
	if filepath.Ext(id) == "" {
		filename = id + ".md"
	}

	fullPath := filepath.Join(s.Path, filepath.FromSlash(filename))

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return core.Record{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
		}
		return core.Record{}, err
	}
	if info.IsDir() {
		return core.Record{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}

	rec, err := s.readRecord(fullPath, filepath.ToSlash(filename), info.ModTime())
	if err != nil {
		return core.Record{}, fmt.Errorf("failed to parse document %s: %w", id, err)
	}
	return rec, nil
}

// Watch emits an event per relevant filesystem change under the vault. The
// pattern is a doublestar glob matched against vault-relative paths; empty
// means everything. Events are debounced per file. The channel closes when
// ctx ends.
func (s *Source) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	events := make(chan core.Event, 16)

	w := newWatchWorker(s, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	// Close the channel only after the worker has fully wound down; the
	// worker drains its debouncer before Stop returns.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = w.Stop(stopCtx)
		close(events)
		return nil
	})

	return events, nil
}

func (s *Source) readRecord(fullPath, relPath string, mtime time.Time) (core.Record, error) {
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return core.Record{}, err
	}

	props, keys, err := parseDocument(data, filepath.Ext(fullPath))
	if err != nil {
		return core.Record{}, err
	}

	return core.Record{
		ID:       relPath,
		Modified: mtime.UnixNano(),
		Props:    props,
		Keys:     keys,
	}, nil
}

func supportedExt(ext string) bool {
	switch ext {
	case ".md", ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// ignored reports whether a vault-relative path matches a user ignore glob.
func (s *Source) ignored(relPath string) bool {
	for _, pattern := range s.config.Ignore {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
	}
	return false
}

// shouldIgnore filters watcher events: sieve's own temp files, anything
// under .git, the system dir or hidden dirs, unsupported extensions, ignore
// globs, and paths outside the requested pattern.
func (s *Source) shouldIgnore(event fsnotify.Event, pattern string) bool {
	if strings.HasPrefix(filepath.Base(event.Name), TempFilePrefix) {
		return true
	}

	rel, err := filepath.Rel(s.Path, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return true
	}
	rel = filepath.ToSlash(rel)

	parts := strings.Split(rel, "/")
	for i, part := range parts {
		if part == ".git" || part == s.config.SystemDir {
			return true
		}
		// Hidden directories are skipped; hidden files are fair game.
		if i < len(parts)-1 && strings.HasPrefix(part, ".") {
			return true
		}
	}

	if !supportedExt(filepath.Ext(rel)) {
		return true
	}
	if s.ignored(rel) {
		return true
	}

	if pattern != "" {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil || !ok {
			return true
		}
	}
	return false
}

// shouldIgnoreDir reports whether a directory sits outside the watch set.
func (s *Source) shouldIgnoreDir(path string) bool {
	rel, err := filepath.Rel(s.Path, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == ".git" || part == s.config.SystemDir || strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// mapEventType translates fsnotify operations into vault events. Chmod and
// other metadata-only operations map to the empty type and are dropped.
func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	}
	return ""
}

// resolveID converts an absolute event path into a record ID.
func (s *Source) resolveID(path string) (string, error) {
	rel, err := filepath.Rel(s.Path, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// recursiveAdd registers the vault root and every non-hidden subdirectory
// with the watcher.
func (s *Source) recursiveAdd(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(s.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != s.Path {
			name := d.Name()
			if name == ".git" || name == s.config.SystemDir || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
