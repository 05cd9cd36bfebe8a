package fs

import (
	"github.com/aretw0/introspection"
)

// SourceState exposes internal state for observability.
type SourceState struct {
	Path          string   `json:"path"`
	SystemDir     string   `json:"system_dir"`
	Records       int      `json:"records"` // count seen by the last scan
	WatcherActive bool     `json:"watcher_active"`
	Ignore        []string `json:"ignore,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Source) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return SourceState{
		Path:          s.Path,
		SystemDir:     s.config.SystemDir,
		Records:       s.lastScanCount,
		WatcherActive: s.watcherActive,
		Ignore:        s.config.Ignore,
	}
}

// ComponentType implements introspection.Component.
func (s *Source) ComponentType() string {
	return "source"
}

var _ introspection.Introspectable = (*Source)(nil)
var _ introspection.Component = (*Source)(nil)

func (s *Source) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

func (s *Source) setLastScanCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastScanCount = n
}
