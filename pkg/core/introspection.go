package core

import (
	"github.com/aretw0/introspection"
)

// CheckerState exposes engine internals for observability.
type CheckerState struct {
	SchemaSize  int    `json:"schema_size"`
	CacheSize   int    `json:"cache_size"`
	CacheHits   uint64 `json:"cache_hits"`
	CacheMisses uint64 `json:"cache_misses"`
}

// State implements introspection.Introspectable.
func (c *Checker) State() any {
	c.mu.RLock()
	schemaSize := len(c.schema)
	c.mu.RUnlock()

	hits, misses := c.cache.Stats()
	return CheckerState{
		SchemaSize:  schemaSize,
		CacheSize:   c.cache.Len(),
		CacheHits:   hits,
		CacheMisses: misses,
	}
}

// ComponentType implements introspection.Component.
func (c *Checker) ComponentType() string {
	return "checker"
}

// ServiceState exposes service internals for observability.
type ServiceState struct {
	SourceType string       `json:"source_type"`
	Indexed    bool         `json:"indexed"`
	Checker    CheckerState `json:"checker"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	srcType := "unknown"
	if s.src != nil {
		srcType = "source"
		if comp, ok := s.src.(introspection.Component); ok {
			srcType = comp.ComponentType()
		}
	}

	return ServiceState{
		SourceType: srcType,
		Indexed:    s.store != nil,
		Checker:    s.checker.State().(CheckerState),
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Checker)(nil)
var _ introspection.Component = (*Checker)(nil)
var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
