package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

const defaultEventBuffer = 100

// Service orchestrates vault-wide validation over a Source.
type Service struct {
	mu          sync.RWMutex
	src         Source
	checker     *Checker
	store       IndexStore
	logger      *slog.Logger
	eventBuffer int
	restored    bool
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger. A nil logger keeps the service silent.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = logger }
}

// WithIndexStore attaches a persistent index: cached findings are restored
// before the first pass and saved after passes that changed them.
func WithIndexStore(store IndexStore) ServiceOption {
	return func(s *Service) { s.store = store }
}

// WithEventBuffer sets the Watch channel buffer. Zero means default (100).
func WithEventBuffer(size int) ServiceOption {
	return func(s *Service) {
		if size > 0 {
			s.eventBuffer = size
		}
	}
}

// NewService creates a Service checking records from src. A nil checker gets
// a fresh one with an empty schema.
func NewService(src Source, checker *Checker, opts ...ServiceOption) *Service {
	if checker == nil {
		checker = NewChecker(nil, nil)
	}
	s := &Service{
		src:         src,
		checker:     checker,
		eventBuffer: defaultEventBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checker exposes the underlying checker handle.
func (s *Service) Checker() *Checker {
	return s.checker
}

// CheckVault scans the source and validates every record. It returns, in scan
// order, reports for records with at least one finding. The cache is pruned
// to the scanned set and persisted when an index store is attached. With
// force set, cached results are bypassed and everything is recomputed.
func (s *Service) CheckVault(ctx context.Context, force bool) ([]RecordReport, error) {
	s.restoreIndex()

	recs, err := s.src.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	reports := s.checker.CheckAll(recs, force)

	seen := make(map[string]bool, len(recs))
	for _, rec := range recs {
		seen[rec.ID] = true
	}
	s.checker.PruneCache(seen)

	s.persistIndex()
	return reports, nil
}

// CheckDocument validates a single record by ID.
func (s *Service) CheckDocument(ctx context.Context, id string, force bool) (Report, error) {
	if id == "" {
		return nil, fmt.Errorf("record ID cannot be empty")
	}
	s.restoreIndex()

	rec, err := s.src.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.checker.CheckRecord(rec, force), nil
}

// SetSchema swaps the schema. Cached findings are dropped.
func (s *Service) SetSchema(schema map[string]string) {
	s.checker.SetSchema(schema)
}

// ClearCache drops all cached findings.
func (s *Service) ClearCache() {
	s.checker.ClearCache()
}

// Watch re-checks records as the source reports changes. Deleted records drop
// their cache entry and emit an empty report. The channel closes when ctx
// ends or the source stops watching.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan CheckEvent, error) {
	w, ok := s.src.(Watchable)
	if !ok {
		return nil, ErrNotWatchable
	}
	s.restoreIndex()

	events, err := w.Watch(ctx, pattern)
	if err != nil {
		return nil, err
	}

	out := make(chan CheckEvent, s.eventBuffer)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-events:
				if !ok {
					return
				}
				ce, ok := s.handleEvent(ctx, e)
				if !ok {
					continue
				}
				select {
				case out <- ce:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (s *Service) handleEvent(ctx context.Context, e Event) (CheckEvent, bool) {
	switch e.Type {
	case EventDelete:
		s.checker.Cache().Delete(e.ID)
		return CheckEvent{ID: e.ID, At: e.Timestamp}, true

	case EventCreate, EventModify:
		rec, err := s.src.Get(ctx, e.ID)
		if err != nil {
			// The file may already be gone again; treat it like a delete.
			s.checker.Cache().Delete(e.ID)
			if s.logger != nil {
				s.logger.Debug("re-check skipped", "id", e.ID, "err", err)
			}
			return CheckEvent{ID: e.ID, At: e.Timestamp}, true
		}
		findings := s.checker.CheckRecord(rec, false)
		return CheckEvent{ID: e.ID, Findings: findings, At: e.Timestamp}, true
	}
	return CheckEvent{}, false
}

// Flush persists the cache if it changed since the last persist. It is a
// no-op without an index store.
func (s *Service) Flush() error {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()

	if store == nil || !s.checker.Cache().Dirty() {
		return nil
	}
	if err := store.Save(s.checker.Cache().Snapshot()); err != nil {
		return fmt.Errorf("failed to persist index: %w", err)
	}
	s.checker.Cache().MarkClean()
	return nil
}

// restoreIndex loads persisted findings into the cache, once per service.
// Load failures start fresh; a missing index must never block a check.
func (s *Service) restoreIndex() {
	s.mu.Lock()
	if s.restored || s.store == nil {
		s.mu.Unlock()
		return
	}
	s.restored = true
	store := s.store
	s.mu.Unlock()

	entries, err := store.Load()
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("index load failed, starting fresh", "err", err)
		}
		return
	}
	if len(entries) > 0 {
		s.checker.Cache().Restore(entries)
	}
}

func (s *Service) persistIndex() {
	if err := s.Flush(); err != nil {
		if s.logger != nil {
			s.logger.Warn("index save failed", "err", err)
		}
	}
}
