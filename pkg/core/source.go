package core

import "context"

// Source supplies records from the underlying storage. The engine never reads
// storage directly: each record arrives as (identifier, modification marker,
// property map). Adhering to this interface keeps the core independent of the
// storage mechanism (filesystem, SQL, S3, etc).
type Source interface {
	// Scan returns every record in the vault, in stable scan order.
	Scan(ctx context.Context) ([]Record, error)

	// Get retrieves a single record by its ID.
	Get(ctx context.Context, id string) (Record, error)
}

// Watchable is implemented by sources that can report changes.
type Watchable interface {
	// Watch emits change events for records matching pattern until ctx ends.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// IndexStore persists cache entries between sessions.
type IndexStore interface {
	// Load returns the persisted entries. Missing or corrupt state degrades
	// to an empty map rather than an error.
	Load() (map[string]CacheEntry, error)

	// Save persists the entries.
	Save(entries map[string]CacheEntry) error
}
