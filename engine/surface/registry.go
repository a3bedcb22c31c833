package surface

import (
	"sync"

	"github.com/Carmen-Shannon/jelly-go/common"
)

// Registry owns every live surface entry. Lookups never fail: unknown IDs are
// created on first access with the registry's default grid resolution.
// Removal releases the entry's render resource exactly once before the entry
// is discarded. All methods are safe for concurrent use; under a
// single-threaded host the lock is uncontended.
type Registry struct {
	mu          sync.RWMutex
	entries     map[ID]*State
	defaultCols int32
	defaultRows int32
}

// NewRegistry creates an empty registry. Zero grid dimensions fall back to
// the package defaults (20x12).
//
// Parameters:
//   - defaultCols: grid columns for newly created entries (0 = DefaultGridCols)
//   - defaultRows: grid rows for newly created entries (0 = DefaultGridRows)
//
// Returns:
//   - *Registry: the new registry
func NewRegistry(defaultCols, defaultRows int32) *Registry {
	return &Registry{
		entries:     make(map[ID]*State),
		defaultCols: common.Coalesce(defaultCols, DefaultGridCols),
		defaultRows: common.Coalesce(defaultRows, DefaultGridRows),
	}
}

// GetOrCreate retrieves the state for id, inserting a fresh default entry if
// the surface has not been seen before. Never returns nil.
//
// Parameters:
//   - id: the surface handle
//
// Returns:
//   - *State: the live state entry for id
func (r *Registry) GetOrCreate(id ID) *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, exists := r.entries[id]; exists {
		return st
	}
	st := &State{
		GridCols: r.defaultCols,
		GridRows: r.defaultRows,
	}
	r.entries[id] = st
	return st
}

// Get retrieves the state for id without creating it.
//
// Parameters:
//   - id: the surface handle
//
// Returns:
//   - *State: the state entry, or nil if the surface has never been seen
func (r *Registry) Get(id ID) *State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[id]
}

// Remove releases the entry's render resource and discards the entry.
// Removing an unknown id is a no-op.
//
// Parameters:
//   - id: the surface handle
func (r *Registry) Remove(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, exists := r.entries[id]
	if !exists {
		return
	}
	st.ReleaseResource()
	delete(r.entries, id)
}

// Clear releases every entry's render resource and empties the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, st := range r.entries {
		st.ReleaseResource()
		delete(r.entries, id)
	}
}

// Len returns the number of live surface entries.
//
// Returns:
//   - int: the entry count
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// ForEach invokes fn for every live entry. The registry lock is held for the
// duration; fn must not call back into the registry.
//
// Parameters:
//   - fn: callback receiving each surface id and its state
func (r *Registry) ForEach(fn func(id ID, st *State)) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, st := range r.entries {
		fn(id, st)
	}
}
