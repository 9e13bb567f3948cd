package stream

import (
	"sync"

	"github.com/Faultbox/terrastream/internal/terrain/grid"
	"github.com/Faultbox/terrastream/internal/terrain/mesh"
)

// Renderable is the host-side handle for one region's geometry. SetVisible
// is only invoked on actual transitions, so hosts can hang one-shot
// effects (fade-in) off it directly.
type Renderable interface {
	SetVisible(visible bool)
	Release()
}

// ChunkRecord tracks one resident region: its current LOD step, its
// visibility state, the CPU geometry kept for in-place rebuilds, and the
// owning renderable handle.
type ChunkRecord struct {
	Step       int
	State      State
	Geometry   *mesh.Geometry
	Renderable Renderable
}

// Registry maps resident regions to their chunk records. Mutation is
// serialized with a mutex; iteration goes through a coordinate snapshot
// so sweeps never hold the lock across per-region work.
type Registry struct {
	mu     sync.Mutex
	chunks map[grid.RegionCoord]*ChunkRecord
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{chunks: make(map[grid.RegionCoord]*ChunkRecord)}
}

// Register installs the record for a region, replacing any previous one.
func (r *Registry) Register(c grid.RegionCoord, rec *ChunkRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chunks[c] = rec
}

// Unregister removes a region and returns its renderable for release, or
// nil if the region was not resident.
func (r *Registry) Unregister(c grid.RegionCoord) Renderable {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.chunks[c]
	if !ok {
		return nil
	}
	delete(r.chunks, c)
	return rec.Renderable
}

// Has reports whether the region currently owns a live renderable.
func (r *Registry) Has(c grid.RegionCoord) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.chunks[c]
	return ok
}

// Record returns a copy of the region's record.
func (r *Registry) Record(c grid.RegionCoord) (ChunkRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.chunks[c]
	if !ok {
		return ChunkRecord{}, false
	}
	return *rec, true
}

// Update applies fn to the region's record under the lock.
func (r *Registry) Update(c grid.RegionCoord, fn func(rec *ChunkRecord)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.chunks[c]
	if !ok {
		return false
	}
	fn(rec)
	return true
}

// SetVisible transitions the region's visibility state and reports
// whether this call changed it. The renderable is notified outside the
// lock, and only on a transition.
func (r *Registry) SetVisible(c grid.RegionCoord, visible bool) bool {
	want := StateHidden
	if visible {
		want = StateVisible
	}

	r.mu.Lock()
	rec, ok := r.chunks[c]
	if !ok || rec.State == want {
		r.mu.Unlock()
		return false
	}
	rec.State = want
	rend := rec.Renderable
	r.mu.Unlock()

	if rend != nil {
		rend.SetVisible(visible)
	}
	return true
}

// Coords returns a snapshot of all resident region coordinates.
func (r *Registry) Coords() []grid.RegionCoord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]grid.RegionCoord, 0, len(r.chunks))
	for c := range r.chunks {
		out = append(out, c)
	}
	return out
}

// Len returns the number of resident regions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chunks)
}
