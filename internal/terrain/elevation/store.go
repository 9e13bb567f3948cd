// Package elevation owns per-region raw elevation grids derived from a
// deterministic noise field.
package elevation

import (
	"sync"

	"github.com/Faultbox/terrastream/internal/terrain/grid"
)

// Grid is a fixed-size square array of integer elevation steps, one cell
// per world unit inside a region. Values lie in [0, maxStep].
type Grid struct {
	size  int
	cells []uint8
}

func newGrid(size int) *Grid {
	return &Grid{
		size:  size,
		cells: make([]uint8, size*size),
	}
}

// Size returns the cells per edge.
func (g *Grid) Size() int { return g.size }

// At returns the elevation step at local cell (x, z).
func (g *Grid) At(x, z int) int {
	return int(g.cells[x+z*g.size])
}

// Set overwrites the elevation step at local cell (x, z).
func (g *Grid) Set(x, z, step int) {
	g.cells[x+z*g.size] = uint8(step)
}

// Store owns every generated ElevationGrid, keyed by region coordinate.
// Generation is deterministic: the sampler output for a global cell is
// quantized into [0, maxStep].
type Store struct {
	mu      sync.RWMutex
	size    int
	maxStep int
	sampler Sampler
	grids   map[grid.RegionCoord]*Grid
}

// NewStore creates an empty store. size is cells per region edge.
func NewStore(size, maxStep int, sampler Sampler) *Store {
	return &Store{
		size:    size,
		maxStep: maxStep,
		sampler: sampler,
		grids:   make(map[grid.RegionCoord]*Grid),
	}
}

// RegionSize returns the cells per region edge.
func (s *Store) RegionSize() int { return s.size }

// MaxStep returns the highest elevation step.
func (s *Store) MaxStep() int { return s.maxStep }

// Has reports whether a region's grid exists.
func (s *Store) Has(c grid.RegionCoord) bool {
	s.mu.RLock()
	_, ok := s.grids[c]
	s.mu.RUnlock()
	return ok
}

// Grid returns the region's grid, or nil if not generated.
func (s *Store) Grid(c grid.RegionCoord) *Grid {
	s.mu.RLock()
	g := s.grids[c]
	s.mu.RUnlock()
	return g
}

// Generate fills the region's grid from the noise field. No-op if the
// region already has data.
func (s *Store) Generate(c grid.RegionCoord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.grids[c]; ok {
		return
	}

	g := newGrid(s.size)
	for z := 0; z < s.size; z++ {
		for x := 0; x < s.size; x++ {
			v := s.sampler.At(c.X*s.size+x, c.Z*s.size+z)
			g.Set(x, z, s.quantize(v))
		}
	}
	s.grids[c] = g
}

// quantize maps a normalized [0,1) sample onto an integer step.
func (s *Store) quantize(v float64) int {
	step := int(v * float64(s.maxStep+1))
	if step < 0 {
		return 0
	}
	if step > s.maxStep {
		return s.maxStep
	}
	return step
}

// Remove discards a region's grid. Used on purge.
func (s *Store) Remove(c grid.RegionCoord) {
	s.mu.Lock()
	delete(s.grids, c)
	s.mu.Unlock()
}

// Coords returns a snapshot of every generated region's coordinate.
func (s *Store) Coords() []grid.RegionCoord {
	s.mu.RLock()
	out := make([]grid.RegionCoord, 0, len(s.grids))
	for c := range s.grids {
		out = append(out, c)
	}
	s.mu.RUnlock()
	return out
}

// Len returns the number of resident grids.
func (s *Store) Len() int {
	s.mu.RLock()
	n := len(s.grids)
	s.mu.RUnlock()
	return n
}

// ElevationAt resolves the owning region and local cell of a global
// position. Ungenerated regions read as step 0; callers must tolerate the
// provisional zero until the region streams in.
func (s *Store) ElevationAt(gx, gz int) int {
	c := grid.RegionOf(gx, gz, s.size)

	s.mu.RLock()
	g := s.grids[c]
	s.mu.RUnlock()

	if g == nil {
		return 0
	}
	return g.At(grid.Mod(gx, s.size), grid.Mod(gz, s.size))
}
