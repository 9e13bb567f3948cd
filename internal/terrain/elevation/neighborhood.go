package elevation

import (
	"github.com/Faultbox/terrastream/internal/terrain/grid"
)

// Neighborhood is a read-only 3x3 window of grids around a center region,
// used by the mesh builder to blend heights across region boundaries.
// Grids are captured once; a region purged after capture keeps the snapshot
// alive until the build finishes.
type Neighborhood struct {
	size  int
	grids [3][3]*Grid // [dz+1][dx+1]
}

// Neighborhood captures the center region's grid and its 8 neighbors.
// Absent neighbors stay nil and resolve to clamped center-edge values.
func (s *Store) Neighborhood(c grid.RegionCoord) *Neighborhood {
	n := &Neighborhood{size: s.size}

	s.mu.RLock()
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			n.grids[dz+1][dx+1] = s.grids[c.Offset(dx, dz)]
		}
	}
	s.mu.RUnlock()

	return n
}

// Cell returns the elevation step at a cell position relative to the
// center region's origin. Positions may reach one region beyond the center
// in any direction. Samples landing in an absent grid fall back to the
// clamped edge of the center region.
func (n *Neighborhood) Cell(x, z int) int {
	dx := grid.FloorDiv(x, n.size)
	dz := grid.FloorDiv(z, n.size)

	if dx >= -1 && dx <= 1 && dz >= -1 && dz <= 1 {
		if g := n.grids[dz+1][dx+1]; g != nil {
			return g.At(grid.Mod(x, n.size), grid.Mod(z, n.size))
		}
	}

	center := n.grids[1][1]
	if center == nil {
		return 0
	}
	return center.At(clampInt(x, 0, n.size-1), clampInt(z, 0, n.size-1))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
