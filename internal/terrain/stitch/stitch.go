// Package stitch enforces a maximum elevation delta between adjacent
// cells, both inside a region and across its East/North boundaries.
package stitch

import (
	"github.com/Faultbox/terrastream/internal/terrain/elevation"
	"github.com/Faultbox/terrastream/internal/terrain/grid"
)

// passes is the number of smoothing sweeps per Sanitize call. One pass is
// not enough when a cliff spans more than one corrected cell; two lets
// corrections ripple through the region.
const passes = 2

// maxDelta is the largest allowed step difference between adjacent cells.
const maxDelta = 1

// Stitcher clamps elevation deltas in place on the store's grids.
type Stitcher struct {
	store *elevation.Store
}

// New creates a stitcher over the given store.
func New(store *elevation.Store) *Stitcher {
	return &Stitcher{store: store}
}

// Sanitize walks every cell of the region and compares it with its East
// and North neighbor, crossing into the neighboring region's grid at the
// boundary. When the delta exceeds maxDelta, the second cell is clamped
// toward the first by exactly one step, so corrections always propagate
// east/north into not-yet-visited cells. Only the East and North
// directions are corrected against; a region's West and South boundaries
// are owned by the corresponding neighbor's own Sanitize call.
//
// After every region of a 3x3 neighborhood has been sanitized, adjacent
// cells across any shared edge differ by at most one step.
func (st *Stitcher) Sanitize(c grid.RegionCoord) {
	g := st.store.Grid(c)
	if g == nil {
		return
	}

	size := g.Size()
	east := st.store.Grid(c.East())
	north := st.store.Grid(c.North())

	for pass := 0; pass < passes; pass++ {
		for z := 0; z < size; z++ {
			for x := 0; x < size; x++ {
				a := g.At(x, z)

				// East neighbor: in-region, or the neighbor grid's column 0.
				if x+1 < size {
					clampToward(a, g, x+1, z)
				} else if east != nil {
					clampToward(a, east, 0, z)
				}

				// North neighbor: in-region, or the neighbor grid's row 0.
				if z+1 < size {
					clampToward(a, g, x, z+1)
				} else if north != nil {
					clampToward(a, north, x, 0)
				}
			}
		}
	}
}

// clampToward pulls the cell at (x, z) to within maxDelta of a. The cell
// moves to exactly a±maxDelta, not to equality, preserving slope direction.
func clampToward(a int, g *elevation.Grid, x, z int) {
	b := g.At(x, z)
	if b > a+maxDelta {
		g.Set(x, z, a+maxDelta)
	} else if b < a-maxDelta {
		g.Set(x, z, a-maxDelta)
	}
}
