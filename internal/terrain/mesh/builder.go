package mesh

import (
	"github.com/Faultbox/terrastream/internal/terrain/elevation"
	gmath "github.com/Faultbox/terrastream/pkg/math"
)

// Geometry is the CPU-side mesh for one region at one resolution. The
// Indices slice is shared across regions via the topology cache and must
// not be mutated.
type Geometry struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Indices   []uint32
}

// Params fixes the world-space scaling of built geometry.
type Params struct {
	RegionSize int     // cells per region edge
	TileSize   float32 // world units per cell
	StepHeight float32 // world units per elevation step
	SkirtDepth float32 // world units skirt rings are lowered
}

// Builder converts sanitized elevation data into region geometry. It is
// not safe for concurrent use: the height scratch buffer is reused
// across builds.
type Builder struct {
	p       Params
	topo    *TopologyCache
	heights []float32
}

// NewBuilder creates a builder that shares index buffers through topo.
func NewBuilder(p Params, topo *TopologyCache) *Builder {
	return &Builder{p: p, topo: topo}
}

// Build produces geometry for the region at step cells per quad, sampling
// elevation through hood so halo lookups cross region boundaries. When
// prev holds a geometry with the same vertex count its slices are reused
// in place; otherwise fresh slices are allocated. step must evenly
// divide the region size.
func (b *Builder) Build(step int, hood *elevation.Neighborhood, prev *Geometry) *Geometry {
	res := b.p.RegionSize / step
	n := res + 1

	b.fillHeights(step, hood)

	total := vertexCount(res)
	g := prev
	if g == nil || len(g.Positions) != total {
		g = &Geometry{
			Positions: make([][3]float32, total),
			Normals:   make([][3]float32, total),
			UVs:       make([][2]float32, total),
		}
	}
	g.Indices = b.topo.Indices(res)

	horiz := float32(step) * b.p.TileSize

	// Interior lattice.
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			v := j*n + i
			g.Positions[v] = [3]float32{
				float32(i) * horiz,
				b.heightAt(step, i, j) * b.p.StepHeight,
				float32(j) * horiz,
			}
			g.Normals[v] = b.normalAt(step, i, j)
			g.UVs[v] = [2]float32{float32(i) / float32(res), float32(j) / float32(res)}
		}
	}

	// Skirt rings duplicate the boundary vertices lowered by the skirt
	// depth, with outward horizontal normals so lighting reads them as
	// walls.
	b.fillSkirt(g, res, southBase(res), func(k int) int { return k }, func(k int) int { return 0 }, [3]float32{0, 0, -1})
	b.fillSkirt(g, res, northBase(res), func(k int) int { return k }, func(k int) int { return res }, [3]float32{0, 0, 1})
	b.fillSkirt(g, res, westBase(res), func(k int) int { return 0 }, func(k int) int { return k }, [3]float32{-1, 0, 0})
	b.fillSkirt(g, res, eastBase(res), func(k int) int { return res }, func(k int) int { return k }, [3]float32{1, 0, 0})

	return g
}

func (b *Builder) fillSkirt(g *Geometry, res, base int, ix, jx func(k int) int, normal [3]float32) {
	n := res + 1
	for k := 0; k < n; k++ {
		top := jx(k)*n + ix(k)
		v := base + k
		p := g.Positions[top]
		p[1] -= b.p.SkirtDepth
		g.Positions[v] = p
		g.Normals[v] = normal
		g.UVs[v] = g.UVs[top]
	}
}

// fillHeights populates the scratch cache with blended heights for every
// lattice position from -1 to res+1 inclusive, one beyond the region on
// every side so central differences never leave the cache.
func (b *Builder) fillHeights(step int, hood *elevation.Neighborhood) {
	res := b.p.RegionSize / step
	stride := res + 3
	need := stride * stride
	if cap(b.heights) < need {
		b.heights = make([]float32, need)
	}
	b.heights = b.heights[:need]

	for j := -1; j <= res+1; j++ {
		for i := -1; i <= res+1; i++ {
			b.heights[(j+1)*stride+(i+1)] = blendCorner(hood, i*step, j*step)
		}
	}
}

// blendCorner averages the four cells meeting at the cell corner
// (cx, cz), smoothing the quantized field so coarse lattices still track
// the fine surface.
func blendCorner(hood *elevation.Neighborhood, cx, cz int) float32 {
	sum := hood.Cell(cx-1, cz-1) +
		hood.Cell(cx, cz-1) +
		hood.Cell(cx-1, cz) +
		hood.Cell(cx, cz)
	return float32(sum) * 0.25
}

func (b *Builder) heightAt(step, i, j int) float32 {
	res := b.p.RegionSize / step
	stride := res + 3
	return b.heights[(j+1)*stride+(i+1)]
}

// normalAt derives the surface normal from central differences over the
// blended height cache.
func (b *Builder) normalAt(step, i, j int) [3]float32 {
	dx := (b.heightAt(step, i+1, j) - b.heightAt(step, i-1, j)) * b.p.StepHeight
	dz := (b.heightAt(step, i, j+1) - b.heightAt(step, i, j-1)) * b.p.StepHeight
	span := 2 * float32(step) * b.p.TileSize

	n := gmath.Vec3{X: -dx, Y: span, Z: -dz}.Normalize()
	return [3]float32{n.X, n.Y, n.Z}
}
