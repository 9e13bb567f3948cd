package mesh

import (
	"testing"

	"github.com/Faultbox/terrastream/internal/terrain/elevation"
	"github.com/Faultbox/terrastream/internal/terrain/grid"
)

type constField float64

func (f constField) At(gx, gz int) float64 { return float64(f) }

func testNeighborhood(t *testing.T, size int, f elevation.Sampler) *elevation.Neighborhood {
	t.Helper()
	store := elevation.NewStore(size, 7, f)
	center := grid.RegionCoord{}
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			store.Generate(center.Offset(dx, dz))
		}
	}
	return store.Neighborhood(center)
}

func TestTopologySharedAcrossResolutions(t *testing.T) {
	tc := NewTopologyCache()

	a := tc.Indices(8)
	b := tc.Indices(8)
	if &a[0] != &b[0] {
		t.Error("expected repeated lookups at one resolution to share a buffer")
	}

	c := tc.Indices(4)
	if &a[0] == &c[0] {
		t.Error("expected distinct resolutions to get distinct buffers")
	}
}

func TestTopologyTriangleCount(t *testing.T) {
	tc := NewTopologyCache()
	for _, res := range []int{1, 4, 16} {
		idx := tc.Indices(res)
		want := 6*res*res + 24*res
		if len(idx) != want {
			t.Errorf("res %d: got %d indices, want %d", res, len(idx), want)
		}
		limit := uint32(vertexCount(res))
		for _, v := range idx {
			if v >= limit {
				t.Fatalf("res %d: index %d out of range %d", res, v, limit)
			}
		}
	}
}

func TestBuildFlatField(t *testing.T) {
	p := Params{RegionSize: 16, TileSize: 2, StepHeight: 0.5, SkirtDepth: 3}
	b := NewBuilder(p, NewTopologyCache())

	// 0.5 quantizes to step 4 with maxStep 7.
	hood := testNeighborhood(t, 16, constField(0.5))
	g := b.Build(2, hood, nil)

	res := 16 / 2
	n := res + 1
	if len(g.Positions) != vertexCount(res) {
		t.Fatalf("got %d vertices, want %d", len(g.Positions), vertexCount(res))
	}

	wantY := float32(4) * p.StepHeight
	for v := 0; v < n*n; v++ {
		if g.Positions[v][1] != wantY {
			t.Errorf("vertex %d: y = %v, want %v", v, g.Positions[v][1], wantY)
		}
		if g.Normals[v] != [3]float32{0, 1, 0} {
			t.Errorf("vertex %d: normal = %v, want up", v, g.Normals[v])
		}
	}
	for v := n * n; v < len(g.Positions); v++ {
		if g.Positions[v][1] != wantY-p.SkirtDepth {
			t.Errorf("skirt vertex %d: y = %v, want %v", v, g.Positions[v][1], wantY-p.SkirtDepth)
		}
	}

	// Corner lattice points span the region extent in world units.
	last := (n-1)*n + (n - 1)
	extent := float32(p.RegionSize) * p.TileSize
	if g.Positions[last][0] != extent || g.Positions[last][2] != extent {
		t.Errorf("far corner at (%v, %v), want (%v, %v)",
			g.Positions[last][0], g.Positions[last][2], extent, extent)
	}
	if g.UVs[last] != [2]float32{1, 1} {
		t.Errorf("far corner UV = %v, want (1,1)", g.UVs[last])
	}
}

func TestBuildReusesGeometry(t *testing.T) {
	p := Params{RegionSize: 8, TileSize: 1, StepHeight: 1, SkirtDepth: 1}
	b := NewBuilder(p, NewTopologyCache())
	hood := testNeighborhood(t, 8, constField(0.25))

	g1 := b.Build(2, hood, nil)
	g2 := b.Build(2, hood, g1)
	if g2 != g1 || &g2.Positions[0] != &g1.Positions[0] {
		t.Error("expected rebuild at same resolution to reuse geometry in place")
	}

	g3 := b.Build(4, hood, g2)
	if g3 == g2 {
		t.Error("expected resolution change to allocate fresh geometry")
	}
}

func TestBuildStepResolutions(t *testing.T) {
	p := Params{RegionSize: 16, TileSize: 1, StepHeight: 1, SkirtDepth: 1}
	b := NewBuilder(p, NewTopologyCache())
	hood := testNeighborhood(t, 16, constField(0.5))

	for _, step := range []int{1, 2, 4} {
		g := b.Build(step, hood, nil)
		res := 16 / step
		if len(g.Positions) != vertexCount(res) {
			t.Errorf("step %d: got %d vertices, want %d", step, len(g.Positions), vertexCount(res))
		}
		if len(g.Indices) != 6*res*res+24*res {
			t.Errorf("step %d: got %d indices, want %d", step, len(g.Indices), 6*res*res+24*res)
		}
	}
}
