// Package mesh builds renderable geometry for terrain regions at a
// requested level of detail, including skirt walls that mask seams
// between neighboring resolutions.
package mesh

import "sync"

// Vertex layout shared by the builder and the topology cache, for a
// resolution of res quads per edge (res+1 lattice points):
//
//	[0, n*n)        interior lattice, index j*n + i with n = res+1
//	[n*n, n*n+n)    south skirt ring (j = 0 row, lowered)
//	[n*n+n, +2n)    north skirt ring (j = res row, lowered)
//	[n*n+2n, +3n)   west skirt ring (i = 0 column, lowered)
//	[n*n+3n, +4n)   east skirt ring (i = res column, lowered)
func vertexCount(res int) int {
	n := res + 1
	return n*n + 4*n
}

func southBase(res int) int { n := res + 1; return n * n }
func northBase(res int) int { n := res + 1; return n*n + n }
func westBase(res int) int  { n := res + 1; return n*n + 2*n }
func eastBase(res int) int  { n := res + 1; return n*n + 3*n }

// TopologyCache memoizes the triangle index buffer for each distinct
// resolution. Topology depends only on the resolution, never on the
// region, so every region built at the same resolution shares one
// buffer. The cache is owned by whoever owns the scheduler; construct a
// fresh instance per pipeline, not a process-wide one.
type TopologyCache struct {
	mu    sync.Mutex
	byRes map[int][]uint32
}

// NewTopologyCache creates an empty cache.
func NewTopologyCache() *TopologyCache {
	return &TopologyCache{byRes: make(map[int][]uint32)}
}

// Indices returns the shared index buffer for a resolution of res quads
// per edge, computing it on first request. Callers must treat the slice
// as read-only.
func (tc *TopologyCache) Indices(res int) []uint32 {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if idx, ok := tc.byRes[res]; ok {
		return idx
	}
	idx := buildIndices(res)
	tc.byRes[res] = idx
	return idx
}

// buildIndices triangulates the interior grid plus the four skirt walls.
func buildIndices(res int) []uint32 {
	n := res + 1
	idx := make([]uint32, 0, 6*res*res+24*res)

	vert := func(i, j int) uint32 { return uint32(j*n + i) }

	// Interior grid: two triangles per quad.
	for j := 0; j < res; j++ {
		for i := 0; i < res; i++ {
			i0 := vert(i, j)
			i1 := vert(i+1, j)
			i2 := vert(i, j+1)
			i3 := vert(i+1, j+1)
			idx = append(idx, i0, i2, i1, i1, i2, i3)
		}
	}

	// Skirt walls: quads between each boundary vertex pair and its
	// lowered duplicate.
	wall := func(top func(k int) uint32, base int) {
		for k := 0; k < res; k++ {
			t0 := top(k)
			t1 := top(k + 1)
			s0 := uint32(base + k)
			s1 := uint32(base + k + 1)
			idx = append(idx, t0, s0, t1, t1, s0, s1)
		}
	}

	wall(func(k int) uint32 { return vert(k, 0) }, southBase(res))
	wall(func(k int) uint32 { return vert(k, res) }, northBase(res))
	wall(func(k int) uint32 { return vert(0, k) }, westBase(res))
	wall(func(k int) uint32 { return vert(res, k) }, eastBase(res))

	return idx
}
