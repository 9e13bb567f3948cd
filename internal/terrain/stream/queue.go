package stream

import (
	"sort"

	"github.com/Faultbox/terrastream/internal/terrain/grid"
)

// buildQueue holds regions waiting to be built, deduplicated, ordered by
// Manhattan distance from the viewpoint region. Ordering is refreshed
// lazily: pushes and viewpoint changes mark it dirty, the next pop sorts.
type buildQueue struct {
	pending map[grid.RegionCoord]struct{}
	order   []grid.RegionCoord
	center  grid.RegionCoord
	dirty   bool
}

func newBuildQueue() *buildQueue {
	return &buildQueue{pending: make(map[grid.RegionCoord]struct{})}
}

// Push enqueues a region, reporting false if it was already pending.
func (q *buildQueue) Push(c grid.RegionCoord) bool {
	if _, ok := q.pending[c]; ok {
		return false
	}
	q.pending[c] = struct{}{}
	q.order = append(q.order, c)
	q.dirty = true
	return true
}

// Pop removes and returns the pending region nearest to the viewpoint.
func (q *buildQueue) Pop() (grid.RegionCoord, bool) {
	if len(q.order) == 0 {
		return grid.RegionCoord{}, false
	}
	if q.dirty {
		// Farthest first so the nearest region pops off the tail.
		sort.Slice(q.order, func(i, j int) bool {
			return q.center.Manhattan(q.order[i]) > q.center.Manhattan(q.order[j])
		})
		q.dirty = false
	}
	c := q.order[len(q.order)-1]
	q.order = q.order[:len(q.order)-1]
	delete(q.pending, c)
	return c, true
}

// Retarget re-centers the distance ordering on a new viewpoint region.
func (q *buildQueue) Retarget(center grid.RegionCoord) {
	if center == q.center {
		return
	}
	q.center = center
	q.dirty = true
}

func (q *buildQueue) Contains(c grid.RegionCoord) bool {
	_, ok := q.pending[c]
	return ok
}

func (q *buildQueue) Len() int {
	return len(q.order)
}
