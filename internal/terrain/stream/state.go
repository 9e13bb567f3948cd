// Package stream decides which terrain regions are resident: it tracks
// live renderables per region, queues builds by distance from the
// viewpoint, and advances the pipeline one bounded unit of work per
// tick.
package stream

// State is the lifecycle of one resident region's renderable. A fresh
// record starts Unbuilt (the zero value), moves to Building while the
// pipeline runs for it, and then alternates Hidden/Visible under the
// culler. Queued-ness is queue membership, not a state.
type State int

const (
	StateUnbuilt State = iota
	StateBuilding
	StateVisible
	StateHidden
)

func (s State) String() string {
	switch s {
	case StateUnbuilt:
		return "unbuilt"
	case StateBuilding:
		return "building"
	case StateVisible:
		return "visible"
	case StateHidden:
		return "hidden"
	default:
		return "unknown"
	}
}
