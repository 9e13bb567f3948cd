// Package grid defines region coordinates and the integer math used to
// resolve global cell positions into regions.
package grid

// RegionCoord identifies one square region of the world grid.
type RegionCoord struct {
	X, Z int
}

// Offset returns the coordinate shifted by (dx, dz) regions.
func (c RegionCoord) Offset(dx, dz int) RegionCoord {
	return RegionCoord{X: c.X + dx, Z: c.Z + dz}
}

// East returns the neighboring region at +X.
func (c RegionCoord) East() RegionCoord { return RegionCoord{X: c.X + 1, Z: c.Z} }

// North returns the neighboring region at +Z.
func (c RegionCoord) North() RegionCoord { return RegionCoord{X: c.X, Z: c.Z + 1} }

// Manhattan returns the Manhattan distance between two region coordinates.
func (c RegionCoord) Manhattan(other RegionCoord) int {
	return absInt(c.X-other.X) + absInt(c.Z-other.Z)
}

// Chebyshev returns the chessboard distance between two region coordinates.
// A square block of radius r around a center contains exactly the coordinates
// at Chebyshev distance <= r.
func (c RegionCoord) Chebyshev(other RegionCoord) int {
	dx := absInt(c.X - other.X)
	dz := absInt(c.Z - other.Z)
	if dz > dx {
		return dz
	}
	return dx
}

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Mod returns the non-negative remainder of a/b.
func Mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// RegionOf resolves a global cell position to its owning region.
func RegionOf(gx, gz, regionSize int) RegionCoord {
	return RegionCoord{
		X: FloorDiv(gx, regionSize),
		Z: FloorDiv(gz, regionSize),
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
