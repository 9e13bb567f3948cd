package math

import "github.com/chewxy/math32"

// Plane is a half-space in Hessian normal form: Normal·p + D >= 0 is inside.
type Plane struct {
	Normal Vec3
	D      float32
}

// Frustum holds the six clipping planes of a view volume,
// in order left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// FrustumFromMatrix extracts clip planes from a combined view-projection
// matrix (Gribb/Hartmann method). Plane normals point inward and are
// normalized so distances are in world units.
func FrustumFromMatrix(m Mat4) Frustum {
	// Rows of the matrix (column-major storage).
	r0 := [4]float32{m[0], m[4], m[8], m[12]}
	r1 := [4]float32{m[1], m[5], m[9], m[13]}
	r2 := [4]float32{m[2], m[6], m[10], m[14]}
	r3 := [4]float32{m[3], m[7], m[11], m[15]}

	add := func(a, b [4]float32) Plane {
		return normalizePlane(a[0]+b[0], a[1]+b[1], a[2]+b[2], a[3]+b[3])
	}
	sub := func(a, b [4]float32) Plane {
		return normalizePlane(b[0]-a[0], b[1]-a[1], b[2]-a[2], b[3]-a[3])
	}

	var f Frustum
	f.Planes[0] = add(r0, r3) // left
	f.Planes[1] = sub(r0, r3) // right
	f.Planes[2] = add(r1, r3) // bottom
	f.Planes[3] = sub(r1, r3) // top
	f.Planes[4] = add(r2, r3) // near
	f.Planes[5] = sub(r2, r3) // far
	return f
}

func normalizePlane(a, b, c, d float32) Plane {
	l := math32.Sqrt(a*a + b*b + c*c)
	if l == 0 {
		return Plane{Normal: Vec3{Y: 1}}
	}
	return Plane{Normal: Vec3{a / l, b / l, c / l}, D: d / l}
}

// IntersectsAABB reports whether the axis-aligned box [min,max] is at
// least partially inside the frustum. Uses the positive-vertex test:
// a box is outside iff its farthest corner along some plane normal is
// behind that plane.
func (f *Frustum) IntersectsAABB(min, max Vec3) bool {
	for i := range f.Planes {
		p := &f.Planes[i]

		v := min
		if p.Normal.X >= 0 {
			v.X = max.X
		}
		if p.Normal.Y >= 0 {
			v.Y = max.Y
		}
		if p.Normal.Z >= 0 {
			v.Z = max.Z
		}

		if p.Normal.Dot(v)+p.D < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether a point is inside all six planes.
func (f *Frustum) ContainsPoint(p Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].Normal.Dot(p)+f.Planes[i].D < 0 {
			return false
		}
	}
	return true
}
