package math

import (
	"testing"
)

// testFrustum is a 90-degree perspective at the origin looking down -Z,
// near 1, far 100.
func testFrustum() Frustum {
	proj := Perspective(1.5708, 1.0, 1.0, 100.0)
	return FrustumFromMatrix(proj)
}

func TestFrustumContainsPoint(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name string
		p    Vec3
		want bool
	}{
		{"ahead", Vec3{0, 0, -50}, true},
		{"behind camera", Vec3{0, 0, 50}, false},
		{"too close", Vec3{0, 0, -0.5}, false},
		{"beyond far", Vec3{0, 0, -150}, false},
		{"far right", Vec3{500, 0, -10}, false},
		{"inside right edge", Vec3{9, 0, -10}, true},
	}

	for _, tt := range tests {
		if got := f.ContainsPoint(tt.p); got != tt.want {
			t.Errorf("%s: ContainsPoint(%v) = %v, want %v", tt.name, tt.p, got, tt.want)
		}
	}
}

func TestFrustumIntersectsAABB(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name     string
		min, max Vec3
		want     bool
	}{
		{"fully inside", Vec3{-5, -5, -60}, Vec3{5, 5, -40}, true},
		{"straddles near plane", Vec3{-1, -1, -2}, Vec3{1, 1, 2}, true},
		{"straddles right plane", Vec3{8, -1, -12}, Vec3{20, 1, -8}, true},
		{"behind camera", Vec3{-5, -5, 40}, Vec3{5, 5, 60}, false},
		{"beyond far plane", Vec3{-5, -5, -300}, Vec3{5, 5, -200}, false},
		{"far left", Vec3{-300, -5, -60}, Vec3{-200, 5, -40}, false},
		{"huge box surrounds frustum", Vec3{-1000, -1000, -1000}, Vec3{1000, 1000, 1000}, true},
	}

	for _, tt := range tests {
		if got := f.IntersectsAABB(tt.min, tt.max); got != tt.want {
			t.Errorf("%s: IntersectsAABB(%v, %v) = %v, want %v", tt.name, tt.min, tt.max, got, tt.want)
		}
	}
}
