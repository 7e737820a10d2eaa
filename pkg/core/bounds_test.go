package core

import (
	"math"
	"testing"
)

func TestIntersectRayFromInside(t *testing.T) {
	bounds := NewBounds(NewVec3(0, 0, 0), NewVec3(2, 2, 2))

	// A ray starting inside the box pointing outward along an axis must
	// report an interval that straddles the origin.
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(1, 0, 0))
	if !bounds.IntersectRay(&ray) {
		t.Fatal("Expected ray from inside the box to intersect")
	}
	if ray.TMin > 0 || ray.TMax < 0 {
		t.Errorf("Expected tmin <= 0 <= tmax, got [%v, %v]", ray.TMin, ray.TMax)
	}
}

func TestIntersectRayThroughBox(t *testing.T) {
	bounds := NewBounds(NewVec3(0, 0, 0), NewVec3(2, 2, 2))

	tests := []struct {
		name         string
		ray          Ray
		tMin, tMax   float64
	}{
		{
			name: "axis aligned from the front",
			ray:  NewRay(NewVec3(1, 1, -3), NewVec3(0, 0, 1)),
			tMin: 3,
			tMax: 5,
		},
		{
			name: "diagonal with negative direction",
			ray:  NewRay(NewVec3(5, 5, 5), NewVec3(-1, -1, -1)),
			tMin: 3,
			tMax: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := tt.ray
			if !bounds.IntersectRay(&ray) {
				t.Fatal("Expected intersection")
			}
			if math.Abs(ray.TMin-tt.tMin) > 1e-9 || math.Abs(ray.TMax-tt.tMax) > 1e-9 {
				t.Errorf("Expected interval [%v, %v], got [%v, %v]", tt.tMin, tt.tMax, ray.TMin, ray.TMax)
			}
		})
	}
}

func TestIntersectRayMiss(t *testing.T) {
	bounds := NewBounds(NewVec3(0, 0, 0), NewVec3(2, 2, 2))

	// Origin far outside the box, direction parallel to a face. The zero
	// direction components exercise the signed-infinity slab comparisons.
	ray := NewRay(NewVec3(10, 0.5, 0.5), NewVec3(0, 0, 1))
	if bounds.IntersectRay(&ray) {
		t.Error("Expected parallel offset ray to miss")
	}

	// Pointing away from the box entirely.
	ray = NewRay(NewVec3(0.5, 0.5, -3), NewVec3(0, 0, -1))
	if bounds.IntersectRay(&ray) {
		t.Error("Expected ray pointing away to miss")
	}
}

func TestIntersectRayDoesNotModifyRayOnMiss(t *testing.T) {
	bounds := NewBounds(NewVec3(0, 0, 0), NewVec3(2, 2, 2))

	ray := NewRay(NewVec3(10, 0.5, 0.5), NewVec3(0, 0, 1))
	ray.TMin, ray.TMax = 7, 9
	bounds.IntersectRay(&ray)
	if ray.TMin != 7 || ray.TMax != 9 {
		t.Errorf("Expected miss to leave the clip interval untouched, got [%v, %v]", ray.TMin, ray.TMax)
	}
}
