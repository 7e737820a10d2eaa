package core

import "math"

// Bounds represents the axis-aligned bounding box around the volume. The
// corners are stored as a two-element array so the slab intersector can
// select the near/far face of each axis by the sign of the inverse ray
// direction.
type Bounds struct {
	Corners [2]Vec3 // Corners[0] = lower, Corners[1] = upper
}

// NewBounds creates a bounding box from its lower and upper corners
func NewBounds(lower, upper Vec3) Bounds {
	return Bounds{Corners: [2]Vec3{lower, upper}}
}

// Lower returns the lower corner of the box
func (b Bounds) Lower() Vec3 {
	return b.Corners[0]
}

// Upper returns the upper corner of the box
func (b Bounds) Upper() Vec3 {
	return b.Corners[1]
}

// IntersectRay clips a ray against the box using the slab method. On a hit
// the entry/exit distances are written to ray.TMin/ray.TMax and true is
// returned; on a miss the ray is left untouched and false is returned.
//
// A zero direction component yields a ±Inf inverse direction, which biases
// the comparisons consistently under IEEE semantics, so parallel rays need
// no special case.
func (b Bounds) IntersectRay(ray *Ray) bool {
	invX := 1.0 / ray.Direction.X
	invY := 1.0 / ray.Direction.Y
	invZ := 1.0 / ray.Direction.Z

	sx, sy, sz := 0, 0, 0
	if invX < 0 {
		sx = 1
	}
	if invY < 0 {
		sy = 1
	}
	if invZ < 0 {
		sz = 1
	}

	tmin := (b.Corners[sx].X - ray.Origin.X) * invX
	tmax := (b.Corners[1-sx].X - ray.Origin.X) * invX
	tymin := (b.Corners[sy].Y - ray.Origin.Y) * invY
	tymax := (b.Corners[1-sy].Y - ray.Origin.Y) * invY

	if tmin > tymax || tymin > tmax {
		return false
	}
	tmin = math.Max(tmin, tymin)
	tmax = math.Min(tmax, tymax)

	tzmin := (b.Corners[sz].Z - ray.Origin.Z) * invZ
	tzmax := (b.Corners[1-sz].Z - ray.Origin.Z) * invZ

	if tmin > tzmax || tzmin > tmax {
		return false
	}

	ray.TMin = math.Max(tmin, tzmin)
	ray.TMax = math.Min(tmax, tzmax)
	return true
}
