package core

// Ray represents a ray with an origin and direction. TMin and TMax hold
// the parametric interval where the ray overlaps the volume bounds; they
// are filled in by Bounds.IntersectRay.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

// NewRay creates a new ray with an empty clip interval
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
