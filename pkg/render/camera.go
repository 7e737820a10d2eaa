package render

import (
	"math"

	"github.com/MihaiAnton/volume-visualization/pkg/core"
)

// Camera produces a primary ray per pixel and exposes the eye state the
// render modes need. The renderer never mutates the camera it is given;
// the caller may move it between frames.
type Camera interface {
	// GenerateRay maps normalized device coordinates in [-1,1]^2 to a ray.
	GenerateRay(ndc core.Vec2) core.Ray
	// Position returns the world-space eye position.
	Position() core.Vec3
	// Forward returns the view direction.
	Forward() core.Vec3
}

// PerspectiveCamera is a simple look-at pinhole camera.
type PerspectiveCamera struct {
	position   core.Vec3
	forward    core.Vec3
	right      core.Vec3
	up         core.Vec3
	halfWidth  float64
	halfHeight float64
}

// NewPerspectiveCamera creates a camera at position looking at lookAt.
// vfov is the vertical field of view in degrees, aspect is width/height.
func NewPerspectiveCamera(position, lookAt, up core.Vec3, vfov, aspect float64) *PerspectiveCamera {
	forward := lookAt.Subtract(position).Normalize()
	right := forward.Cross(up).Normalize()
	trueUp := right.Cross(forward)

	halfHeight := math.Tan(vfov * math.Pi / 360)
	return &PerspectiveCamera{
		position:   position,
		forward:    forward,
		right:      right,
		up:         trueUp,
		halfWidth:  halfHeight * aspect,
		halfHeight: halfHeight,
	}
}

// GenerateRay builds the ray through the image plane point given by ndc
func (c *PerspectiveCamera) GenerateRay(ndc core.Vec2) core.Ray {
	direction := c.forward.
		Add(c.right.Multiply(ndc.X * c.halfWidth)).
		Add(c.up.Multiply(ndc.Y * c.halfHeight)).
		Normalize()
	return core.NewRay(c.position, direction)
}

// Position returns the eye position
func (c *PerspectiveCamera) Position() core.Vec3 {
	return c.position
}

// Forward returns the view direction
func (c *PerspectiveCamera) Forward() core.Vec3 {
	return c.forward
}
