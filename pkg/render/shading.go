package render

import (
	"math"

	"github.com/MihaiAnton/volume-visualization/pkg/core"
	"github.com/MihaiAnton/volume-visualization/pkg/volume"
)

// Phong coefficients shared by all shaded modes.
const (
	phongAmbient  = 0.1
	phongDiffuse  = 0.7
	phongSpecular = 0.2
	phongExponent = 100
	phongEps      = 1e-4 // guards division by zero-length gradients/vectors
)

// PhongShade scales a color by the Phong reflection terms derived from the
// local gradient. light is the eye position (headlight model) and view the
// ray direction. The epsilon only matters for degenerate inputs; it does
// not change results for well-formed ones.
func PhongShade(color core.Vec3, gradient volume.Gradient, light, view core.Vec3) core.Vec3 {
	theta := math.Acos(gradient.Dir.Dot(light.Negate()) / (gradient.Magnitude*light.Length() + phongEps))
	phi := math.Acos(gradient.Dir.Dot(view)/(gradient.Magnitude*view.Length()+phongEps)) - theta

	return color.Multiply(phongAmbient +
		phongDiffuse*math.Cos(theta) +
		phongSpecular*math.Pow(math.Cos(phi), phongExponent))
}
