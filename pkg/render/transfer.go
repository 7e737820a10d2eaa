package render

import (
	"math"

	"github.com/MihaiAnton/volume-visualization/pkg/core"
)

// maxMagnitude is the display ceiling of the gradient magnitude axis in
// the 2D transfer function domain.
const maxMagnitude = 255.0

// LookupLUT maps a scalar value linearly from [start, start+span) to an
// entry of the lookup table. The computed index is clamped at both ends so
// values outside the nominal domain never index out of range.
func LookupLUT(lut []core.Color, start, span, value float64) core.Color {
	range01 := (value - start) / span
	i := int(range01 * float64(len(lut)))
	if i < 0 {
		i = 0
	}
	if i > len(lut)-1 {
		i = len(lut) - 1
	}
	return lut[i]
}

// InTriangle reports whether the point (intensity, magnitude) lies inside
// the triangle with apex (mid, 0) and base corners (left, 255) and
// (right, 255). The bounds are strict, so points on the base corners or
// with zero magnitude are outside.
func InTriangle(left, mid, right, intensity, magnitude float64) bool {
	if intensity <= left || intensity >= right || magnitude <= 0 {
		return false
	}
	if intensity == mid {
		return true
	}
	// Compare against the triangle's boundary magnitude at this intensity.
	if intensity < mid {
		return magnitude > maxMagnitude*(mid-intensity)/(mid-left)
	}
	return magnitude > maxMagnitude*(intensity-mid)/(right-mid)
}

// LinearOpacity is the tent profile of the 2D transfer function: 1 on the
// apex axis, falling linearly to 0 at the slanted edges. The triangle
// width at the given magnitude is radius*magnitude/255; a zero width is
// guarded and yields 0.
func LinearOpacity(center, radius, intensity, magnitude float64) float64 {
	width := radius * magnitude / maxMagnitude
	if width == 0 {
		return 0
	}
	return 1 - math.Abs(center-intensity)/width
}

// opacity2D returns the tent opacity of a single triangle, or 0 when the
// point lies outside it.
func opacity2D(tri TF2DTriangle, intensity, magnitude float64) float64 {
	if !InTriangle(tri.Intensity-tri.Radius, tri.Intensity, tri.Intensity+tri.Radius, intensity, magnitude) {
		return 0
	}
	return LinearOpacity(tri.Intensity, tri.Radius, intensity, magnitude)
}

// resolveDual evaluates both triangles of the dual-triangle transfer
// function and picks the opacity and color of the winner. A point inside
// exactly one triangle uses that triangle; inside both, the larger opacity
// wins. Membership implies a strictly positive opacity, so a zero result
// means the point lies in neither triangle.
func resolveDual(triangles [2]TF2DTriangle, intensity, magnitude float64) (float64, core.Color) {
	o0 := opacity2D(triangles[0], intensity, magnitude)
	o1 := opacity2D(triangles[1], intensity, magnitude)

	if o0 == 0 && o1 == 0 {
		return 0, core.Color{}
	}
	if o0 >= o1 {
		return o0, triangles[0].Color
	}
	return o1, triangles[1].Color
}
