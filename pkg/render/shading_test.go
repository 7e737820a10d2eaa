package render

import (
	"math"
	"testing"

	"github.com/MihaiAnton/volume-visualization/pkg/core"
	"github.com/MihaiAnton/volume-visualization/pkg/volume"
)

func TestPhongShadeZeroGradient(t *testing.T) {
	color := core.NewVec3(0.8, 0.8, 0.2)
	light := core.NewVec3(0, 0, -5)
	view := core.NewVec3(0, 0, 1)

	// With a zero gradient both angle cosines degrade to acos(0): the
	// diffuse term vanishes and phi becomes 0, leaving ambient + specular.
	got := PhongShade(color, volume.Gradient{}, light, view)
	want := color.Multiply(phongAmbient + phongSpecular)

	if math.IsNaN(got.X) || math.IsInf(got.X, 0) {
		t.Fatalf("Expected finite result for degenerate gradient, got %v", got)
	}
	if math.Abs(got.X-want.X) > 1e-6 || math.Abs(got.Y-want.Y) > 1e-6 || math.Abs(got.Z-want.Z) > 1e-6 {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestPhongShadeScalesLinearly(t *testing.T) {
	gradient := volume.Gradient{Dir: core.NewVec3(0, 1, 2), Magnitude: core.NewVec3(0, 1, 2).Length()}
	light := core.NewVec3(3, -1, 4)
	view := core.NewVec3(0, 0, 1)

	a := PhongShade(core.NewVec3(0.2, 0.2, 0.2), gradient, light, view)
	b := PhongShade(core.NewVec3(0.4, 0.4, 0.4), gradient, light, view)

	if math.Abs(b.X-2*a.X) > 1e-9 {
		t.Errorf("Expected shading to scale the color linearly: %v vs %v", a, b)
	}
}

func TestPhongShadeDegenerateVectorsFinite(t *testing.T) {
	gradient := volume.Gradient{Dir: core.NewVec3(1, 0, 0), Magnitude: 1}

	got := PhongShade(core.NewVec3(1, 1, 1), gradient, core.Vec3{}, core.Vec3{})
	for _, c := range []float64{got.X, got.Y, got.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			t.Fatalf("Expected finite result for zero light/view vectors, got %v", got)
		}
	}
}
