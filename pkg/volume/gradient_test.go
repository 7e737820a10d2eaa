package volume

import (
	"math"
	"testing"

	"github.com/MihaiAnton/volume-visualization/pkg/core"
)

func TestGradientOfLinearRamp(t *testing.T) {
	// value = 10*x, so the interior central difference is exactly (10,0,0).
	vol := makeVolume(5, 5, 5, func(x, y, z int) uint16 { return uint16(10 * x) })
	grad := NewGradientVolume(vol)

	g := grad.GradientAt(core.NewVec3(2, 2, 2))
	if math.Abs(g.Dir.X-10) > 1e-9 || math.Abs(g.Dir.Y) > 1e-9 || math.Abs(g.Dir.Z) > 1e-9 {
		t.Errorf("Expected gradient direction (10,0,0), got %v", g.Dir)
	}
	if math.Abs(g.Magnitude-10) > 1e-9 {
		t.Errorf("Expected magnitude 10, got %v", g.Magnitude)
	}

	// Between two identical interior gradients the interpolation is exact.
	g = grad.GradientAt(core.NewVec3(1.5, 2, 2))
	if math.Abs(g.Magnitude-10) > 1e-9 {
		t.Errorf("Expected interpolated magnitude 10, got %v", g.Magnitude)
	}

	if grad.MaxMagnitude() < 10 {
		t.Errorf("Expected max magnitude >= 10, got %v", grad.MaxMagnitude())
	}
}

func TestGradientBorderUsesClampedNeighbours(t *testing.T) {
	vol := makeVolume(3, 3, 3, func(x, y, z int) uint16 { return uint16(10 * x) })
	grad := NewGradientVolume(vol)

	// At x=0 the left neighbour is the voxel itself, halving the difference.
	g := grad.GradientAt(core.NewVec3(0, 1, 1))
	if math.Abs(g.Dir.X-5) > 1e-9 {
		t.Errorf("Expected clamped border gradient 5, got %v", g.Dir.X)
	}
}

func TestGradientOutsideDomainIsZero(t *testing.T) {
	vol := makeVolume(3, 3, 3, func(x, y, z int) uint16 { return uint16(x + y + z) })
	grad := NewGradientVolume(vol)

	for _, pos := range []core.Vec3{
		core.NewVec3(-1, 1, 1),
		core.NewVec3(1, 1, 2),
		core.NewVec3(1, 5, 1),
	} {
		if g := grad.GradientAt(pos); g != (Gradient{}) {
			t.Errorf("Expected zero gradient at %v, got %+v", pos, g)
		}
	}
}

func TestConstantVolumeHasZeroGradient(t *testing.T) {
	vol := makeVolume(3, 3, 3, func(x, y, z int) uint16 { return 42 })
	grad := NewGradientVolume(vol)

	if grad.MaxMagnitude() != 0 {
		t.Errorf("Expected zero max magnitude for constant volume, got %v", grad.MaxMagnitude())
	}
}
