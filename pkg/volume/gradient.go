package volume

import "github.com/MihaiAnton/volume-visualization/pkg/core"

// Gradient is the local gradient of the scalar field: a direction vector
// and its magnitude, kept separately so shading can test the magnitude
// without recomputing the length.
type Gradient struct {
	Dir       core.Vec3
	Magnitude float64
}

// GradientVolume precomputes a central-difference gradient per voxel and
// serves trilinearly interpolated lookups. Like Volume it is immutable
// after construction and safe to share between render workers.
type GradientVolume struct {
	dimX, dimY, dimZ int
	data             []Gradient
	maxMagnitude     float64
}

// NewGradientVolume derives a gradient grid from the given volume using
// central differences, clamped at the borders.
func NewGradientVolume(v *Volume) *GradientVolume {
	g := &GradientVolume{
		dimX: v.DimX,
		dimY: v.DimY,
		dimZ: v.DimZ,
		data: make([]Gradient, v.DimX*v.DimY*v.DimZ),
	}

	i := 0
	for z := 0; z < v.DimZ; z++ {
		for y := 0; y < v.DimY; y++ {
			for x := 0; x < v.DimX; x++ {
				grad := gradientAtVoxel(v, x, y, z)
				g.data[i] = grad
				if grad.Magnitude > g.maxMagnitude {
					g.maxMagnitude = grad.Magnitude
				}
				i++
			}
		}
	}
	return g
}

// MaxMagnitude returns the largest gradient magnitude in the grid
func (g *GradientVolume) MaxMagnitude() float64 {
	return g.maxMagnitude
}

// GradientAt returns the trilinearly interpolated gradient at an arbitrary
// position. Positions outside the interpolation domain yield the zero
// gradient.
func (g *GradientVolume) GradientAt(pos core.Vec3) Gradient {
	if pos.X < 0 || pos.Y < 0 || pos.Z < 0 ||
		pos.X >= float64(g.dimX-1) || pos.Y >= float64(g.dimY-1) || pos.Z >= float64(g.dimZ-1) {
		return Gradient{}
	}

	x, y, z := int(pos.X), int(pos.Y), int(pos.Z)
	fx := pos.X - float64(x)
	fy := pos.Y - float64(y)
	fz := pos.Z - float64(z)

	t0 := lerpGradient(g.voxel(x, y, z), g.voxel(x+1, y, z), fx)
	t1 := lerpGradient(g.voxel(x, y+1, z), g.voxel(x+1, y+1, z), fx)
	t2 := lerpGradient(g.voxel(x, y, z+1), g.voxel(x+1, y, z+1), fx)
	t3 := lerpGradient(g.voxel(x, y+1, z+1), g.voxel(x+1, y+1, z+1), fx)
	return lerpGradient(lerpGradient(t0, t1, fy), lerpGradient(t2, t3, fy), fz)
}

func (g *GradientVolume) voxel(x, y, z int) Gradient {
	return g.data[x+g.dimX*(y+g.dimY*z)]
}

func lerpGradient(g0, g1 Gradient, factor float64) Gradient {
	return Gradient{
		Dir:       g0.Dir.Multiply(1 - factor).Add(g1.Dir.Multiply(factor)),
		Magnitude: (1-factor)*g0.Magnitude + factor*g1.Magnitude,
	}
}

// gradientAtVoxel computes the central difference at a lattice point,
// reusing the border voxel where a neighbour would fall outside the grid.
func gradientAtVoxel(v *Volume, x, y, z int) Gradient {
	dir := core.NewVec3(
		0.5*(voxelClamped(v, x+1, y, z)-voxelClamped(v, x-1, y, z)),
		0.5*(voxelClamped(v, x, y+1, z)-voxelClamped(v, x, y-1, z)),
		0.5*(voxelClamped(v, x, y, z+1)-voxelClamped(v, x, y, z-1)),
	)
	return Gradient{Dir: dir, Magnitude: dir.Length()}
}

func voxelClamped(v *Volume, x, y, z int) float64 {
	x = clampInt(x, 0, v.DimX-1)
	y = clampInt(y, 0, v.DimY-1)
	z = clampInt(z, 0, v.DimZ-1)
	return v.Voxel(x, y, z)
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
