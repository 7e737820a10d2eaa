// Package volume owns the discrete 16-bit scalar grid and reconstructs a
// continuous field from it under three interpolation policies.
package volume

import (
	"fmt"
	"math"

	"github.com/MihaiAnton/volume-visualization/pkg/core"
)

// InterpolationMode selects how Sample reconstructs the scalar field
// between lattice points.
type InterpolationMode int

const (
	Nearest InterpolationMode = iota
	Trilinear
	Tricubic
)

// String returns the name of the interpolation mode
func (m InterpolationMode) String() string {
	switch m {
	case Nearest:
		return "nearest"
	case Trilinear:
		return "trilinear"
	case Tricubic:
		return "tricubic"
	default:
		return fmt.Sprintf("InterpolationMode(%d)", int(m))
	}
}

// kernelA is the Catmull-Rom spline parameter of the tricubic kernel.
const kernelA = -0.5

// Volume holds a 3D grid of 16-bit scalar samples together with statistics
// derived once at construction (minimum, maximum, histogram). A Volume is
// immutable after construction, so it can be shared freely between render
// workers without synchronization.
type Volume struct {
	DimX, DimY, DimZ int
	FileName         string

	data        []uint16
	elementSize int
	minimum     float64
	maximum     float64
	histogram   []int
}

// NewVolume builds a volume from raw samples in x-fastest order.
// len(data) must equal dimX*dimY*dimZ.
func NewVolume(data []uint16, dimX, dimY, dimZ int) *Volume {
	v := &Volume{
		DimX:        dimX,
		DimY:        dimY,
		DimZ:        dimZ,
		data:        data,
		elementSize: 2,
	}
	v.computeStatistics()
	return v
}

// Minimum returns the smallest sample value in the volume
func (v *Volume) Minimum() float64 {
	return v.minimum
}

// Maximum returns the largest sample value in the volume
func (v *Volume) Maximum() float64 {
	return v.maximum
}

// Histogram returns the per-value sample counts, indexed by sample value.
// Its length is Maximum()+1. The slice is shared, not copied; treat it as
// read-only.
func (v *Volume) Histogram() []int {
	return v.histogram
}

// VoxelCount returns the total number of samples in the grid
func (v *Volume) VoxelCount() int {
	return len(v.data)
}

// Voxel returns the sample at integer lattice coordinates as a float, or 0
// when the flat index falls outside the data.
func (v *Volume) Voxel(x, y, z int) float64 {
	i := x + v.DimX*(y+v.DimY*z)
	if i < 0 || i >= len(v.data) {
		return 0
	}
	return float64(v.data[i])
}

// Sample reconstructs the scalar field at an arbitrary position using the
// given interpolation mode. Positions outside the valid domain return 0.
// An unknown mode is a programming error and panics.
func (v *Volume) Sample(pos core.Vec3, mode InterpolationMode) float64 {
	switch mode {
	case Nearest:
		return v.sampleNearest(pos)
	case Trilinear:
		return v.sampleTrilinear(pos)
	case Tricubic:
		return v.sampleTricubic(pos)
	default:
		panic(fmt.Sprintf("volume: unknown interpolation mode %d", int(mode)))
	}
}

// sampleNearest rounds each coordinate half-up to the nearest lattice
// point. The distance between neighbouring voxels is 1 in all directions.
func (v *Volume) sampleNearest(pos core.Vec3) float64 {
	if pos.X+0.5 < 0 || pos.Y+0.5 < 0 || pos.Z+0.5 < 0 ||
		pos.X+0.5 >= float64(v.DimX) || pos.Y+0.5 >= float64(v.DimY) || pos.Z+0.5 >= float64(v.DimZ) {
		return 0
	}
	return v.Voxel(int(pos.X+0.5), int(pos.Y+0.5), int(pos.Z+0.5))
}

// inInterpolationDomain reports whether the position has a full unit cell
// around it, i.e. coord in [0, dim-1) on every axis.
func (v *Volume) inInterpolationDomain(pos core.Vec3) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.Z >= 0 &&
		pos.X < float64(v.DimX-1) && pos.Y < float64(v.DimY-1) && pos.Z < float64(v.DimZ-1)
}

// sampleTrilinear interpolates along x at the four corners of the unit
// cell, then along y, then along z.
func (v *Volume) sampleTrilinear(pos core.Vec3) float64 {
	if !v.inInterpolationDomain(pos) {
		return 0
	}

	x, y, z := int(pos.X), int(pos.Y), int(pos.Z)
	fx := pos.X - float64(x)
	fy := pos.Y - float64(y)
	fz := pos.Z - float64(z)

	t0 := lerp(v.Voxel(x, y, z), v.Voxel(x+1, y, z), fx)
	t1 := lerp(v.Voxel(x, y+1, z), v.Voxel(x+1, y+1, z), fx)
	t2 := lerp(v.Voxel(x, y, z+1), v.Voxel(x+1, y, z+1), fx)
	t3 := lerp(v.Voxel(x, y+1, z+1), v.Voxel(x+1, y+1, z+1), fx)
	return lerp(lerp(t0, t1, fy), lerp(t2, t3, fy), fz)
}

// lerp linearly interpolates g0 and g1 by factor
func lerp(g0, g1, factor float64) float64 {
	return (1-factor)*g0 + factor*g1
}

// cubicWeight is the piecewise-cubic kernel h(x); zero beyond radius 2.
func cubicWeight(x float64) float64 {
	x = math.Abs(x)
	if x < 1 {
		return (kernelA+2)*x*x*x - (kernelA+3)*x*x + 1
	}
	if x < 2 {
		return kernelA*x*x*x - 5*kernelA*x*x + 8*kernelA*x - 4*kernelA
	}
	return 0
}

// cubicInterpolate blends four consecutive samples with the cubic kernel
func cubicInterpolate(g0, g1, g2, g3, factor float64) float64 {
	return cubicWeight(1+factor)*g0 + cubicWeight(factor)*g1 +
		cubicWeight(1-factor)*g2 + cubicWeight(2-factor)*g3
}

// bicubicXY computes a bicubic value in the XY plane at integer depth z,
// interpolating along y in four x-columns and then blending along x.
func (v *Volume) bicubicXY(x, y float64, z int) float64 {
	xi, yi := int(x), int(y)
	fx := x - float64(xi)
	fy := y - float64(yi)

	var columns [4]float64
	for i := -1; i <= 2; i++ {
		cx := int(x + float64(i))
		columns[i+1] = cubicInterpolate(
			v.Voxel(cx, yi-1, z),
			v.Voxel(cx, yi, z),
			v.Voxel(cx, yi+1, z),
			v.Voxel(cx, yi+2, z),
			fy)
	}
	return cubicInterpolate(columns[0], columns[1], columns[2], columns[3], fx)
}

// sampleTricubic evaluates a bicubic value on the four z-planes centered
// on the sample and cubically blends them along z. The kernel can
// overshoot near edges, so negative results are clamped to 0.
func (v *Volume) sampleTricubic(pos core.Vec3) float64 {
	if !v.inInterpolationDomain(pos) {
		return 0
	}

	z := int(pos.Z)
	fz := pos.Z - float64(z)

	var planes [4]float64
	for i := -1; i <= 2; i++ {
		planes[i+1] = v.bicubicXY(pos.X, pos.Y, int(pos.Z+float64(i)))
	}

	value := cubicInterpolate(planes[0], planes[1], planes[2], planes[3], fz)
	if value < 0 {
		return 0
	}
	return value
}

// computeStatistics derives min, max and the histogram in one pass over
// the data. Called once at construction.
func (v *Volume) computeStatistics() {
	if len(v.data) == 0 {
		return
	}

	minV, maxV := v.data[0], v.data[0]
	for _, s := range v.data {
		if s < minV {
			minV = s
		}
		if s > maxV {
			maxV = s
		}
	}
	v.minimum = float64(minV)
	v.maximum = float64(maxV)

	v.histogram = make([]int, int(maxV)+1)
	for _, s := range v.data {
		v.histogram[s]++
	}
}
