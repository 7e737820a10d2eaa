package render

import (
	"fmt"

	"github.com/MihaiAnton/volume-visualization/pkg/core"
	"github.com/MihaiAnton/volume-visualization/pkg/volume"
)

// Mode selects the per-ray accumulation strategy.
type Mode int

const (
	ModeSlice Mode = iota
	ModeMIP
	ModeIso
	ModeComposite
	ModeTF2D
	ModeTF2DV2
)

// String returns the name of the render mode
func (m Mode) String() string {
	switch m {
	case ModeSlice:
		return "slice"
	case ModeMIP:
		return "mip"
	case ModeIso:
		return "iso"
	case ModeComposite:
		return "composite"
	case ModeTF2D:
		return "tf2d"
	case ModeTF2DV2:
		return "tf2dv2"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// TF2DTriangle parameterizes one triangle of a 2D transfer function: the
// apex intensity, the half-width of the base at the top of the magnitude
// range, and the flat color (whose alpha acts as the base opacity).
type TF2DTriangle struct {
	Intensity float64
	Radius    float64
	Color     core.Color
}

// Config carries all render settings. The renderer takes a copy on
// SetConfig, so a Config can be mutated by the caller between frames.
type Config struct {
	Width, Height int

	Mode          Mode
	Interpolation volume.InterpolationMode
	IsoValue      float64
	Shading       bool

	// 1D transfer function lookup table and the scalar domain
	// [LUTStart, LUTStart+LUTRange) it maps from. The table must be
	// non-empty and the range non-zero.
	LUT      []core.Color
	LUTStart float64
	LUTRange float64

	TF2D   TF2DTriangle
	TF2DV2 [2]TF2DTriangle

	Workers int // render workers; 0 = one per CPU, 1 = sequential
}
