// Package render casts one ray per output pixel through a scalar volume
// and folds the samples into a color under one of six render modes.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/MihaiAnton/volume-visualization/pkg/core"
	"github.com/MihaiAnton/volume-visualization/pkg/volume"
)

// sampleStep is the fixed world-unit distance between successive samples
// along a ray, shared by all marching modes.
const sampleStep = 1.0

// isoColor is the flat surface color of the isosurface mode.
var isoColor = core.NewVec3(0.8, 0.8, 0.2)

// GradientSource supplies the local gradient used by the shaded modes.
// volume.GradientVolume is the standard provider.
type GradientSource interface {
	GradientAt(pos core.Vec3) volume.Gradient
}

// Renderer owns the output framebuffer and the parallel tiling strategy.
// It holds non-owning references to the volume, gradient source and camera
// and never mutates them; the config is the one piece it owns a copy of,
// replaced atomically by SetConfig. Config changes and framebuffer reads
// must not be interleaved with an in-flight Render; the renderer provides
// no locking of its own.
type Renderer struct {
	volume      *volume.Volume
	gradient    GradientSource
	camera      Camera
	config      Config
	framebuffer []core.Color
}

// NewRenderer creates a renderer and allocates the framebuffer to the
// initial configuration's resolution.
func NewRenderer(vol *volume.Volume, gradient GradientSource, camera Camera, config Config) *Renderer {
	r := &Renderer{
		volume:   vol,
		gradient: gradient,
		camera:   camera,
		config:   config,
	}
	r.resizeImage(config.Width, config.Height)
	return r
}

// SetConfig replaces the live configuration. The framebuffer is
// reallocated only when the resolution changed.
func (r *Renderer) SetConfig(config Config) {
	if config.Width != r.config.Width || config.Height != r.config.Height {
		r.resizeImage(config.Width, config.Height)
	}
	r.config = config
}

// Config returns the live configuration
func (r *Renderer) Config() Config {
	return r.config
}

// Framebuffer returns a view of the live framebuffer, row-major with
// index Width*y+x, without copying. The view stays valid until the next
// SetConfig that changes the resolution.
func (r *Renderer) Framebuffer() []core.Color {
	return r.framebuffer
}

func (r *Renderer) resizeImage(width, height int) {
	r.framebuffer = make([]core.Color, width*height)
}

func (r *Renderer) resetImage() {
	for i := range r.framebuffer {
		r.framebuffer[i] = core.Color{}
	}
}

// frameState holds the per-render derived values shared by all tiles.
type frameState struct {
	bounds       core.Bounds
	volumeCenter core.Vec3
	planeNormal  core.Vec3
}

// Render synchronously produces a complete frame for the current camera,
// config and volume state. Tiles of the output are rendered concurrently;
// every pixel is a pure function of its coordinate, so the schedule is not
// observable in the result.
func (r *Renderer) Render() {
	r.resetImage()

	dims := core.NewVec3(float64(r.volume.DimX), float64(r.volume.DimY), float64(r.volume.DimZ))
	frame := frameState{
		bounds:       core.NewBounds(core.NewVec3(0, 0, 0), dims.Subtract(core.NewVec3(1, 1, 1))),
		volumeCenter: dims.Multiply(0.5),
		planeNormal:  r.camera.Forward().Normalize().Negate(),
	}

	tiles := newTileGrid(r.config.Width, r.config.Height, tileSize)
	renderTiles(tiles, r.config.Workers, func(tile image.Rectangle) {
		r.renderTile(tile, frame)
	})
}

// renderTile renders every pixel inside the tile bounds. Tiles are
// disjoint, so each invocation writes only framebuffer slots it alone owns.
func (r *Renderer) renderTile(tile image.Rectangle, frame frameState) {
	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		for x := tile.Min.X; x < tile.Max.X; x++ {
			ndc := core.NewVec2(
				2*float64(x)/float64(r.config.Width)-1,
				2*float64(y)/float64(r.config.Height)-1,
			)
			ray := r.camera.GenerateRay(ndc)

			// A miss is a normal outcome; the pixel keeps its cleared value.
			if !frame.bounds.IntersectRay(&ray) {
				continue
			}

			var pixel core.Color
			switch r.config.Mode {
			case ModeSlice:
				pixel = r.traceSlice(ray, frame)
			case ModeMIP:
				pixel = r.traceMIP(ray)
			case ModeIso:
				pixel = r.traceIso(ray)
			case ModeComposite:
				pixel = r.traceComposite(ray)
			case ModeTF2D:
				pixel = r.traceTF2D(ray)
			case ModeTF2DV2:
				pixel = r.traceTF2DV2(ray)
			}
			r.framebuffer[r.config.Width*y+x] = pixel
		}
	}
}

// sample reconstructs the scalar field under the configured interpolation
func (r *Renderer) sample(pos core.Vec3) float64 {
	return r.volume.Sample(pos, r.config.Interpolation)
}

// traceSlice takes a single sample where the ray crosses the plane through
// the volume center perpendicular to the camera forward vector.
func (r *Renderer) traceSlice(ray core.Ray, frame frameState) core.Color {
	t := frame.volumeCenter.Subtract(ray.Origin).Dot(frame.planeNormal) / ray.Direction.Dot(frame.planeNormal)
	value := r.sample(ray.At(t))
	gray := math.Max(value/r.volume.Maximum(), 0)
	return core.NewColor(gray, gray, gray, 1)
}

// traceMIP marches front to back keeping the running maximum sample.
// Incrementing the position instead of recomputing it from t each step is
// an accumulation optimization; the result is identical up to rounding.
func (r *Renderer) traceMIP(ray core.Ray) core.Color {
	maxValue := 0.0

	pos := ray.At(ray.TMin)
	increment := ray.Direction.Multiply(sampleStep)
	for t := ray.TMin; t <= ray.TMax; t += sampleStep {
		maxValue = math.Max(maxValue, r.sample(pos))
		pos = pos.Add(increment)
	}

	gray := maxValue / r.volume.Maximum()
	return core.NewColor(gray, gray, gray, 1)
}

// traceIso returns a flat color at the first sample exceeding the iso
// threshold. With shading enabled the crossing is refined by bisection
// (skipped when the very first sample already exceeds the threshold, since
// there is no bracketing sample behind it) and the color is Phong-shaded
// with the local gradient, using the eye as the light.
func (r *Renderer) traceIso(ray core.Ray) core.Color {
	pos := ray.At(ray.TMin)
	increment := ray.Direction.Multiply(sampleStep)

	if !r.config.Shading {
		for t := ray.TMin; t <= ray.TMax; t += sampleStep {
			if r.sample(pos) > r.config.IsoValue {
				return core.ColorFromVec3(isoColor, 1)
			}
			pos = pos.Add(increment)
		}
		return core.Color{}
	}

	bracketed := false
	for t := ray.TMin; t <= ray.TMax; t += sampleStep {
		if r.sample(pos) > r.config.IsoValue {
			if bracketed {
				t = r.bisect(ray, t-sampleStep, t, r.config.IsoValue)
				pos = ray.At(t)
			}
			shaded := PhongShade(isoColor, r.gradient.GradientAt(pos), r.camera.Position(), ray.Direction)
			return core.ColorFromVec3(shaded, 1)
		}
		bracketed = true
		pos = pos.Add(increment)
	}
	return core.Color{}
}

// bisect narrows [t0, t1] until the sampled value is within tolerance of
// the iso value. The iteration cap keeps degenerate brackets from looping
// forever.
func (r *Renderer) bisect(ray core.Ray, t0, t1, isoValue float64) float64 {
	const maxIterations = 500
	const tolerance = 1e-4

	tMid := (t0 + t1) / 2
	for i := 0; i < maxIterations; i++ {
		tMid = (t0 + t1) / 2
		value := r.sample(ray.At(tMid))
		if math.Abs(value-isoValue) < tolerance {
			return tMid
		}
		if value < isoValue {
			t0 = tMid
		} else {
			t1 = tMid
		}
	}
	return tMid
}

// traceComposite marches back to front applying the over operator to the
// 1D transfer function color of each sample.
func (r *Renderer) traceComposite(ray core.Ray) core.Color {
	pos := ray.At(ray.TMax)
	decrement := ray.Direction.Multiply(sampleStep)

	var accum core.Vec3
	for t := ray.TMax; t >= ray.TMin; t -= sampleStep {
		entry := LookupLUT(r.config.LUT, r.config.LUTStart, r.config.LUTRange, r.sample(pos))
		rgb := entry.RGB()
		if r.config.Shading {
			rgb = PhongShade(rgb, r.gradient.GradientAt(pos), r.camera.Position(), ray.Direction)
		}
		accum = rgb.Multiply(entry.A).Add(accum.Multiply(1 - entry.A))
		pos = pos.Subtract(decrement)
	}
	return core.ColorFromVec3(accum, 1)
}

// traceTF2D marches back to front; opacity comes from the single-triangle
// 2D transfer function scaled by the configured base alpha, the color is
// the configured flat color.
func (r *Renderer) traceTF2D(ray core.Ray) core.Color {
	pos := ray.At(ray.TMax)
	decrement := ray.Direction.Multiply(sampleStep)

	triangle := r.config.TF2D
	base := triangle.Color.RGB()

	var accum core.Vec3
	for t := ray.TMax; t >= ray.TMin; t -= sampleStep {
		intensity := r.sample(pos)
		gradient := r.gradient.GradientAt(pos)
		opacity := opacity2D(triangle, intensity, gradient.Magnitude) * triangle.Color.A

		rgb := base
		if r.config.Shading {
			rgb = PhongShade(rgb, gradient, r.camera.Position(), ray.Direction)
		}
		accum = rgb.Multiply(opacity).Add(accum.Multiply(1 - opacity))
		pos = pos.Subtract(decrement)
	}
	return core.ColorFromVec3(accum, 1)
}

// traceTF2DV2 marches back to front; opacity and color both come from the
// dual-triangle lookup, where the larger opacity wins on overlap.
func (r *Renderer) traceTF2DV2(ray core.Ray) core.Color {
	pos := ray.At(ray.TMax)
	decrement := ray.Direction.Multiply(sampleStep)

	var accum core.Vec3
	for t := ray.TMax; t >= ray.TMin; t -= sampleStep {
		intensity := r.sample(pos)
		gradient := r.gradient.GradientAt(pos)

		opacity, entry := resolveDual(r.config.TF2DV2, intensity, gradient.Magnitude)
		opacity *= entry.A

		accum = entry.RGB().Multiply(opacity).Add(accum.Multiply(1 - opacity))
		pos = pos.Subtract(decrement)
	}
	return core.ColorFromVec3(accum, 1)
}

// ToImage converts the framebuffer to an 8-bit RGBA image with channels
// clamped to [0,1].
func (r *Renderer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.config.Width, r.config.Height))
	for y := 0; y < r.config.Height; y++ {
		for x := 0; x < r.config.Width; x++ {
			pixel := r.framebuffer[r.config.Width*y+x]
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * clamp01(pixel.R)),
				G: uint8(255 * clamp01(pixel.G)),
				B: uint8(255 * clamp01(pixel.B)),
				A: uint8(255 * clamp01(pixel.A)),
			})
		}
	}
	return img
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
