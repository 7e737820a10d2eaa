package core

// Color is an RGBA color with float64 channels. It is the framebuffer
// element type and the entry type of transfer function lookup tables.
type Color struct {
	R, G, B, A float64
}

// NewColor creates a new Color
func NewColor(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ColorFromVec3 builds a color from an RGB vector and an alpha value
func ColorFromVec3(rgb Vec3, a float64) Color {
	return Color{R: rgb.X, G: rgb.Y, B: rgb.Z, A: a}
}

// RGB returns the color channels as a vector for shading and compositing math
func (c Color) RGB() Vec3 {
	return Vec3{X: c.R, Y: c.G, Z: c.B}
}
