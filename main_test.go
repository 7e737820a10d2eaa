package main

import (
	"image"
	"image/color"
	"testing"

	"github.com/MihaiAnton/volume-visualization/pkg/render"
	"github.com/MihaiAnton/volume-visualization/pkg/volume"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        render.Mode
		expectError bool
	}{
		{"slice mode", "slice", render.ModeSlice, false},
		{"mip mode", "mip", render.ModeMIP, false},
		{"iso mode", "iso", render.ModeIso, false},
		{"composite mode", "composite", render.ModeComposite, false},
		{"tf2d mode", "tf2d", render.ModeTF2D, false},
		{"tf2dv2 mode", "tf2dv2", render.ModeTF2DV2, false},
		{"unknown mode", "raytrace", 0, true},
		{"empty mode", "", 0, true},
		{"case sensitive", "MIP", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMode(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for mode %q, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error for mode %q: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Expected mode %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseInterpolation(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        volume.InterpolationMode
		expectError bool
	}{
		{"nearest", "nearest", volume.Nearest, false},
		{"trilinear", "trilinear", volume.Trilinear, false},
		{"tricubic", "tricubic", volume.Tricubic, false},
		{"unknown", "quadratic", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInterpolation(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for interpolation %q, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error for interpolation %q: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Expected interpolation %v, got %v", tt.want, got)
			}
		})
	}
}

func TestGrayscaleLUT(t *testing.T) {
	lut := grayscaleLUT(256)
	if len(lut) != 256 {
		t.Fatalf("Expected 256 entries, got %d", len(lut))
	}
	if lut[0].R != 0 || lut[0].G != 0 || lut[0].B != 0 || lut[0].A != 0 {
		t.Errorf("Expected transparent black first entry, got %+v", lut[0])
	}
	last := lut[255]
	if last.R != 1 || last.G != 1 || last.B != 1 || last.A != 1 {
		t.Errorf("Expected opaque white last entry, got %+v", last)
	}
	for i := 1; i < len(lut); i++ {
		if lut[i].R < lut[i-1].R || lut[i].A < lut[i-1].A {
			t.Fatalf("Expected monotone ramp, entry %d decreased: %+v -> %+v", i, lut[i-1], lut[i])
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	data := make([]uint16, 8)
	for i := range data {
		data[i] = uint16(100 * i)
	}
	vol := volume.NewVolume(data, 2, 2, 2)

	config := defaultConfig(vol, render.ModeComposite, volume.Trilinear)
	if config.Mode != render.ModeComposite {
		t.Errorf("Expected composite mode, got %v", config.Mode)
	}
	if config.LUTStart != vol.Minimum() {
		t.Errorf("Expected LUT start %v, got %v", vol.Minimum(), config.LUTStart)
	}
	if config.LUTRange != vol.Maximum()-vol.Minimum() {
		t.Errorf("Expected LUT range %v, got %v", vol.Maximum()-vol.Minimum(), config.LUTRange)
	}
	if config.TF2D.Radius <= 0 {
		t.Errorf("Expected positive default triangle radius, got %v", config.TF2D.Radius)
	}
	if config.TF2DV2[0].Intensity >= config.TF2DV2[1].Intensity {
		t.Errorf("Expected ordered dual triangle centers, got %v and %v",
			config.TF2DV2[0].Intensity, config.TF2DV2[1].Intensity)
	}
}

func TestDefaultConfigConstantVolume(t *testing.T) {
	// A constant volume has zero value span; the config must not divide by it.
	vol := volume.NewVolume([]uint16{7, 7, 7, 7, 7, 7, 7, 7}, 2, 2, 2)
	config := defaultConfig(vol, render.ModeMIP, volume.Nearest)

	if config.LUTRange <= 0 {
		t.Errorf("Expected positive LUT range for constant volume, got %v", config.LUTRange)
	}
	if config.TF2D.Radius <= 0 {
		t.Errorf("Expected positive triangle radius for constant volume, got %v", config.TF2D.Radius)
	}
}

func TestUpscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(1, 0, color.RGBA{255, 255, 255, 255})

	dst := upscale(src, 4)
	if dst.Bounds().Dx() != 12 || dst.Bounds().Dy() != 8 {
		t.Fatalf("Expected 12x8 image, got %dx%d", dst.Bounds().Dx(), dst.Bounds().Dy())
	}

	// Nearest-neighbour scaling keeps the source pixel blocks intact.
	r, g, b, a := dst.At(5, 1).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Errorf("Expected white block at scaled coordinates, got (%v,%v,%v,%v)", r, g, b, a)
	}
	r, _, _, _ = dst.At(0, 0).RGBA()
	if r != 0 {
		t.Errorf("Expected untouched pixel to stay black, got red %v", r)
	}
}
