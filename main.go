package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/MihaiAnton/volume-visualization/pkg/core"
	"github.com/MihaiAnton/volume-visualization/pkg/render"
	"github.com/MihaiAnton/volume-visualization/pkg/volume"
)

func main() {
	input := flag.String("input", "", "Path to an AVS .fld volume file (.gz accepted)")
	output := flag.String("output", "render.png", "Output PNG path")
	modeName := flag.String("mode", "mip", "Render mode: slice, mip, iso, composite, tf2d or tf2dv2")
	width := flag.Int("width", 512, "Render width in pixels")
	height := flag.Int("height", 512, "Render height in pixels")
	isoValue := flag.Float64("iso", 95, "Iso threshold for the iso mode")
	shading := flag.Bool("shading", false, "Enable gradient-based Phong shading")
	interpName := flag.String("interpolation", "trilinear", "Interpolation: nearest, trilinear or tricubic")
	workers := flag.Int("workers", 0, "Number of render workers (0 = one per CPU)")
	scale := flag.Int("scale", 1, "Integer upscale factor for the output image")
	flag.Parse()

	if *input == "" {
		fmt.Println("Volume Raycaster")
		fmt.Println("Usage: volray -input volume.fld [options]")
		fmt.Println()
		flag.PrintDefaults()
		return
	}

	mode, err := parseMode(*modeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	interpolation, err := parseInterpolation(*interpName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	vol, err := volume.LoadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading volume: %v\n", err)
		os.Exit(1)
	}
	if vol.VoxelCount() == 0 {
		fmt.Fprintln(os.Stderr, "Error: volume has no data, check the input file header")
		os.Exit(1)
	}

	gradients := volume.NewGradientVolume(vol)
	camera := defaultCamera(vol, float64(*width)/float64(*height))
	config := defaultConfig(vol, mode, interpolation)
	config.Width = *width
	config.Height = *height
	config.IsoValue = *isoValue
	config.Shading = *shading
	config.Workers = *workers

	renderer := render.NewRenderer(vol, gradients, camera, config)

	startTime := time.Now()
	renderer.Render()
	fmt.Printf("Render completed in %v (%s mode, %s interpolation)\n",
		time.Since(startTime), mode, interpolation)

	img := renderer.ToImage()
	if *scale > 1 {
		img = upscale(img, *scale)
	}

	file, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", *output)
}

// parseMode maps a mode name from the command line to a render mode
func parseMode(name string) (render.Mode, error) {
	switch name {
	case "slice":
		return render.ModeSlice, nil
	case "mip":
		return render.ModeMIP, nil
	case "iso":
		return render.ModeIso, nil
	case "composite":
		return render.ModeComposite, nil
	case "tf2d":
		return render.ModeTF2D, nil
	case "tf2dv2":
		return render.ModeTF2DV2, nil
	default:
		return 0, fmt.Errorf("unknown render mode %q", name)
	}
}

// parseInterpolation maps an interpolation name to a sampling mode
func parseInterpolation(name string) (volume.InterpolationMode, error) {
	switch name {
	case "nearest":
		return volume.Nearest, nil
	case "trilinear":
		return volume.Trilinear, nil
	case "tricubic":
		return volume.Tricubic, nil
	default:
		return 0, fmt.Errorf("unknown interpolation mode %q", name)
	}
}

// defaultCamera places the eye outside the volume looking at its center,
// far enough back that the whole volume fits the view.
func defaultCamera(vol *volume.Volume, aspect float64) *render.PerspectiveCamera {
	dims := core.NewVec3(float64(vol.DimX), float64(vol.DimY), float64(vol.DimZ))
	center := dims.Multiply(0.5)
	position := center.Add(core.NewVec3(0, 0, dims.Length()*1.5))
	return render.NewPerspectiveCamera(position, center, core.NewVec3(0, 1, 0), 45, aspect)
}

// defaultConfig derives transfer function settings from the volume
// statistics: a grayscale opacity ramp over the full value range for the
// 1D LUT and triangles centered in the range for the 2D functions.
func defaultConfig(vol *volume.Volume, mode render.Mode, interpolation volume.InterpolationMode) render.Config {
	span := vol.Maximum() - vol.Minimum()
	if span == 0 {
		span = 1
	}
	mid := vol.Minimum() + span/2

	return render.Config{
		Mode:          mode,
		Interpolation: interpolation,
		LUT:           grayscaleLUT(256),
		LUTStart:      vol.Minimum(),
		LUTRange:      span,
		TF2D: render.TF2DTriangle{
			Intensity: mid,
			Radius:    span / 4,
			Color:     core.NewColor(1, 0.8, 0.6, 0.5),
		},
		TF2DV2: [2]render.TF2DTriangle{
			{Intensity: vol.Minimum() + span/4, Radius: span / 8, Color: core.NewColor(0.2, 0.4, 1, 0.4)},
			{Intensity: vol.Minimum() + 3*span/4, Radius: span / 8, Color: core.NewColor(1, 0.3, 0.2, 0.6)},
		},
	}
}

// grayscaleLUT builds a ramp table whose brightness and opacity both rise
// with intensity.
func grayscaleLUT(size int) []core.Color {
	lut := make([]core.Color, size)
	for i := range lut {
		v := float64(i) / float64(size-1)
		lut[i] = core.NewColor(v, v, v, v)
	}
	return lut
}

// upscale enlarges the rendered image by an integer factor with
// nearest-neighbour sampling, keeping pixels crisp.
func upscale(img *image.RGBA, factor int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx()*factor, img.Bounds().Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}
