package render

import (
	"image"
	"runtime"
	"sync"
)

// tileSize is the edge length of the square tiles the output image is
// partitioned into for parallel rendering.
const tileSize = 64

// newTileGrid partitions a width x height image into disjoint tiles that
// together cover every pixel exactly once.
func newTileGrid(width, height, size int) []image.Rectangle {
	var tiles []image.Rectangle
	for y0 := 0; y0 < height; y0 += size {
		for x0 := 0; x0 < width; x0 += size {
			tiles = append(tiles, image.Rect(x0, y0, min(x0+size, width), min(y0+size, height)))
		}
	}
	return tiles
}

// renderTiles runs fn over every tile using a fixed pool of workers. Each
// pixel reads only immutable shared state and writes one framebuffer slot
// it alone owns, so no synchronization beyond the final join is needed.
// workers == 1 renders sequentially with identical results, which is
// useful for deterministic debugging.
func renderTiles(tiles []image.Rectangle, workers int, fn func(image.Rectangle)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers == 1 {
		for _, tile := range tiles {
			fn(tile)
		}
		return
	}

	tasks := make(chan image.Rectangle, len(tiles))
	for _, tile := range tiles {
		tasks <- tile
	}
	close(tasks)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tile := range tasks {
				fn(tile)
			}
		}()
	}
	wg.Wait()
}
