package checkbox

import (
	"image"

	"github.com/disintegration/imaging"
)

// Resample scales img onto an n×n sampling area with a box filter and
// returns one luminance sample per cell, row-major. Box resampling
// averages the source region covered by each cell, so a cell's sample
// approximates the mean luminance of that region rather than a point
// sample. Both upsampling and downsampling are legal.
func Resample(img image.Image, n int) []uint8 {
	small := imaging.Resize(img, n, n, imaging.Box)
	out := make([]uint8, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			out[row*n+col] = luminance(small.At(col, row))
		}
	}
	return out
}
