package checkbox

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Grayscale converts img to a grayscale raster of identical dimensions
// using the Rec. 601 luma weights: 0.299 R + 0.587 G + 0.114 B. Alpha
// is preserved. Applying it to an already-gray raster is a no-op on
// the color channels.
func Grayscale(img image.Image) *image.NRGBA {
	return imaging.Grayscale(img)
}

// luminance returns the 8-bit luma of a single pixel, reading the
// non-premultiplied channels so a semi-transparent pixel keeps its
// actual gray value instead of darkening with its alpha. For grayscale
// pixels (R=G=B) the weights collapse and this reads the value back
// unchanged.
func luminance(c color.Color) uint8 {
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	y := 0.299*float64(nrgba.R) + 0.587*float64(nrgba.G) + 0.114*float64(nrgba.B)
	return uint8(math.Round(y))
}
