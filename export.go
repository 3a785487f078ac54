package checkbox

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"strings"
	"time"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
)

// SizeClass selects the per-cell pixel size of raster exports.
type SizeClass int

const (
	Small SizeClass = iota
	Medium
	Large
)

// CellPixels returns the side length, in pixels, of one exported cell.
func (s SizeClass) CellPixels() int {
	switch s {
	case Small:
		return 4
	case Large:
		return 12
	default:
		return 8
	}
}

// ParseSizeClass maps "small", "medium" or "large" to a SizeClass.
// Anything else is Medium.
func ParseSizeClass(s string) SizeClass {
	switch strings.ToLower(s) {
	case "small":
		return Small
	case "large":
		return Large
	default:
		return Medium
	}
}

const (
	onGlyph  = '☑'
	offGlyph = '☐'
)

// RenderGridText renders the grid as checkbox glyphs, one row per
// line.
func RenderGridText(grid Grid, gridSize int) (string, error) {
	if err := validateGrid(grid, gridSize); err != nil {
		return "", err
	}
	var b strings.Builder
	for i, on := range grid {
		if on {
			b.WriteRune(onGlyph)
		} else {
			b.WriteRune(offGlyph)
		}
		if (i+1)%gridSize == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// RenderGrid renders the grid as PNG bytes: a white square image with
// a filled black square per checked cell.
func RenderGrid(grid Grid, gridSize int, size SizeClass) ([]byte, error) {
	img, err := renderGridImage(grid, gridSize, size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errorf(ErrExport, "encode png: %v", err)
	}
	return buf.Bytes(), nil
}

// RenderSequence renders every frame of the sequence as its own PNG,
// in source order.
func RenderSequence(seq *Sequence, size SizeClass) ([][]byte, error) {
	out := make([][]byte, 0, len(seq.Frames))
	for _, frame := range seq.Frames {
		data, err := RenderGrid(frame.Grid, seq.GridSize, size)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

var exportPalette = color.Palette{color.White, color.Black}

// RenderSequenceGIF renders the sequence as a genuine animated GIF,
// one frame per grid, carrying each frame's true delay. The animation
// loops forever.
func RenderSequenceGIF(seq *Sequence, size SizeClass) ([]byte, error) {
	anim := &gif.GIF{LoopCount: 0}
	for _, frame := range seq.Frames {
		img, err := renderGridImage(frame.Grid, seq.GridSize, size)
		if err != nil {
			return nil, err
		}
		paletted := image.NewPaletted(img.Bounds(), exportPalette)
		draw.Draw(paletted, paletted.Bounds(), img, image.ZP, draw.Src)
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, int(frame.Duration/(10*time.Millisecond)))
		anim.Disposal = append(anim.Disposal, gif.DisposalNone)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, errorf(ErrExport, "encode gif: %v", err)
	}
	return buf.Bytes(), nil
}

func renderGridImage(grid Grid, gridSize int, size SizeClass) (*image.RGBA, error) {
	if err := validateGrid(grid, gridSize); err != nil {
		return nil, err
	}
	px := size.CellPixels()
	side := gridSize * px
	img := image.NewRGBA(image.Rect(0, 0, side, side))

	gc := draw2dimg.NewGraphicContext(img)
	gc.SetFillColor(color.White)
	draw2dkit.Rectangle(gc, 0, 0, float64(side), float64(side))
	gc.Fill()

	gc.SetFillColor(color.Black)
	for i, on := range grid {
		if !on {
			continue
		}
		row, col := i/gridSize, i%gridSize
		x, y := float64(col*px), float64(row*px)
		draw2dkit.Rectangle(gc, x, y, x+float64(px), y+float64(px))
		gc.Fill()
	}
	return img, nil
}

func validateGrid(grid Grid, gridSize int) error {
	if gridSize < 1 {
		return errorf(ErrExport, "grid size %d; minimum is 1", gridSize)
	}
	if len(grid) != gridSize*gridSize {
		return errorf(ErrExport, "grid has %d cells; want %d for size %d", len(grid), gridSize*gridSize, gridSize)
	}
	return nil
}
