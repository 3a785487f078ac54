package checkbox

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	"image/gif"
	"time"
)

// Frame is one processed animation step: a grid plus its display
// duration at 1× speed. Disposal is the source container's disposal
// hint, retained as metadata; frames here are already full rasters so
// playback never needs it.
type Frame struct {
	Grid     Grid
	Duration time.Duration
	Disposal byte
}

// Sequence is an ordered list of processed frames sharing one grid
// size and threshold.
type Sequence struct {
	Frames    []Frame
	GridSize  int
	Threshold int
	Width     int
	Height    int
}

var sequenceTypes = map[string]bool{
	"image/gif": true,
}

// Zero-delay frames are displayed for this long, matching common
// viewer behavior.
const defaultFrameDelay = 100 * time.Millisecond

// ProcessSequence runs the multi-frame pipeline on an animated GIF:
// validate, decode every frame with its true pixel content and delay,
// then grayscale/threshold/resample each frame with a single shared
// threshold. When the threshold is automatic it is computed once, from
// the first frame, and reused for the rest.
//
// Decoding composites each frame onto a persistent screen according to
// its disposal method, so a frame that only carries a changed region
// still yields its full raster. Frames beyond MaxFrames are dropped,
// not an error. ctx is checked between frames; a cancelled run returns
// ctx's error and no sequence. Any frame failing aborts the whole run.
func ProcessSequence(ctx context.Context, f File, opts ...Option) (*Sequence, error) {
	cfg := newConfig(opts)
	if err := validateFile(f, sequenceTypes, MaxSequenceBytes); err != nil {
		return nil, err
	}
	giff, err := gif.DecodeAll(bytes.NewReader(f.Data))
	if err != nil {
		return nil, errorf(ErrDecode, "could not decode animation: %v", err)
	}
	if len(giff.Image) == 0 {
		return nil, errorf(ErrDecode, "animation has no frames")
	}
	raws := decodeFrames(giff)
	var first image.Image = raws[0].img
	if cfg.filter != nil {
		first = cfg.filter(first)
	}
	bounds := first.Bounds()
	if err := validateDimensions(bounds.Dx(), bounds.Dy()); err != nil {
		return nil, err
	}

	threshold := cfg.threshold
	if cfg.auto {
		threshold = OptimalThreshold(Grayscale(first))
	}

	seq := &Sequence{
		GridSize:  cfg.gridSize,
		Threshold: threshold,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}
	for i, raw := range raws {
		select {
		case <-ctx.Done():
			return nil, wrapProcessing(ctx.Err())
		default:
		}
		var img image.Image = raw.img
		if i == 0 {
			img = first
		} else if cfg.filter != nil {
			img = cfg.filter(img)
		}
		gray := Grayscale(img)
		seq.Frames = append(seq.Frames, Frame{
			Grid:     ApplyThreshold(gray, threshold, cfg.gridSize),
			Duration: raw.delay,
			Disposal: raw.disposal,
		})
		if cfg.progress != nil {
			cfg.progress((i + 1) * 100 / len(raws))
		}
	}
	return seq, nil
}

type rawFrame struct {
	img      *image.RGBA
	delay    time.Duration
	disposal byte
}

// decodeFrames flattens a decoded GIF into full per-frame rasters.
// Each source frame is drawn over the running screen, a snapshot is
// taken, and then the screen is restored or cleared as the frame's
// disposal method dictates.
func decodeFrames(giff *gif.GIF) []rawFrame {
	bounds := image.Rect(0, 0, giff.Config.Width, giff.Config.Height)
	if bounds.Empty() {
		bounds = giff.Image[0].Bounds()
	}
	screen := image.NewRGBA(bounds)

	count := len(giff.Image)
	if count > MaxFrames {
		count = MaxFrames
	}
	frames := make([]rawFrame, 0, count)
	for i := 0; i < count; i++ {
		src := giff.Image[i]
		disposal := byte(gif.DisposalNone)
		if i < len(giff.Disposal) {
			disposal = giff.Disposal[i]
		}

		var previous *image.RGBA
		if disposal == gif.DisposalPrevious {
			previous = cloneRGBA(screen)
		}
		draw.Draw(screen, src.Bounds(), src, src.Bounds().Min, draw.Over)

		delay := defaultFrameDelay
		if i < len(giff.Delay) && giff.Delay[i] > 0 {
			// GIF delays are in hundredths of a second.
			delay = time.Duration(giff.Delay[i]) * 10 * time.Millisecond
		}
		frames = append(frames, rawFrame{img: cloneRGBA(screen), delay: delay, disposal: disposal})

		switch disposal {
		case gif.DisposalPrevious:
			screen = previous
		case gif.DisposalBackground:
			draw.Draw(screen, src.Bounds(), image.Transparent, image.ZP, draw.Src)
		}
	}
	return frames
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}
