package checkbox

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	_ "golang.org/x/image/webp"
)

// Processing limits. Inputs outside these bounds are rejected before
// any further work happens.
const (
	MaxImageBytes    = 10 << 20
	MaxSequenceBytes = 50 << 20
	MinDimension     = 10
	MaxDimension     = 1000
	MaxFrames        = 100

	DefaultGridSize = 50
)

// File is an uploaded binary blob with its declared content type. When
// MIME is empty the content is sniffed instead.
type File struct {
	Name string
	MIME string
	Data []byte
}

func (f File) contentType() string {
	if f.MIME != "" {
		return f.MIME
	}
	return http.DetectContentType(f.Data)
}

var stillTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Option configures a processing run.
type Option func(*config)

type config struct {
	gridSize  int
	threshold int
	auto      bool
	progress  func(pct int)
	filter    func(image.Image) image.Image
}

// WithGridSize sets the logical grid resolution. Values below 1 are
// ignored.
func WithGridSize(n int) Option {
	return func(cfg *config) {
		if n >= 1 {
			cfg.gridSize = n
		}
	}
}

// WithThreshold supplies a fixed luminance cut point in [0,255],
// disabling the automatic search.
func WithThreshold(t int) Option {
	return func(cfg *config) {
		if t >= 0 && t <= 255 {
			cfg.threshold = t
			cfg.auto = false
		}
	}
}

// WithFrameFilter runs fn over every decoded raster of a sequence
// before grayscale conversion, so adjustments reach each frame rather
// than only the first. Filters may change dimensions; the dimension
// gate applies to the filtered raster. The single-frame pipeline does
// not use it — still images are adjusted before upload.
func WithFrameFilter(fn func(image.Image) image.Image) Option {
	return func(cfg *config) {
		cfg.filter = fn
	}
}

// WithProgress registers a callback invoked with a non-decreasing
// percentage as frames of a sequence complete.
func WithProgress(fn func(pct int)) Option {
	return func(cfg *config) {
		cfg.progress = fn
	}
}

func newConfig(opts []Option) config {
	cfg := config{
		gridSize: DefaultGridSize,
		auto:     true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Result is the outcome of a single-frame run: the grid plus the
// threshold that actually produced it (relevant when it was computed
// automatically).
type Result struct {
	Grid      Grid
	GridSize  int
	Threshold int
}

// ProcessImage runs the still-image pipeline: validate, decode,
// grayscale, threshold (automatic unless supplied), resample. Each
// gate aborts the whole run on failure; no partial grid is ever
// returned. The automatic threshold is computed from the
// full-resolution grayscale raster, before any resampling.
func ProcessImage(f File, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)
	if err := validateFile(f, stillTypes, MaxImageBytes); err != nil {
		return nil, err
	}
	img, err := decodeStill(f)
	if err != nil {
		return nil, err
	}
	gray := Grayscale(img)
	threshold := cfg.threshold
	if cfg.auto {
		threshold = OptimalThreshold(gray)
	}
	return &Result{
		Grid:      ApplyThreshold(gray, threshold, cfg.gridSize),
		GridSize:  cfg.gridSize,
		Threshold: threshold,
	}, nil
}

func validateFile(f File, accepted map[string]bool, maxBytes int) error {
	if len(f.Data) == 0 {
		return errorf(ErrNoFile, "no file provided")
	}
	if mime := f.contentType(); !accepted[mime] {
		return errorf(ErrUnsupportedFormat, "unsupported format %q", mime)
	}
	if len(f.Data) > maxBytes {
		return errorf(ErrFileTooLarge, "file is %d bytes; limit is %d bytes", len(f.Data), maxBytes)
	}
	return nil
}

func decodeStill(f File) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return nil, errorf(ErrDecode, "could not decode image: %v", err)
	}
	if err := validateDimensions(img.Bounds().Dx(), img.Bounds().Dy()); err != nil {
		return nil, err
	}
	return img, nil
}

func validateDimensions(w, h int) error {
	if w < MinDimension || h < MinDimension {
		return errorf(ErrImageTooSmall, "image is %dx%d; minimum is %dx%d", w, h, MinDimension, MinDimension)
	}
	if w > MaxDimension || h > MaxDimension {
		return errorf(ErrImageTooLarge, "image is %dx%d; maximum is %dx%d", w, h, MaxDimension, MaxDimension)
	}
	return nil
}
