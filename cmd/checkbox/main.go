package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/codegangsta/cli"
	"github.com/disintegration/imaging"
	"github.com/kevin-cantwell/checkbox"
	"github.com/nfnt/resize"
	"golang.org/x/crypto/ssh/terminal"
	yaml "gopkg.in/yaml.v2"
)

type profile struct {
	GridSize  int     `yaml:"grid_size"`
	Threshold *int    `yaml:"threshold"`
	Speed     float64 `yaml:"speed"`
	Size      string  `yaml:"size"`
}

func main() {
	app := cli.NewApp()
	app.Version = "0.1.0"
	app.Name = "checkbox"
	app.Usage = "A command-line tool for converting images into checkbox art."
	app.UsageText = "1) checkbox [options] [command] [file|url]\n" +
		/*      */ "   2) checkbox [options] [command] < [file]"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "grid,g",
			Usage: "`GRID` sets the grid resolution (cells per side). 0 fits the terminal.",
			Value: 0,
		},
		cli.IntFlag{
			Name:  "threshold,t",
			Usage: "`THRESHOLD` is the luminance cut point, 0-255. -1 picks one automatically.",
			Value: -1,
		},
		cli.StringFlag{
			Name:  "profile",
			Usage: "`PROFILE` is a yaml file holding default grid, threshold, speed and size.",
		},
		cli.Float64Flag{
			Name:  "gamma",
			Usage: "`GAMMA` = 1.0 gives the original image. GAMMA less than 1.0 darkens the image and GAMMA greater than 1.0 lightens it.",
			Value: 1.0,
		},
		cli.Float64Flag{
			Name:  "brightness,b",
			Usage: "`BRIGHTNESS` = 0 gives the original image. BRIGHTNESS = -100 gives solid black image. BRIGHTNESS = 100 gives solid white image.",
			Value: 0.0,
		},
		cli.Float64Flag{
			Name:  "contrast,c",
			Usage: "`CONTRAST` = 0 gives the original image. CONTRAST = -100 gives solid grey image. CONTRAST = 100 gives maximum contrast.",
			Value: 0.0,
		},
		cli.Float64Flag{
			Name:  "sharpen,s",
			Usage: "`SHARPEN` = 0 gives the original image. SHARPEN greater than 0 sharpens the image.",
			Value: 0.0,
		},
		cli.BoolFlag{
			Name:  "invert,i",
			Usage: "Inverts the image before thresholding.",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "convert",
			Usage:     "Prints the image as a checkbox grid.",
			ArgsUsage: "[file|url]",
			Action: func(c *cli.Context) {
				convertCmd(c)
			},
		},
		{
			Name:      "play",
			Usage:     "Animates a gif as checkbox grids in the terminal. CTRL-C to quit.",
			ArgsUsage: "[file|url]",
			Flags: []cli.Flag{
				cli.Float64Flag{
					Name:  "speed",
					Usage: "`SPEED` multiplies playback speed; 0.25-4 are sensible values.",
					Value: 0,
				},
			},
			Action: func(c *cli.Context) {
				playCmd(c)
			},
		},
		{
			Name:      "export",
			Usage:     "Writes the grid as png files, or an animated gif for gif input.",
			ArgsUsage: "[file|url]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out,o",
					Usage: "`OUT` is the output file path.",
					Value: "checkbox.png",
				},
				cli.StringFlag{
					Name:  "size",
					Usage: "`SIZE` is the exported cell size: small, medium or large.",
				},
				cli.BoolFlag{
					Name:  "gif",
					Usage: "Export gif input as a single animated gif instead of per-frame pngs.",
				},
			},
			Action: func(c *cli.Context) {
				exportCmd(c)
			},
		},
	}
	app.Action = func(c *cli.Context) {
		convertCmd(c)
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func convertCmd(c *cli.Context) {
	f := readInput(c)
	result, err := checkbox.ProcessImage(preprocess(c, f), options(c)...)
	if err != nil {
		exit(err.Error(), 1)
	}
	text, err := checkbox.RenderGridText(result.Grid, result.GridSize)
	if err != nil {
		exit(err.Error(), 1)
	}
	fmt.Print(text)
}

func playCmd(c *cli.Context) {
	f := readInput(c)

	opts := append(options(c), frameFilter(c), checkbox.WithProgress(func(pct int) {
		fmt.Fprintf(os.Stderr, "\rprocessing... %3d%%", pct)
		if pct == 100 {
			fmt.Fprint(os.Stderr, "\r                   \r")
		}
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	term := &checkbox.Xterm{Writer: os.Stdout}
	term.ShowCursor(false)
	defer term.ShowCursor(true)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
	}()

	seq, err := checkbox.ProcessSequence(ctx, f, opts...)
	if err != nil {
		term.ShowCursor(true)
		exit(err.Error(), 1)
	}

	player := checkbox.NewPlayer(seq)
	if speed := c.Float64("speed"); speed > 0 {
		player.SetSpeed(speed)
	} else if p := loadProfile(c); p.Speed > 0 {
		player.SetSpeed(p.Speed)
	}

	printFrame(seq, 0, nil)
	player.Play()
	err = player.Run(ctx, func(index int) {
		printFrame(seq, index, term)
	})
	if err != nil && err != context.Canceled {
		term.ShowCursor(true)
		exit(err.Error(), 1)
	}
}

func printFrame(seq *checkbox.Sequence, index int, term checkbox.Terminal) {
	text, err := checkbox.RenderGridText(seq.Frames[index].Grid, seq.GridSize)
	if err != nil {
		exit(err.Error(), 1)
	}
	if term != nil {
		term.ResetCursor(seq.GridSize)
	}
	fmt.Print(text)
}

func exportCmd(c *cli.Context) {
	f := readInput(c)
	size := checkbox.ParseSizeClass(c.String("size"))
	if !c.IsSet("size") {
		size = checkbox.ParseSizeClass(loadProfile(c).Size)
	}
	out := c.String("out")

	if f.MIME == "image/gif" {
		opts := append(options(c), frameFilter(c))
		seq, err := checkbox.ProcessSequence(context.Background(), f, opts...)
		if err != nil {
			exit(err.Error(), 1)
		}
		if c.Bool("gif") {
			data, err := checkbox.RenderSequenceGIF(seq, size)
			if err != nil {
				exit(err.Error(), 1)
			}
			writeFile(withExt(out, ".gif"), data)
			return
		}
		frames, err := checkbox.RenderSequence(seq, size)
		if err != nil {
			exit(err.Error(), 1)
		}
		base := out[:len(out)-len(filepath.Ext(out))]
		for i, data := range frames {
			writeFile(fmt.Sprintf("%s-%03d.png", base, i), data)
		}
		return
	}

	result, err := checkbox.ProcessImage(preprocess(c, f), options(c)...)
	if err != nil {
		exit(err.Error(), 1)
	}
	data, err := checkbox.RenderGrid(result.Grid, result.GridSize, size)
	if err != nil {
		exit(err.Error(), 1)
	}
	writeFile(out, data)
}

// readInput resolves the input argument as a file, then a url, then
// falls back to stdin, and sniffs its content type.
func readInput(c *cli.Context) checkbox.File {
	var reader io.Reader
	var name string

	if input := c.Args().First(); input != "" {
		name = input
		if file, err := os.Open(input); err == nil {
			defer file.Close()
			reader = file
		} else {
			resp, err := http.Get(input)
			if err != nil {
				exit(err.Error(), 1)
			}
			defer resp.Body.Close()
			reader = resp.Body
		}
	} else {
		reader = os.Stdin
	}

	data, err := ioutil.ReadAll(reader)
	if err != nil {
		exit(err.Error(), 1)
	}
	return checkbox.File{
		Name: name,
		MIME: http.DetectContentType(data),
		Data: data,
	}
}

// preprocess applies the requested image adjustments and scales
// oversized stills down to the pipeline's dimension cap. Untouched
// inputs pass through as-is.
func preprocess(c *cli.Context, f checkbox.File) checkbox.File {
	adjusted := adjustmentsRequested(c)

	img, _, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return f // let the pipeline report the decode failure
	}
	oversized := img.Bounds().Dx() > checkbox.MaxDimension || img.Bounds().Dy() > checkbox.MaxDimension
	if !adjusted && !oversized {
		return f
	}

	img = adjust(c, img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		exit(err.Error(), 1)
	}
	return checkbox.File{Name: f.Name, MIME: "image/png", Data: buf.Bytes()}
}

func adjustmentsRequested(c *cli.Context) bool {
	return c.GlobalIsSet("gamma") || c.GlobalIsSet("brightness") || c.GlobalIsSet("contrast") ||
		c.GlobalIsSet("sharpen") || c.GlobalBool("invert")
}

// frameFilter adapts the adjustment flags into a per-frame filter for
// the multi-frame pipeline, so gif input gets the same treatment every
// still does.
func frameFilter(c *cli.Context) checkbox.Option {
	return checkbox.WithFrameFilter(func(img image.Image) image.Image {
		return adjust(c, img)
	})
}

// adjust applies the adjustment flags, scaling oversized rasters down
// to the pipeline's dimension cap first.
func adjust(c *cli.Context, img image.Image) image.Image {
	if img.Bounds().Dx() > checkbox.MaxDimension || img.Bounds().Dy() > checkbox.MaxDimension {
		img = resize.Thumbnail(checkbox.MaxDimension, checkbox.MaxDimension, img, resize.NearestNeighbor)
	}
	if c.GlobalIsSet("gamma") {
		img = imaging.AdjustGamma(img, c.GlobalFloat64("gamma"))
	}
	if c.GlobalIsSet("brightness") {
		img = imaging.AdjustBrightness(img, c.GlobalFloat64("brightness"))
	}
	if c.GlobalIsSet("sharpen") {
		img = imaging.Sharpen(img, c.GlobalFloat64("sharpen"))
	}
	if c.GlobalIsSet("contrast") {
		img = imaging.AdjustContrast(img, c.GlobalFloat64("contrast"))
	}
	if c.GlobalBool("invert") {
		img = imaging.Invert(img)
	}
	return img
}

func options(c *cli.Context) []checkbox.Option {
	p := loadProfile(c)

	var opts []checkbox.Option
	switch {
	case c.GlobalInt("grid") > 0:
		opts = append(opts, checkbox.WithGridSize(c.GlobalInt("grid")))
	case p.GridSize > 0:
		opts = append(opts, checkbox.WithGridSize(p.GridSize))
	default:
		opts = append(opts, checkbox.WithGridSize(fitGridSize()))
	}
	switch {
	case c.GlobalInt("threshold") >= 0:
		opts = append(opts, checkbox.WithThreshold(c.GlobalInt("threshold")))
	case p.Threshold != nil:
		opts = append(opts, checkbox.WithThreshold(*p.Threshold))
	}
	return opts
}

func loadProfile(c *cli.Context) profile {
	var p profile
	path := c.GlobalString("profile")
	if path == "" {
		return p
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		exit(err.Error(), 1)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		exit(err.Error(), 1)
	}
	return p
}

// fitGridSize picks the largest preset grid that fits the terminal,
// leaving one line for the prompt.
func fitGridSize() int {
	cols, lines, err := terminal.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 50
	}
	max := cols
	if lines-1 < max {
		max = lines - 1
	}
	for _, preset := range []int{80, 50, 30} {
		if preset <= max {
			return preset
		}
	}
	if max < 1 {
		return 1
	}
	return max
}

func withExt(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}

func writeFile(path string, data []byte) {
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		exit(err.Error(), 1)
	}
	fmt.Println(path)
}

func exit(msg string, code int) {
	fmt.Println(msg)
	os.Exit(code)
}
