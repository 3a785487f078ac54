package checkbox

import "image"

// DefaultThreshold is the cut point used when the optimal-threshold
// search finds no valid split (empty or uniform histogram).
const DefaultThreshold = 128

// ApplyThreshold resamples gray onto a gridSize×gridSize grid and
// classifies each cell: luminance strictly below threshold is "on"
// (checked, dark). A cell exactly at the threshold stays "off".
func ApplyThreshold(gray image.Image, threshold, gridSize int) Grid {
	samples := Resample(gray, gridSize)
	grid := make(Grid, len(samples))
	for i, lum := range samples {
		grid[i] = int(lum) < threshold
	}
	return grid
}

// OptimalThreshold picks the luminance cut point maximizing the
// between-class variance wB·wF·(μB−μF)² over a 256-bin histogram
// (Otsu's method). Candidate cuts mirror the classifier: at cut c the
// background class is every pixel with luminance < c. The first
// maximum wins on ties.
func OptimalThreshold(gray image.Image) int {
	var hist [256]int
	bounds := gray.Bounds()
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[luminance(gray.At(x, y))]++
			total++
		}
	}
	if total == 0 {
		return DefaultThreshold
	}

	var sum float64
	for v, n := range hist {
		sum += float64(v * n)
	}

	var (
		wB      int
		sumB    float64
		best    = -1
		bestVar = -1.0
	)
	for c := 0; c < 256; c++ {
		if c > 0 {
			wB += hist[c-1]
			sumB += float64((c - 1) * hist[c-1])
		}
		wF := total - wB
		if wB == 0 || wF == 0 {
			continue
		}
		fB := float64(wB) / float64(total)
		fF := float64(wF) / float64(total)
		muB := sumB / float64(wB)
		muF := (sum - sumB) / float64(wF)
		v := fB * fF * (muB - muF) * (muB - muF)
		if v > bestVar {
			bestVar = v
			best = c
		}
	}
	if best < 0 {
		return DefaultThreshold
	}
	return best
}
