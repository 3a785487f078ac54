package checkbox_test

import (
	"image"
	"image/color"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/kevin-cantwell/checkbox"
)

var _ = Describe("OptimalThreshold", func() {
	It("lands strictly between the modes of a bimodal histogram", func() {
		img := bimodalNRGBA(20, 20, 10, 240)
		t := checkbox.OptimalThreshold(img)
		Expect(t).To(BeNumerically(">", 10))
		Expect(t).To(BeNumerically("<", 240))
	})

	It("falls back to the default on a uniform histogram", func() {
		img := uniformNRGBA(10, 10, color.NRGBA{7, 7, 7, 255})
		Expect(checkbox.OptimalThreshold(img)).To(Equal(checkbox.DefaultThreshold))
	})

	It("falls back to the default on an empty raster", func() {
		img := image.NewNRGBA(image.Rect(0, 0, 0, 0))
		Expect(checkbox.OptimalThreshold(img)).To(Equal(checkbox.DefaultThreshold))
	})
})

var _ = Describe("ApplyThreshold", func() {
	It("produces gridSize² cells for any grid size", func() {
		img := uniformNRGBA(16, 16, color.NRGBA{0, 0, 0, 255})
		for _, n := range []int{1, 3, 4, 30, 50} {
			Expect(checkbox.ApplyThreshold(img, 128, n)).To(HaveLen(n * n))
		}
	})

	It("checks every cell of a black image under a high threshold", func() {
		img := uniformNRGBA(4, 4, color.NRGBA{0, 0, 0, 255})
		grid := checkbox.ApplyThreshold(img, 200, 4)
		Expect(grid.On()).To(Equal(16))
	})

	It("checks no cell of a black image under threshold zero", func() {
		img := uniformNRGBA(4, 4, color.NRGBA{0, 0, 0, 255})
		grid := checkbox.ApplyThreshold(img, 0, 4)
		Expect(grid.On()).To(Equal(0))
	})

	It("classifies semi-transparent pixels by their actual gray value", func() {
		img := uniformNRGBA(8, 8, color.NRGBA{255, 255, 255, 128})
		gray := checkbox.Grayscale(img)
		Expect(checkbox.ApplyThreshold(gray, 200, 2).On()).To(Equal(0))
	})

	It("does not darken luminance read from premultiplied rasters", func() {
		img := image.NewRGBA(image.Rect(0, 0, 8, 8))
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				// Stored premultiplied as {128,128,128,128}.
				img.Set(x, y, color.NRGBA{255, 255, 255, 128})
			}
		}
		Expect(checkbox.ApplyThreshold(img, 200, 2).On()).To(Equal(0))
	})

	It("classifies luminance exactly at the threshold as off", func() {
		img := uniformNRGBA(8, 8, color.NRGBA{100, 100, 100, 255})
		Expect(checkbox.ApplyThreshold(img, 100, 2).On()).To(Equal(0))
		Expect(checkbox.ApplyThreshold(img, 101, 2).On()).To(Equal(4))
	})
})
