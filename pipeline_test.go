package checkbox_test

import (
	"image/color"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/kevin-cantwell/checkbox"
)

var _ = Describe("ProcessImage", func() {
	It("rejects a missing file before anything else", func() {
		_, err := checkbox.ProcessImage(checkbox.File{})
		Expect(checkbox.IsKind(err, checkbox.ErrNoFile)).To(BeTrue())
	})

	It("rejects undeclared unsupported formats by sniffing", func() {
		f := checkbox.File{Data: []byte("not an image at all")}
		_, err := checkbox.ProcessImage(f)
		Expect(checkbox.IsKind(err, checkbox.ErrUnsupportedFormat)).To(BeTrue())
	})

	It("rejects oversized files before any decode attempt", func() {
		f := checkbox.File{MIME: "image/png", Data: make([]byte, checkbox.MaxImageBytes+1)}
		_, err := checkbox.ProcessImage(f)
		Expect(checkbox.IsKind(err, checkbox.ErrFileTooLarge)).To(BeTrue())
	})

	It("rejects images smaller than the minimum dimensions", func() {
		f := pngFile(uniformNRGBA(4, 4, color.NRGBA{0, 0, 0, 255}))
		_, err := checkbox.ProcessImage(f)
		Expect(checkbox.IsKind(err, checkbox.ErrImageTooSmall)).To(BeTrue())
	})

	It("rejects images larger than the maximum dimensions", func() {
		f := pngFile(uniformNRGBA(checkbox.MaxDimension+1, 20, color.NRGBA{0, 0, 0, 255}))
		_, err := checkbox.ProcessImage(f)
		Expect(checkbox.IsKind(err, checkbox.ErrImageTooLarge)).To(BeTrue())
	})

	It("produces an all-checked grid for a black image and a high threshold", func() {
		f := pngFile(uniformNRGBA(16, 16, color.NRGBA{0, 0, 0, 255}))
		result, err := checkbox.ProcessImage(f, checkbox.WithGridSize(4), checkbox.WithThreshold(200))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Grid).To(HaveLen(16))
		Expect(result.Grid.On()).To(Equal(16))
		Expect(result.Threshold).To(Equal(200))
	})

	It("produces an all-unchecked grid for a black image and threshold zero", func() {
		f := pngFile(uniformNRGBA(16, 16, color.NRGBA{0, 0, 0, 255}))
		result, err := checkbox.ProcessImage(f, checkbox.WithGridSize(4), checkbox.WithThreshold(0))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Grid.On()).To(Equal(0))
	})

	It("computes the threshold automatically when none is supplied", func() {
		f := pngFile(bimodalNRGBA(20, 20, 10, 240))
		result, err := checkbox.ProcessImage(f, checkbox.WithGridSize(10))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Threshold).To(BeNumerically(">", 10))
		Expect(result.Threshold).To(BeNumerically("<", 240))
		// Dark half checked, bright half not.
		Expect(result.Grid.On()).To(Equal(50))
	})
})
