package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// nearZero is the magnitude below which an accumulated pixel reads as black
const nearZero = 1e-8

// ImageBuffer accumulates unnormalized color samples per pixel.
// Row 0 is the top of the image.
type ImageBuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major sums of samples
}

// NewImageBuffer creates a zeroed buffer
func NewImageBuffer(width, height int) *ImageBuffer {
	return &ImageBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// Add accumulates one sample into pixel (x, y)
func (b *ImageBuffer) Add(x, y int, sample core.Vec3) {
	i := y*b.Width + x
	b.Pixels[i] = b.Pixels[i].Add(sample)
}

// At returns the raw accumulated sum at (x, y)
func (b *ImageBuffer) At(x, y int) core.Vec3 {
	return b.Pixels[y*b.Width+x]
}

// Merge adds other into b element-wise
func (b *ImageBuffer) Merge(other *ImageBuffer) error {
	if other.Width != b.Width || other.Height != b.Height {
		return fmt.Errorf("cannot merge %dx%d buffer into %dx%d buffer",
			other.Width, other.Height, b.Width, b.Height)
	}
	for i, c := range other.Pixels {
		b.Pixels[i] = b.Pixels[i].Add(c)
	}
	return nil
}

// GetColor returns the pixel's average over totalSamples, gamma corrected
// with a square root
func (b *ImageBuffer) GetColor(x, y, totalSamples int) core.Vec3 {
	sum := b.At(x, y)
	if math.Abs(sum.X) < nearZero && math.Abs(sum.Y) < nearZero && math.Abs(sum.Z) < nearZero {
		return core.Vec3{}
	}

	scale := 1.0 / float64(totalSamples)
	return core.NewVec3(
		math.Sqrt(scale*sum.X),
		math.Sqrt(scale*sum.Y),
		math.Sqrt(scale*sum.Z),
	)
}

// to8Bit quantizes a gamma-corrected channel to [0, 255]
func to8Bit(c float64) uint8 {
	if math.IsNaN(c) {
		return 0
	}
	return uint8(256 * math.Max(0, math.Min(c, 0.999)))
}

func (b *ImageBuffer) rgba(x, y, totalSamples int) color.RGBA {
	c := b.GetColor(x, y, totalSamples)
	return color.RGBA{R: to8Bit(c.X), G: to8Bit(c.Y), B: to8Bit(c.Z), A: 255}
}

// ToImage converts the buffer into an 8-bit image
func (b *ImageBuffer) ToImage(totalSamples int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			img.SetRGBA(x, y, b.rgba(x, y, totalSamples))
		}
	}
	return img
}

// WritePPM writes the buffer as a plain-text (P3) PPM image
func (b *ImageBuffer) WritePPM(w io.Writer, totalSamples int) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "P3\n%d %d\n255\n", b.Width, b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := b.rgba(x, y, totalSamples)
			fmt.Fprintf(out, "%d %d %d\n", c.R, c.G, c.B)
		}
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to write ppm: %w", err)
	}
	return nil
}
