package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// missingTextureColor flags an image texture that has no pixel data
var missingTextureColor = core.NewVec3(0, 1, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 at the top
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering.
// UV is clamped to [0, 1]; v=0 is the bottom row of the image.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return missingTextureColor
	}

	u := clamp01(uv.X)
	v := 1.0 - clamp01(uv.Y)

	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))

	// u or v of exactly 1 lands one past the last pixel
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}

	return t.Pixels[y*t.Width+x]
}

func clamp01(x float64) float64 {
	return max(0, min(1, x))
}
