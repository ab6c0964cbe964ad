package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// NewCheckerboardTexture creates a checkerboard image texture.
// Unlike CheckerTexture the pattern follows the surface UV, not world position.
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/checkSize+y/checkSize)%2 == 0 {
				pixels[y*width+x] = color1
			} else {
				pixels[y*width+x] = color2
			}
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewLatitudeBandTexture creates an image texture of horizontal bands,
// alternating between land and sea colors. Stands in for an earth map when
// no image file is available.
func NewLatitudeBandTexture(width, height, bands int, land, sea core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)
	bandHeight := max(1, height/max(1, bands))

	for y := 0; y < height; y++ {
		color := sea
		if (y/bandHeight)%2 == 1 {
			color = land
		}
		for x := 0; x < width; x++ {
			pixels[y*width+x] = color
		}
	}

	return NewImageTexture(width, height, pixels)
}
