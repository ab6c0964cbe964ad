package material

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// TestImageTextureEvaluate tests basic texture sampling
func TestImageTextureEvaluate(t *testing.T) {
	// Layout:
	//   red   green
	//   blue  white
	red := core.NewVec3(1, 0, 0)
	green := core.NewVec3(0, 1, 0)
	blue := core.NewVec3(0, 0, 1)
	white := core.NewVec3(1, 1, 1)
	texture := NewImageTexture(2, 2, []core.Vec3{red, green, blue, white})

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		// v=0 is the bottom row after the flip
		{"Bottom left", core.NewVec2(0.1, 0.1), blue},
		{"Bottom right", core.NewVec2(0.9, 0.1), white},
		{"Top left", core.NewVec2(0.1, 0.9), red},
		{"Top right", core.NewVec2(0.9, 0.9), green},
		{"u=1 clamps to last column", core.NewVec2(1.0, 0.9), green},
		{"v=0 clamps to last row", core.NewVec2(0.1, 0.0), blue},
		{"Out of range clamps", core.NewVec2(-3, 5), red},
		{"Beyond one clamps", core.NewVec2(7, -2), white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Evaluate(tt.uv, core.Vec3{}); got != tt.expected {
				t.Errorf("UV %v: expected %v, got %v", tt.uv, tt.expected, got)
			}
		})
	}
}

func TestImageTextureMissingData(t *testing.T) {
	cyan := core.NewVec3(0, 1, 1)

	for name, texture := range map[string]*ImageTexture{
		"empty":     NewImageTexture(0, 0, nil),
		"truncated": NewImageTexture(4, 4, make([]core.Vec3, 3)),
	} {
		t.Run(name, func(t *testing.T) {
			if got := texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{}); got != cyan {
				t.Errorf("Expected debug cyan for missing data, got %v", got)
			}
		})
	}
}

func TestProceduralImageTextures(t *testing.T) {
	a := core.NewVec3(1, 1, 1)
	b := core.NewVec3(0, 0, 0)

	checker := NewCheckerboardTexture(4, 4, 2, a, b)
	if checker.Pixels[0] != a || checker.Pixels[2] != b || checker.Pixels[2*4+2] != a {
		t.Error("Unexpected checkerboard layout")
	}

	bands := NewLatitudeBandTexture(2, 8, 4, a, b)
	if bands.Pixels[0] != b || bands.Pixels[2*2] != a {
		t.Error("Unexpected band layout")
	}
}
