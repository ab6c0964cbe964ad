package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

const perlinPointCount = 256

// Perlin is a gradient noise generator. It is built once from a seeded
// random source and is read-only afterwards, so it can be shared between
// textures and render workers.
type Perlin struct {
	gradients [perlinPointCount]core.Vec3
	permX     [perlinPointCount]int
	permY     [perlinPointCount]int
	permZ     [perlinPointCount]int
}

// NewPerlin creates a noise generator with random unit gradients and three
// independently shuffled permutation tables.
func NewPerlin(random *rand.Rand) *Perlin {
	p := &Perlin{}
	for i := range p.gradients {
		p.gradients[i] = core.NewVec3(
			random.Float64()*2-1,
			random.Float64()*2-1,
			random.Float64()*2-1,
		).Normalize()
	}
	generatePerm(&p.permX, random)
	generatePerm(&p.permY, random)
	generatePerm(&p.permZ, random)
	return p
}

func generatePerm(perm *[perlinPointCount]int, random *rand.Rand) {
	for i := range perm {
		perm[i] = i
	}
	random.Shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
}

// Noise returns smoothed gradient noise in roughly [-1, 1] at point
func (p *Perlin) Noise(point core.Vec3) float64 {
	fx, fy, fz := math.Floor(point.X), math.Floor(point.Y), math.Floor(point.Z)
	u, v, w := point.X-fx, point.Y-fy, point.Z-fz
	i, j, k := int(fx), int(fy), int(fz)

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = p.gradients[p.permX[(i+di)&255]^
					p.permY[(j+dj)&255]^
					p.permZ[(k+dk)&255]]
			}
		}
	}

	return trilinearInterp(c, u, v, w)
}

// trilinearInterp blends the corner gradients with Hermite-smoothed weights
func trilinearInterp(c [2][2][2]core.Vec3, u, v, w float64) float64 {
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}
	return accum
}

// Turbulence sums depth octaves of noise, doubling the frequency and halving
// the weight each octave, and returns the absolute value.
func (p *Perlin) Turbulence(point core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(point)
		weight *= 0.5
		point = point.Multiply(2)
	}
	return math.Abs(accum)
}

// NoiseTexture is a marble-like gray pattern driven by Perlin turbulence
type NoiseTexture struct {
	Noise   *Perlin
	Scale   float64
	Octaves int
}

// NewNoiseTexture creates a noise texture over a shared generator
func NewNoiseTexture(noise *Perlin, scale float64, octaves int) *NoiseTexture {
	return &NoiseTexture{Noise: noise, Scale: scale, Octaves: octaves}
}

// Evaluate returns a gray level in [0, 1]
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	gray := 0.5 * (1 + math.Sin(n.Scale*point.Z+10*n.Noise.Turbulence(point, n.Octaves)))
	return core.Splat(gray)
}
