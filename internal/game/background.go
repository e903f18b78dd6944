package game

import (
	"image/color"

	"github.com/aquilax/go-perlin"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const bandHeight = 4

var (
	slate  = color.RGBA{R: 15, G: 23, B: 42, A: 255}
	purple = color.RGBA{R: 88, G: 28, B: 135, A: 255}
)

// background is a slate-purple-slate vertical gradient whose bands wobble
// with slow perlin noise.
type background struct {
	noise *perlin.Perlin
}

func newBackground(seed int64) *background {
	return &background{noise: perlin.NewPerlin(2, 2, 3, seed)}
}

// colorAt returns the band colour at vertical position ratio in [0,1].
func (b *background) colorAt(ratio, t float64) color.RGBA {
	// Peak purple in the middle of the screen.
	mix := 1 - 2*abs(ratio-0.5)
	mix = clamp01(mix + 0.25*b.noise.Noise2D(ratio*3, t*0.05))
	return lerp(slate, purple, mix)
}

func (b *background) draw(screen *ebiten.Image, t float64) {
	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()
	if h == 0 {
		return
	}
	for y := 0; y < h; y += bandHeight {
		c := b.colorAt(float64(y)/float64(h), t)
		vector.DrawFilledRect(screen, 0, float32(y), float32(w), bandHeight, c, false)
	}
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
