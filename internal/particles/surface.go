package particles

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ImageSurface draws onto an ebiten image with canvas-style transforms.
type ImageSurface struct {
	img *ebiten.Image
	geo ebiten.GeoM
}

func NewImageSurface(img *ebiten.Image) *ImageSurface {
	return &ImageSurface{img: img}
}

// Reset points the surface at a new target, e.g. the screen of this frame.
func (s *ImageSurface) Reset(img *ebiten.Image) {
	s.img = img
	s.geo.Reset()
}

func (s *ImageSurface) ClearRect(x, y, w, h float64) {
	if s.img == nil {
		return
	}
	x0, y0 := s.geo.Apply(x, y)
	x1, y1 := s.geo.Apply(x+w, y+h)
	r := image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1)))
	if r.Canon().Intersect(s.img.Bounds()).Eq(s.img.Bounds()) {
		s.img.Clear()
		return
	}
	if sub, ok := s.img.SubImage(r.Canon()).(*ebiten.Image); ok {
		sub.Clear()
	}
}

// Translate moves the origin in the current user space.
func (s *ImageSurface) Translate(dx, dy float64) {
	s.geo = translated(s.geo, dx, dy)
}

func (s *ImageSurface) SetTransform(a, b, c, d, e, f float64) {
	s.geo = matrix(a, b, c, d, e, f)
}

func (s *ImageSurface) FillCircle(cx, cy, r float64, clr color.Color) {
	if s.img == nil {
		return
	}
	x, y := s.geo.Apply(cx, cy)
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r*scaleOf(s.geo)), clr, true)
}

// translated returns g·T(dx,dy): the translation applies before g.
func translated(g ebiten.GeoM, dx, dy float64) ebiten.GeoM {
	var t ebiten.GeoM
	t.Translate(dx, dy)
	t.Concat(g)
	return t
}

// matrix builds the affine transform [a c e; b d f].
func matrix(a, b, c, d, e, f float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, a)
	g.SetElement(1, 0, b)
	g.SetElement(0, 1, c)
	g.SetElement(1, 1, d)
	g.SetElement(0, 2, e)
	g.SetElement(1, 2, f)
	return g
}

// scaleOf is the uniform scale a radius picks up under g.
func scaleOf(g ebiten.GeoM) float64 {
	det := g.Element(0, 0)*g.Element(1, 1) - g.Element(0, 1)*g.Element(1, 0)
	return math.Sqrt(math.Abs(det))
}
