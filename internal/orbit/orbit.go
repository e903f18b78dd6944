// Package orbit places note widgets on three concentric rings.
package orbit

import (
	"math"
	"time"

	"github.com/iburimskiy/orbital-notes/internal/config"
)

// Ring is one of the concentric orbits.
type Ring struct {
	Radius float64
	Period time.Duration // one full revolution
}

// Assignment is where an item sits and how it moves.
type Assignment struct {
	Ring      int
	Radius    float64
	Angle     float64 // radians at t=0
	X, Y      float64
	CenterX   float64
	CenterY   float64
	Period    time.Duration
	Direction int // +1 clockwise on screen, -1 counter-clockwise
}

// Rings lists the orbits from the innermost out.
func Rings() []Ring {
	rings := make([]Ring, len(config.OrbitRadii))
	for i := range rings {
		rings[i] = Ring{Radius: config.OrbitRadii[i], Period: config.OrbitPeriods[i]}
	}
	return rings
}

// Place assigns item index of total to a ring and an evenly spaced angle.
// total must be at least 1. contentLength does not affect placement; it is
// taken so callers can size and place from the same item data.
func Place(index, total, contentLength int, centerX, centerY float64) Assignment {
	_ = contentLength
	ring := index % 3
	angle := float64(index) * 2 * math.Pi / float64(total)
	radius := config.OrbitRadii[ring]

	direction := 1
	if ring%2 != 0 {
		direction = -1
	}
	return Assignment{
		Ring:      ring,
		Radius:    radius,
		Angle:     angle,
		X:         radius*math.Cos(angle) + centerX,
		Y:         radius*math.Sin(angle) + centerY,
		CenterX:   centerX,
		CenterY:   centerY,
		Period:    config.OrbitPeriods[ring],
		Direction: direction,
	}
}

// At returns the position after drifting along the ring for elapsed.
func (a Assignment) At(elapsed time.Duration) (x, y float64) {
	angle := a.Angle
	if a.Period > 0 {
		turns := elapsed.Seconds() / a.Period.Seconds()
		angle += float64(a.Direction) * 2 * math.Pi * math.Mod(turns, 1)
	}
	return a.Radius*math.Cos(angle) + a.CenterX, a.Radius*math.Sin(angle) + a.CenterY
}

// WidgetSize is the diameter of a note widget: it grows with the content
// and is capped so titles stay legible.
func WidgetSize(contentLength int) float64 {
	size := config.MinWidget + float64(contentLength)/20
	return math.Max(config.MinWidget, math.Min(config.MaxWidget, size))
}
