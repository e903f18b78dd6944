package particles

import (
	"context"
	"time"
)

type point struct{ x, y float64 }

// Loop drives a Field from its own goroutine. Pointer and resize events are
// handed to the loop through single-slot mailboxes where the latest value
// wins, so the Field itself is only touched by Run.
type Loop struct {
	field    *Field
	interval time.Duration

	pointer chan point
	resize  chan point
}

// NewLoop wraps f. interval <= 0 means 60 frames per second.
func NewLoop(f *Field, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Loop{
		field:    f,
		interval: interval,
		pointer:  make(chan point, 1),
		resize:   make(chan point, 1),
	}
}

// Pointer queues a pointer move. It never blocks.
func (l *Loop) Pointer(x, y float64) {
	offer(l.pointer, point{x, y})
}

// Resize queues a container resize. It never blocks.
func (l *Loop) Resize(w, h float64) {
	offer(l.resize, point{w, h})
}

// Run ticks the field into s until ctx is done, then stops the field.
// Cancellation is checked before every frame so no tick runs after it.
func (l *Loop) Run(ctx context.Context, s Surface) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	defer l.field.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case p := <-l.pointer:
			l.field.PointerMove(p.x, p.y)
		case sz := <-l.resize:
			l.field.Resize(sz.x, sz.y)
		case now := <-ticker.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.field.Tick(s, now.Sub(last))
			last = now
		}
	}
}

func offer(ch chan point, p point) {
	for {
		select {
		case ch <- p:
			return
		default:
		}
		// Drop the stale value and retry.
		select {
		case <-ch:
		default:
		}
	}
}
