package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and records the last N samples into a ring buffer
// so the renderer can pulse the hub with whatever was just played.
type Tap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	mu        sync.RWMutex
}

func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	t.record(samples[:n])
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

func (t *Tap) record(samples [][2]float64) {
	if len(samples) == 0 || len(t.buffer) == 0 {
		return
	}
	t.mu.Lock()
	for _, s := range samples {
		t.buffer[t.nextIndex] = s
		t.nextIndex++
		if t.nextIndex >= len(t.buffer) {
			t.nextIndex = 0
		}
	}
	t.mu.Unlock()
}

// Snapshot returns up to the last n samples, oldest first.
func (t *Tap) Snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > len(t.buffer) {
		n = len(t.buffer)
	}
	out := make([][2]float64, 0, n)
	// Walk backwards from nextIndex - 1
	idx := t.nextIndex - 1
	if idx < 0 {
		idx = len(t.buffer) - 1
	}
	for i := 0; i < n; i++ {
		out = append(out, t.buffer[idx])
		idx--
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
	}
	// reverse to chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Level is the RMS of the recent window mixed to mono, in [0,1].
func (t *Tap) Level(window int) float64 {
	samples := t.Snapshot(window)
	if len(samples) == 0 {
		return 0
	}
	var sumSquares float64
	for _, s := range samples {
		mono := (s[0] + s[1]) * 0.5
		sumSquares += mono * mono
	}
	return math.Min(1, math.Sqrt(sumSquares/float64(len(samples))))
}
