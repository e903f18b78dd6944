package particles

import (
	"image/color"
	"math"
	"math/rand"
	"testing"
	"time"
)

type call struct {
	op   string
	args []float64
	clr  color.Color
}

// recorder is a Surface that remembers every call.
type recorder struct {
	calls []call
}

func (r *recorder) ClearRect(x, y, w, h float64) {
	r.calls = append(r.calls, call{op: "clear", args: []float64{x, y, w, h}})
}

func (r *recorder) Translate(dx, dy float64) {
	r.calls = append(r.calls, call{op: "translate", args: []float64{dx, dy}})
}

func (r *recorder) FillCircle(cx, cy, rad float64, clr color.Color) {
	r.calls = append(r.calls, call{op: "fill", args: []float64{cx, cy, rad}, clr: clr})
}

func (r *recorder) SetTransform(a, b, c, d, e, f float64) {
	r.calls = append(r.calls, call{op: "transform", args: []float64{a, b, c, d, e, f}})
}

func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func newTestField(cfg Config, seed int64) *Field {
	return New(cfg, WithRand(rand.New(rand.NewSource(seed))))
}

func TestResizePopulatesPool(t *testing.T) {
	for _, q := range []int{0, 1, 30, 200} {
		f := newTestField(Config{Quantity: q}, int64(q))
		f.Resize(800, 600)

		if f.Len() != q {
			t.Fatalf("quantity %d: pool has %d particles", q, f.Len())
		}
		for i, p := range f.Particles() {
			if p.Size < 0.1 || p.Size >= 2.1 {
				t.Errorf("particle %d: size %v out of [0.1, 2.1)", i, p.Size)
			}
			if p.TargetAlpha < 0.1 || p.TargetAlpha > 0.7 {
				t.Errorf("particle %d: targetAlpha %v out of [0.1, 0.7]", i, p.TargetAlpha)
			}
			if math.Abs(p.TargetAlpha*10-math.Round(p.TargetAlpha*10)) > 1e-9 {
				t.Errorf("particle %d: targetAlpha %v not rounded to one decimal", i, p.TargetAlpha)
			}
			if p.Magnetism < 0.1 || p.Magnetism >= 4.1 {
				t.Errorf("particle %d: magnetism %v out of [0.1, 4.1)", i, p.Magnetism)
			}
			if p.DX < -0.1 || p.DX >= 0.1 || p.DY < -0.1 || p.DY >= 0.1 {
				t.Errorf("particle %d: drift (%v, %v) out of [-0.1, 0.1)", i, p.DX, p.DY)
			}
			if p.X < 0 || p.X >= 800 || p.Y < 0 || p.Y >= 600 {
				t.Errorf("particle %d: position (%v, %v) outside container", i, p.X, p.Y)
			}
			if p.Alpha != 0 || p.TranslateX != 0 || p.TranslateY != 0 {
				t.Errorf("particle %d: not reset: %+v", i, p)
			}
		}
	}
}

func TestResizeRegeneratesIndependently(t *testing.T) {
	f := newTestField(Config{Quantity: 30}, 1)
	f.Resize(400, 300)
	first := f.Particles()
	f.Resize(400, 300)
	second := f.Particles()

	if len(first) != len(second) {
		t.Fatalf("pool length changed: %d vs %d", len(first), len(second))
	}
	same := true
	for i := range first {
		if first[i] != second[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("second resize reproduced the first pool")
	}
}

func TestResizeZeroContainer(t *testing.T) {
	f := newTestField(Config{Quantity: 10}, 7)
	f.Resize(0, 0)
	for i, p := range f.Particles() {
		if p.X != 0 || p.Y != 0 {
			t.Errorf("particle %d: expected degenerate position, got (%v, %v)", i, p.X, p.Y)
		}
	}
	f.Tick(&recorder{}, time.Millisecond)
}

func TestBackingSize(t *testing.T) {
	f := New(Config{}, WithDevicePixelRatio(2))
	f.Resize(300, 150.5)
	w, h := f.BackingSize()
	if w != 600 || h != 301 {
		t.Errorf("BackingSize = %dx%d, want 600x301", w, h)
	}
	if lw, lh := f.Size(); lw != 300 || lh != 150.5 {
		t.Errorf("Size = %vx%v", lw, lh)
	}
}

func TestTickReflectsBeforeIntegrating(t *testing.T) {
	f := newTestField(Config{Quantity: 1}, 3)
	f.Resize(100, 100)
	f.particles[0] = Particle{X: 50, Y: 101, DX: 0.05, DY: 0.08, Size: 1, Magnetism: 1, TargetAlpha: 0.5}

	f.Tick(&recorder{}, 0)

	p := f.particles[0]
	if p.DY != -0.08 {
		t.Errorf("DY = %v, want -0.08", p.DY)
	}
	if p.DX != 0.05 {
		t.Errorf("DX = %v, want unchanged 0.05", p.DX)
	}
	if math.Abs(p.Y-100.92) > 1e-9 {
		t.Errorf("Y = %v, want 100.92", p.Y)
	}

	f.particles[0] = Particle{X: -1, Y: 10, DX: -0.05, DY: 0.01, Size: 1, Magnetism: 1}
	f.Tick(&recorder{}, 0)
	if got := f.particles[0].DX; got != 0.05 {
		t.Errorf("left edge: DX = %v, want 0.05", got)
	}
}

func TestTickEasesTowardPointer(t *testing.T) {
	f := newTestField(Config{Quantity: 1, Staticity: 50, Ease: 10}, 5)
	f.Resize(500, 500)
	f.particles[0].Magnetism = 2
	f.PointerMove(100, -50)

	wantX := 100 / (50.0 / 2)
	wantY := -50 / (50.0 / 2)

	f.Tick(&recorder{}, 0)
	if got := f.particles[0].TranslateX; math.Abs(got-wantX/10) > 1e-12 {
		t.Errorf("first tick TranslateX = %v, want %v", got, wantX/10)
	}

	for i := 0; i < 500; i++ {
		f.Tick(&recorder{}, 0)
	}
	p := f.particles[0]
	if math.Abs(p.TranslateX-wantX) > 1e-6 || math.Abs(p.TranslateY-wantY) > 1e-6 {
		t.Errorf("translate = (%v, %v), want (%v, %v)", p.TranslateX, p.TranslateY, wantX, wantY)
	}
}

func TestTickEasesAlpha(t *testing.T) {
	f := newTestField(Config{Quantity: 5, Ease: 4, TwinkleInterval: time.Hour}, 9)
	f.Resize(200, 200)
	targets := make([]float64, f.Len())
	for i, p := range f.Particles() {
		targets[i] = p.TargetAlpha
	}
	for i := 0; i < 200; i++ {
		f.Tick(&recorder{}, time.Millisecond)
		for _, p := range f.Particles() {
			if p.Alpha < 0 || p.Alpha > 1 {
				t.Fatalf("alpha %v escaped [0,1]", p.Alpha)
			}
		}
	}
	for i, p := range f.Particles() {
		if math.Abs(p.Alpha-targets[i]) > 1e-6 {
			t.Errorf("particle %d: alpha %v did not reach %v", i, p.Alpha, targets[i])
		}
	}
}

func TestTwinkleFollowsWallClock(t *testing.T) {
	f := newTestField(Config{Quantity: 40, TwinkleInterval: time.Second}, 11)
	f.Resize(300, 300)
	before := f.Particles()

	// 59 frames at ~16ms stay under a second.
	for i := 0; i < 59; i++ {
		f.Tick(&recorder{}, 16*time.Millisecond)
	}
	for i, p := range f.Particles() {
		if p.TargetAlpha != before[i].TargetAlpha {
			t.Fatalf("particle %d rerolled early", i)
		}
	}

	f.Tick(&recorder{}, 100*time.Millisecond)
	changed := 0
	for i, p := range f.Particles() {
		if p.TargetAlpha != before[i].TargetAlpha {
			changed++
		}
		if p.TargetAlpha < 0.1 || p.TargetAlpha > 0.7 {
			t.Errorf("particle %d: rerolled targetAlpha %v out of range", i, p.TargetAlpha)
		}
	}
	if changed == 0 {
		t.Error("no particle rerolled after a second")
	}
}

func TestTickRendersEachParticle(t *testing.T) {
	f := New(Config{Quantity: 3}, WithRand(rand.New(rand.NewSource(2))), WithDevicePixelRatio(2))
	f.Resize(100, 80)
	f.particles[0].TranslateX, f.particles[0].TranslateY = 4, -2
	f.particles[0].Alpha = 1

	r := &recorder{}
	f.Tick(r, 0)

	if r.calls[1].op != "clear" || r.calls[1].args[2] != 100 || r.calls[1].args[3] != 80 {
		t.Errorf("expected full clear first, got %+v", r.calls[:2])
	}
	if n := r.count("fill"); n != 3 {
		t.Errorf("fills = %d, want 3", n)
	}
	// translate, fill, reset per particle.
	tr := r.calls[2]
	if tr.op != "translate" || tr.args[0] != 4 || tr.args[1] != -2 {
		t.Errorf("first particle translate = %+v", tr)
	}
	fill := r.calls[3]
	if got := fill.clr.(color.NRGBA).A; got != 255 {
		t.Errorf("fill alpha = %d, want 255", got)
	}
	reset := r.calls[4]
	want := []float64{2, 0, 0, 2, 0, 0}
	for i := range want {
		if reset.op != "transform" || reset.args[i] != want[i] {
			t.Fatalf("reset transform = %+v, want %v", reset, want)
		}
	}
}

func TestTickNilSurfaceAndStop(t *testing.T) {
	f := newTestField(Config{Quantity: 2}, 4)
	f.Resize(50, 50)
	before := f.Particles()

	f.Tick(nil, time.Second)
	for i, p := range f.Particles() {
		if p != before[i] {
			t.Fatalf("nil surface advanced particle %d", i)
		}
	}

	f.Stop()
	r := &recorder{}
	f.Tick(r, time.Second)
	if len(r.calls) != 0 || f.Active() {
		t.Errorf("stopped field drew %d calls", len(r.calls))
	}
}

func TestConfigureAndRefresh(t *testing.T) {
	f := newTestField(Config{}, 8)
	if cfg := f.Config(); cfg.Quantity != 0 || cfg.Staticity != DefaultStaticity || cfg.Ease != DefaultEase {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	f.Resize(100, 100)

	f.Configure(12, -1, 0)
	if cfg := f.Config(); cfg.Staticity != DefaultStaticity || cfg.Ease != DefaultEase {
		t.Errorf("non-positive tuning kept: %+v", cfg)
	}
	if f.Len() != 0 {
		t.Errorf("Configure regenerated the pool")
	}

	f.SetRefresh(false)
	if f.Len() != 0 {
		t.Errorf("unchanged refresh regenerated the pool")
	}
	f.SetRefresh(true)
	if f.Len() != 12 {
		t.Errorf("refresh produced %d particles, want 12", f.Len())
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Quantity != 30 || cfg.Staticity != 50 || cfg.Ease != 50 || cfg.TwinkleInterval != time.Second {
		t.Errorf("DefaultConfig = %+v", cfg)
	}
}
