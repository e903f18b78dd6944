// Package particles animates the ambient dot field drawn behind the orbit view.
//
// A Field owns a fixed pool of particles that drift slowly, bounce off the
// edges of the container, lean toward the pointer and twinkle. The pool is
// replaced as a whole on every resize or refresh; nothing outside the Field
// mutates individual particles.
package particles

import (
	"image/color"
	"math"
	"math/rand"
	"time"
)

const (
	DefaultQuantity  = 30
	DefaultStaticity = 50.0
	DefaultEase      = 50.0
	DefaultTwinkle   = time.Second
)

// Particle is one ambient dot. Coordinates are in logical pixels.
type Particle struct {
	X, Y                   float64
	DX, DY                 float64 // drift per tick
	TranslateX, TranslateY float64 // pointer displacement
	Size                   float64
	Alpha                  float64
	TargetAlpha            float64
	Magnetism              float64
}

// Surface is the 2D drawing context a Field renders into. Coordinates passed
// to it are logical; the Field keeps the base transform at the device pixel
// ratio.
type Surface interface {
	ClearRect(x, y, w, h float64)
	Translate(dx, dy float64)
	FillCircle(cx, cy, r float64, clr color.Color)
	SetTransform(a, b, c, d, e, f float64)
}

// Config tunes a Field. Non-positive Staticity, Ease and TwinkleInterval
// select the defaults; Quantity is taken as given.
type Config struct {
	Quantity  int
	Staticity float64 // divisor on pointer pull; higher moves less
	Ease      float64 // smoothing constant; higher converges slower
	Refresh   bool

	TwinkleInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.Quantity < 0 {
		c.Quantity = 0
	}
	if c.Staticity <= 0 {
		c.Staticity = DefaultStaticity
	}
	if c.Ease <= 0 {
		c.Ease = DefaultEase
	}
	if c.TwinkleInterval <= 0 {
		c.TwinkleInterval = DefaultTwinkle
	}
	return c
}

// DefaultConfig returns the stock tuning with 30 particles.
func DefaultConfig() Config {
	return Config{Quantity: DefaultQuantity}.withDefaults()
}

// Option customises a Field at construction.
type Option func(*Field)

// WithRand sets the random source used to generate particles.
func WithRand(rng *rand.Rand) Option {
	return func(f *Field) { f.rng = rng }
}

// WithDevicePixelRatio sets the ratio between backing and logical pixels.
func WithDevicePixelRatio(dpr float64) Option {
	return func(f *Field) {
		if dpr > 0 {
			f.dpr = dpr
		}
	}
}

// Field is a pool of particles inside a width x height container.
// It is not safe for concurrent use; see Loop for a goroutine-owned Field.
type Field struct {
	cfg       Config
	particles []Particle

	width, height float64
	dpr           float64

	pointerX, pointerY float64

	rng     *rand.Rand
	twinkle time.Duration
	stopped bool
}

// New creates an empty Field. Call Resize to populate it.
func New(cfg Config, opts ...Option) *Field {
	f := &Field{
		cfg: cfg.withDefaults(),
		dpr: 1,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return f
}

// Configure replaces the tuning constants. The pool keeps its size until the
// next Resize or refresh.
func (f *Field) Configure(quantity int, staticity, ease float64) {
	cfg := f.cfg
	cfg.Quantity = quantity
	cfg.Staticity = staticity
	cfg.Ease = ease
	f.cfg = cfg.withDefaults()
}

// Config returns the active tuning.
func (f *Field) Config() Config {
	return f.cfg
}

// SetRefresh regenerates the pool when the toggle changes value.
func (f *Field) SetRefresh(refresh bool) {
	if refresh == f.cfg.Refresh {
		return
	}
	f.cfg.Refresh = refresh
	f.regenerate()
}

// Resize discards every particle and fills the container with a fresh pool.
func (f *Field) Resize(width, height float64) {
	f.width = math.Max(width, 0)
	f.height = math.Max(height, 0)
	f.regenerate()
}

// Size returns the logical container size.
func (f *Field) Size() (w, h float64) {
	return f.width, f.height
}

// BackingSize is the device-pixel resolution of the drawing surface.
func (f *Field) BackingSize() (w, h int) {
	return int(f.width * f.dpr), int(f.height * f.dpr)
}

// SetDevicePixelRatio changes the backing scale; it takes effect on the next
// frame and BackingSize. Non-positive values are ignored.
func (f *Field) SetDevicePixelRatio(dpr float64) {
	if dpr > 0 {
		f.dpr = dpr
	}
}

// DevicePixelRatio returns the ratio used for the base transform.
func (f *Field) DevicePixelRatio() float64 {
	return f.dpr
}

// PointerMove records the pointer position relative to the container origin.
func (f *Field) PointerMove(x, y float64) {
	f.pointerX, f.pointerY = x, y
}

// Particles returns a copy of the pool in draw order.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Len is the pool size.
func (f *Field) Len() int {
	return len(f.particles)
}

// Stop marks the field inactive; Tick becomes a no-op afterwards.
func (f *Field) Stop() {
	f.stopped = true
}

// Active reports whether the field still renders.
func (f *Field) Active() bool {
	return !f.stopped
}

// Tick clears the surface, draws every particle and advances it one frame.
// dt is the wall-clock time since the previous frame and only drives the
// twinkle; motion is per tick. A nil surface skips the frame.
func (f *Field) Tick(s Surface, dt time.Duration) {
	if s == nil || f.stopped {
		return
	}
	s.SetTransform(f.dpr, 0, 0, f.dpr, 0, 0)
	s.ClearRect(0, 0, f.width, f.height)

	for i := range f.particles {
		p := &f.particles[i]
		f.draw(s, p)
		f.step(p)
	}

	f.twinkle += dt
	if f.twinkle >= f.cfg.TwinkleInterval {
		f.twinkle %= f.cfg.TwinkleInterval
		for i := range f.particles {
			f.particles[i].TargetAlpha = f.randomTargetAlpha()
		}
	}
}

func (f *Field) draw(s Surface, p *Particle) {
	s.Translate(p.TranslateX, p.TranslateY)
	s.FillCircle(p.X, p.Y, p.Size, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(clamp01(p.Alpha)*255 + 0.5)})
	s.SetTransform(f.dpr, 0, 0, f.dpr, 0, 0)
}

func (f *Field) step(p *Particle) {
	// Bounce before moving so a particle past the edge heads back in.
	if p.Y < 0 || p.Y > f.height {
		p.DY = -p.DY
	}
	if p.X < 0 || p.X > f.width {
		p.DX = -p.DX
	}
	p.X += p.DX
	p.Y += p.DY

	pull := f.cfg.Staticity / p.Magnetism
	p.TranslateX += (f.pointerX/pull - p.TranslateX) / f.cfg.Ease
	p.TranslateY += (f.pointerY/pull - p.TranslateY) / f.cfg.Ease
	p.Alpha = clamp01(p.Alpha + (p.TargetAlpha-p.Alpha)/f.cfg.Ease)
}

func (f *Field) regenerate() {
	f.particles = make([]Particle, f.cfg.Quantity)
	for i := range f.particles {
		f.particles[i] = f.newParticle()
	}
	f.twinkle = 0
}

func (f *Field) newParticle() Particle {
	return Particle{
		X:           math.Floor(f.rng.Float64() * f.width),
		Y:           math.Floor(f.rng.Float64() * f.height),
		DX:          (f.rng.Float64() - 0.5) * 0.2,
		DY:          (f.rng.Float64() - 0.5) * 0.2,
		Size:        0.1 + f.rng.Float64()*2,
		TargetAlpha: f.randomTargetAlpha(),
		Magnetism:   0.1 + f.rng.Float64()*4,
	}
}

// randomTargetAlpha is uniform in [0.1, 0.7], rounded to one decimal.
func (f *Field) randomTargetAlpha() float64 {
	return math.Round((f.rng.Float64()*0.6+0.1)*10) / 10
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
