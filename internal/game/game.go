// Package game renders the orbit view and turns input into note edits.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/orbital-notes/internal/config"
	"github.com/iburimskiy/orbital-notes/internal/notes"
	"github.com/iburimskiy/orbital-notes/internal/orbit"
	"github.com/iburimskiy/orbital-notes/internal/particles"
)

const windowTitle = "Orbital Notes"

var (
	pink  = color.RGBA{R: 236, G: 72, B: 153, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Chime is the sound played for a new note.
type Chime interface {
	Play()
	Level() float64
}

type silent struct{}

func (silent) Play()          {}
func (silent) Level() float64 { return 0 }

// Options configures a Game. Store and NotesFile are required.
type Options struct {
	Store     *notes.Store
	NotesFile string
	Dialogs   Dialogs
	Chime     Chime
	Particles particles.Config
	Logger    *log.Logger
	Now       func() time.Time
	Scale     func() float64 // device pixel ratio
	Seed      int64
}

// placed is a note widget on screen this frame, in logical pixels.
type placed struct {
	note   notes.Note
	x, y   float64
	radius float64
	ring   int
}

// frameInput is what Update read from ebiten for one tick.
type frameInput struct {
	x, y  float64
	moved bool
	click bool
	keys  []ebiten.Key
}

type Game struct {
	store     *notes.Store
	notesFile string
	dialogs   Dialogs
	chime     Chime
	logger    *log.Logger
	now       func() time.Time
	scale     func() float64

	field   *particles.Field
	layer   *ebiten.Image
	surface *particles.ImageSurface
	bg      *background

	width, height float64 // logical
	dpr           float64

	start     time.Time
	lastFrame time.Time
	elapsed   time.Duration
	placed    []placed

	query       string
	activeID    string
	refresh     bool
	showWelcome bool
	prevX       float64
	prevY       float64
	keyBuf      []ebiten.Key

	lastErr error
}

func New(opts Options) *Game {
	g := &Game{
		store:       opts.Store,
		notesFile:   opts.NotesFile,
		dialogs:     opts.Dialogs,
		chime:       opts.Chime,
		logger:      opts.Logger,
		now:         opts.Now,
		scale:       opts.Scale,
		showWelcome: true,
		dpr:         1,
	}
	if g.dialogs == nil {
		g.dialogs = NativeDialogs{}
	}
	if g.chime == nil {
		g.chime = silent{}
	}
	if g.logger == nil {
		g.logger = log.Default()
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.scale == nil {
		g.scale = func() float64 { return ebiten.Monitor().DeviceScaleFactor() }
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.field = particles.New(opts.Particles, particles.WithRand(rand.New(rand.NewSource(seed))))
	g.bg = newBackground(seed)
	g.start = g.now()
	g.lastFrame = g.start
	if g.store.Len() > 0 {
		g.showWelcome = false
	}
	return g
}

func (g *Game) Update() error {
	mx, my := ebiten.CursorPosition()
	in := frameInput{
		x:     float64(mx) / g.dpr,
		y:     float64(my) / g.dpr,
		click: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
	in.moved = in.x != g.prevX || in.y != g.prevY
	g.prevX, g.prevY = in.x, in.y
	g.keyBuf = inpututil.AppendJustPressedKeys(g.keyBuf[:0])
	in.keys = g.keyBuf

	g.step(g.now())
	return g.handle(in)
}

// step advances the clock and re-derives every widget position.
func (g *Game) step(now time.Time) {
	g.elapsed = now.Sub(g.start)
	if g.showWelcome && (g.elapsed >= config.WelcomeDuration || g.store.Len() > 0) {
		g.showWelcome = false
	}

	visible := g.store.Filter(g.query)
	g.placed = g.placed[:0]
	cx, cy := g.center()
	for i, n := range visible {
		a := orbit.Place(i, len(visible), len(n.Content), cx, cy)
		x, y := a.At(g.elapsed)
		g.placed = append(g.placed, placed{
			note:   n,
			x:      x,
			y:      y,
			radius: orbit.WidgetSize(len(n.Content)) / 2,
			ring:   a.Ring,
		})
	}
}

func (g *Game) handle(in frameInput) error {
	if in.moved {
		g.field.PointerMove(in.x, in.y)
	}
	if in.click || len(in.keys) > 0 {
		g.showWelcome = false
	}
	if in.click {
		g.clickAt(in.x, in.y)
	}
	for _, k := range in.keys {
		switch k {
		case ebiten.KeyN:
			g.createNote()
		case ebiten.KeyE, ebiten.KeyEnter:
			g.editNote(g.activeID)
		case ebiten.KeyC:
			g.pickColor(g.activeID)
		case ebiten.KeyDelete, ebiten.KeyBackspace:
			g.deleteNote(g.activeID)
		case ebiten.KeySlash:
			g.search()
		case ebiten.KeyP:
			g.refresh = !g.refresh
			g.field.SetRefresh(g.refresh)
		case ebiten.KeyEscape, ebiten.KeyQ:
			g.field.Stop()
			return ebiten.Termination
		}
	}
	return nil
}

func (g *Game) clickAt(x, y float64) {
	cx, cy := g.center()
	if math.Hypot(x-cx, y-cy) <= config.HubRadius {
		g.createNote()
		return
	}
	if id, ok := g.widgetAt(x, y); ok {
		g.activeID = id
		return
	}
	g.activeID = ""
}

// widgetAt returns the topmost widget under (x, y).
func (g *Game) widgetAt(x, y float64) (string, bool) {
	for i := len(g.placed) - 1; i >= 0; i-- {
		p := g.placed[i]
		if math.Hypot(x-p.x, y-p.y) <= p.radius {
			return p.note.ID, true
		}
	}
	return "", false
}

func (g *Game) createNote() {
	n := g.store.Create()
	g.activeID = n.ID
	g.showWelcome = false
	g.persist()
	g.chime.Play()
	g.editNote(n.ID)
}

func (g *Game) editNote(id string) {
	n, ok := g.store.Get(id)
	if !ok {
		return
	}
	title, err := g.dialogs.Entry("Edit Note", "Title", n.Title)
	if g.canceled(err) {
		return
	}
	content, err := g.dialogs.Entry("Edit Note", "Content", n.Content)
	if g.canceled(err) {
		return
	}
	n.Title = strings.TrimSpace(title)
	n.Content = content
	g.update(n)
}

func (g *Game) pickColor(id string) {
	n, ok := g.store.Get(id)
	if !ok {
		return
	}
	c, err := g.dialogs.Color("Note Color", n.RGBA())
	if g.canceled(err) {
		return
	}
	n.Color = notes.Hex(c)
	g.update(n)
}

func (g *Game) deleteNote(id string) {
	n, ok := g.store.Get(id)
	if !ok {
		return
	}
	yes, err := g.dialogs.Confirm("Delete Note", fmt.Sprintf("Delete %q?", n.Title))
	if g.canceled(err) || !yes {
		return
	}
	if err := g.store.Delete(id); err != nil {
		g.fail(err)
		return
	}
	g.activeID = ""
	g.persist()
}

func (g *Game) search() {
	q, err := g.dialogs.Entry("Search", "Search notes (empty shows all)", g.query)
	if g.canceled(err) {
		return
	}
	g.query = strings.TrimSpace(q)
}

func (g *Game) update(n notes.Note) {
	if _, err := g.store.Update(n); err != nil {
		g.fail(err)
		return
	}
	g.persist()
}

func (g *Game) persist() {
	if err := notes.Save(g.notesFile, g.store.All()); err != nil {
		g.fail(err)
	}
}

// canceled reports whether a dialog result should stop the action,
// recording real failures.
func (g *Game) canceled(err error) bool {
	if err == nil {
		return false
	}
	if !errors.Is(err, zenity.ErrCanceled) {
		g.fail(err)
	}
	return true
}

func (g *Game) fail(err error) {
	g.lastErr = err
	g.logger.Printf("error: %v", err)
}

func (g *Game) center() (float64, float64) {
	return g.width / 2, g.height/2 + 20
}

func (g *Game) Draw(screen *ebiten.Image) {
	now := g.now()
	dt := now.Sub(g.lastFrame)
	g.lastFrame = now

	g.bg.draw(screen, g.elapsed.Seconds())

	// Particles live on their own layer because each frame clears it.
	bw, bh := g.field.BackingSize()
	if bw > 0 && bh > 0 {
		if g.layer == nil || g.layer.Bounds().Dx() != bw || g.layer.Bounds().Dy() != bh {
			if g.layer != nil {
				g.layer.Deallocate()
			}
			g.layer = ebiten.NewImage(bw, bh)
			g.surface = particles.NewImageSurface(g.layer)
		}
		g.field.Tick(g.surface, dt)
		screen.DrawImage(g.layer, nil)
	}

	g.drawRings(screen)
	g.drawNotes(screen)
	g.drawHub(screen)
	g.drawStatus(screen)
	if g.showWelcome {
		g.drawWelcome(screen)
	}
}

func (g *Game) drawRings(screen *ebiten.Image) {
	cx, cy := g.center()
	for _, r := range orbit.Rings() {
		vector.StrokeCircle(screen, g.px(cx), g.px(cy), g.px(r.Radius), g.px(1), fade(white, 0.1), true)
	}
}

func (g *Game) drawNotes(screen *ebiten.Image) {
	for _, p := range g.placed {
		c := p.note.RGBA()
		active := p.note.ID == g.activeID
		glow := 0.25
		if active {
			glow = 0.5
		}
		vector.DrawFilledCircle(screen, g.px(p.x), g.px(p.y), g.px(p.radius+6), fade(c, glow*0.5), true)
		vector.DrawFilledCircle(screen, g.px(p.x), g.px(p.y), g.px(p.radius), fade(c, 0.8), true)
		if active {
			vector.StrokeCircle(screen, g.px(p.x), g.px(p.y), g.px(p.radius+4), g.px(2), c, true)
		}
		label := truncate(p.note.Title, int(p.radius*2*0.8/6))
		ebitenutil.DebugPrintAt(screen, label, int(g.px(p.x))-len([]rune(label))*3, int(g.px(p.y))-8)
	}
}

func (g *Game) drawHub(screen *ebiten.Image) {
	cx, cy := g.center()
	pulse := 0.5 + 0.5*math.Sin(g.elapsed.Seconds()*math.Pi)
	glow := config.HubRadius + 10 + 10*pulse + 30*g.chime.Level()
	vector.DrawFilledCircle(screen, g.px(cx), g.px(cy), g.px(glow), fade(pink, 0.15+0.15*pulse), true)
	vector.DrawFilledCircle(screen, g.px(cx), g.px(cy), g.px(config.HubRadius), pink, true)
	ebitenutil.DebugPrintAt(screen, "+", int(g.px(cx))-3, int(g.px(cy))-8)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, g.statusLine(), 12, 12)
	ebitenutil.DebugPrintAt(screen, "N: new  E: edit  C: color  Del: delete  /: search  P: refresh  Q: quit", 12, 28)
}

func (g *Game) statusLine() string {
	status := fmt.Sprintf("%s | %d notes", windowTitle, g.store.Len())
	if g.query != "" {
		status += fmt.Sprintf(" | search %q: %d shown", g.query, len(g.placed))
	}
	if n, ok := g.store.Get(g.activeID); ok {
		status += fmt.Sprintf(" | %s (edited %s ago)", n.Title, formatDuration(g.now().Sub(n.UpdatedAt)))
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}

func (g *Game) drawWelcome(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.NRGBA{R: 15, G: 23, B: 42, A: 220}, false)
	lines := []string{
		"Welcome to Orbital Notes",
		"Your thoughts in orbit, beautifully organized",
		"",
		"Click the hub or press N to create your first note",
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, w/2-len(l)*3, h/2-40+i*16)
	}
}

// px converts logical pixels to screen pixels.
func (g *Game) px(v float64) float32 {
	return float32(v * g.dpr)
}

// Layout renders at device resolution and resizes the particle field when
// the window changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := g.scale()
	if dpr <= 0 {
		dpr = 1
	}
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != g.width || h != g.height || dpr != g.dpr {
		g.width, g.height, g.dpr = w, h, dpr
		g.field.SetDevicePixelRatio(dpr)
		g.field.Resize(w, h)
	}
	return int(w * dpr), int(h * dpr)
}

// Close stops the animation.
func (g *Game) Close() {
	g.field.Stop()
	if g.layer != nil {
		g.layer.Deallocate()
		g.layer = nil
	}
}
