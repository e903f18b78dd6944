package main

import (
	"errors"
	"log"
	"os"

	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/orbital-notes/internal/audio"
	"github.com/iburimskiy/orbital-notes/internal/config"
	"github.com/iburimskiy/orbital-notes/internal/game"
	"github.com/iburimskiy/orbital-notes/internal/notes"
	"github.com/iburimskiy/orbital-notes/internal/particles"
)

func main() {
	logger := log.New(os.Stderr, "[orbital-notes] ", log.LstdFlags)

	defaultPath, err := notes.DefaultPath()
	if err != nil {
		logger.Printf("falling back to working directory: %v", err)
		defaultPath = "notes.json"
	}
	rt := config.Load(defaultPath)

	saved, err := notes.Load(rt.NotesFile)
	if err != nil {
		logger.Fatalf("load notes: %v", err)
	}
	store := notes.NewStore(nil, nil)
	store.Replace(saved)
	logger.Printf("loaded %d notes from %s", store.Len(), rt.NotesFile)

	var chime game.Chime
	if !rt.Mute {
		if p, err := newPlayer(rt); err != nil {
			logger.Printf("audio disabled: %v", err)
		} else {
			defer p.Close()
			chime = p
		}
	}

	g := game.New(game.Options{
		Store:     store,
		NotesFile: rt.NotesFile,
		Chime:     chime,
		Particles: particles.Config{
			Quantity:        rt.Particles,
			Staticity:       config.ParticleStaticity,
			Ease:            config.ParticleEase,
			TwinkleInterval: config.TwinkleInterval,
		},
		Logger: logger,
	})
	defer g.Close()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Orbital Notes - N: new note, /: search, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal(err)
	}
}

func newPlayer(rt config.Runtime) (*audio.Player, error) {
	rate := beep.SampleRate(config.SampleRate)
	var chime func() beep.Streamer
	if rt.ChimeFile != "" {
		buf, err := audio.LoadChime(rt.ChimeFile, rate)
		if err != nil {
			return nil, err
		}
		chime = audio.BufferChime(buf)
	}
	p := audio.NewPlayer(rate, config.ChimeRingSize, chime)
	if err := p.Init(); err != nil {
		return nil, err
	}
	return p, nil
}
