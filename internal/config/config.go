package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Particle field
	ParticleQuantity  = 50
	ParticleStaticity = 50
	ParticleEase      = 50
	TwinkleInterval   = time.Second

	// Note widget diameter bounds
	MinWidget = 60
	MaxWidget = 100

	// Hub
	HubRadius = 40

	// Audio
	ChimeFrequency = 660
	ChimeDuration  = 350 * time.Millisecond
	ChimeRingSize  = 4096
	SampleRate     = 44100

	WelcomeDuration = 3 * time.Second
)

// OrbitRadii and OrbitPeriods are indexed by ring.
var (
	OrbitRadii   = [3]float64{150, 200, 250}
	OrbitPeriods = [3]time.Duration{60 * time.Second, 80 * time.Second, 100 * time.Second}
)

// Runtime holds the settings that can be overridden from the environment.
type Runtime struct {
	NotesFile string
	ChimeFile string
	Particles int
	Mute      bool
}

// Load reads ORBITAL_NOTES_* overrides on top of the defaults.
// notesDefault is used when ORBITAL_NOTES_FILE is unset.
func Load(notesDefault string) Runtime {
	rt := Runtime{
		NotesFile: notesDefault,
		Particles: ParticleQuantity,
	}
	if v := os.Getenv("ORBITAL_NOTES_FILE"); v != "" {
		rt.NotesFile = filepath.Clean(v)
	}
	if v := os.Getenv("ORBITAL_NOTES_CHIME"); v != "" {
		rt.ChimeFile = v
	}
	if v := os.Getenv("ORBITAL_NOTES_PARTICLES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			rt.Particles = n
		}
	}
	if v := os.Getenv("ORBITAL_NOTES_MUTE"); v != "" {
		rt.Mute, _ = strconv.ParseBool(v)
	}
	return rt
}
