package audio

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/orbital-notes/internal/config"
)

// Player owns the speaker. Chimes are mixed into one endless stream that runs
// through a Tap, so Level falls back to zero once a chime has finished.
type Player struct {
	rate  beep.SampleRate
	chime func() beep.Streamer
	mixer *beep.Mixer
	tap   *Tap

	initDone bool
}

// NewPlayer builds a player at rate. chime yields a fresh streamer per play;
// nil selects the built-in tone.
func NewPlayer(rate beep.SampleRate, ringSize int, chime func() beep.Streamer) *Player {
	if chime == nil {
		chime = func() beep.Streamer {
			return Tone(rate, config.ChimeFrequency, config.ChimeDuration, 0.25)
		}
	}
	mixer := &beep.Mixer{}
	return &Player{
		rate:  rate,
		chime: chime,
		mixer: mixer,
		tap:   NewTap(mixer, ringSize),
	}
}

// BufferChime returns a chime source that replays buf from the start.
func BufferChime(buf *beep.Buffer) func() beep.Streamer {
	return func() beep.Streamer {
		return buf.Streamer(0, buf.Len())
	}
}

// Init opens the output device once.
func (p *Player) Init() error {
	if p.initDone {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(time.Second/20)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.tap)
	p.initDone = true
	return nil
}

// Play queues the chime. It is a no-op before Init succeeds.
func (p *Player) Play() {
	if !p.initDone {
		return
	}
	speaker.Lock()
	p.mixer.Add(p.chime())
	speaker.Unlock()
}

// Level is the loudness of the last ~50ms of output, in [0,1].
func (p *Player) Level() float64 {
	return p.tap.Level(p.rate.N(time.Second / 20))
}

// Close stops playback.
func (p *Player) Close() {
	if !p.initDone {
		return
	}
	speaker.Clear()
	p.initDone = false
}
