package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/breakout/internal/core"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// oscillator generates a fixed-length tone.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a tone of the given frequency and length.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s, which must be duration long.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if remaining := e.totalSamples - e.position; remaining < e.releaseSamples {
			vol = math.Max(0, float64(remaining)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. Zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note is one step of a synthesized cue.
type note struct {
	freq     float64
	duration time.Duration
}

func tone(n note, wave WaveType, rate beep.SampleRate) beep.Streamer {
	attack := n.duration / 10
	release := n.duration / 3
	return NewEnvelope(NewOscillator(n.freq, n.duration, wave, rate), n.duration, attack, release, rate)
}

func sequence(notes []note, wave WaveType, rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, tone(n, wave, rate))
	}
	return beep.Seq(parts...)
}

// musicNotes is the background loop: a slow arpeggio in A minor.
var musicNotes = []float64{220.00, 261.63, 329.63, 261.63, 174.61, 220.00, 261.63, 220.00}

const musicNoteLength = 300 * time.Millisecond

// Synthesize returns the built-in rendition of a cue. Music is one pass of
// the loop; the player repeats it.
func Synthesize(s core.Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case core.SoundWall:
		return tone(note{660, 40 * time.Millisecond}, WaveSquare, rate)
	case core.SoundPaddle:
		return tone(note{440, 60 * time.Millisecond}, WaveSquare, rate)
	case core.SoundBlock:
		return newVolume(sequence([]note{
			{880, 30 * time.Millisecond},
			{1320, 50 * time.Millisecond},
		}, WaveTriangle, rate), 0.8)
	case core.SoundLifeLost:
		return sequence([]note{
			{392, 120 * time.Millisecond},
			{330, 120 * time.Millisecond},
			{262, 240 * time.Millisecond},
		}, WaveSquare, rate)
	case core.SoundMusic:
		return synthMusic(rate)
	default:
		return nil
	}
}

func synthMusic(rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(musicNotes))
	for _, freq := range musicNotes {
		sine, err := generators.SineTone(rate, freq)
		if err != nil {
			// Only fails above the Nyquist frequency
			continue
		}
		shaped := NewEnvelope(beep.Take(rate.N(musicNoteLength), sine), musicNoteLength, 20*time.Millisecond, 100*time.Millisecond, rate)
		parts = append(parts, shaped)
	}
	return newVolume(beep.Seq(parts...), 0.3)
}
