// Package audio plays the game's sound cues with beep. Each cue is read
// from "<sounds_dir>/<name>.wav" when present and synthesized otherwise.
package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/breakout/internal/config"
	"github.com/vovakirdan/breakout/internal/core"
)

// SampleRate is the output rate. Files at other rates are resampled.
const SampleRate = beep.SampleRate(44100)

// Player implements core.SoundPlayer on top of a beep mixer.
// Effects overlap freely; music starts once and loops forever.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	output  beep.Streamer
	buffers map[core.Sound]*beep.Buffer
	music   *beep.Ctrl
	logger  *log.Logger
	started bool
}

var _ core.SoundPlayer = (*Player)(nil)

// NewPlayer prepares every cue. Missing or unreadable files fall back to
// the synthesized cue; unreadable ones are logged.
func NewPlayer(cfg config.AudioConfig, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}

	mixer := &beep.Mixer{}
	p := &Player{
		mixer:   mixer,
		output:  newVolume(mixer, cfg.Volume),
		buffers: make(map[core.Sound]*beep.Buffer, len(core.Sounds)),
		logger:  logger,
	}

	format := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
	for _, s := range core.Sounds {
		buf := beep.NewBuffer(format)
		src, err := loadWAV(cfg.SoundsDir, s.String())
		switch {
		case err == nil:
			buf.Append(src)
		case errors.Is(err, fs.ErrNotExist):
			buf.Append(Synthesize(s, SampleRate))
		default:
			logger.Warn("cannot load sound, using built-in", "sound", s, "error", err)
			buf.Append(Synthesize(s, SampleRate))
		}
		p.buffers[s] = buf
	}

	return p
}

// loadWAV decodes dir/name.wav fully and resamples it to SampleRate.
func loadWAV(dir, name string) (beep.Streamer, error) {
	if dir == "" {
		return nil, fs.ErrNotExist
	}

	f, err := os.Open(filepath.Join(dir, name+".wav"))
	if err != nil {
		return nil, err
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: cannot decode %s: %w", name, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("audio: cannot read %s: %w", name, err)
	}

	all := buf.Streamer(0, buf.Len())
	if format.SampleRate == SampleRate {
		return all, nil
	}
	return beep.Resample(4, format.SampleRate, SampleRate, all), nil
}

// Start opens the audio device. Until it succeeds Play only queues sounds
// on the mixer, which nothing drains.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open output device: %w", err)
	}
	speaker.Play(p.output)
	p.started = true
	return nil
}

// Close stops every sound and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.started = false
}

// Play implements core.SoundPlayer.
func (p *Player) Play(s core.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	buf, ok := p.buffers[s]
	if !ok {
		return
	}

	if s == core.SoundMusic {
		if p.music != nil {
			return
		}
		p.music = &beep.Ctrl{Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len()))}
		p.add(p.music)
		return
	}

	p.add(buf.Streamer(0, buf.Len()))
}

func (p *Player) add(s beep.Streamer) {
	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(s)
}

// Active returns the number of sounds currently on the mixer.
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

// Open builds a player for cfg and starts it. Disabled audio or a missing
// output device yield core.SilentPlayer, and the game runs without sound.
func Open(cfg config.AudioConfig, logger *log.Logger) (core.SoundPlayer, func()) {
	if !cfg.Enabled {
		return core.SilentPlayer{}, func() {}
	}
	if logger == nil {
		logger = log.Default()
	}

	p := NewPlayer(cfg, logger)
	if err := p.Start(); err != nil {
		logger.Warn("audio disabled", "error", err)
		return core.SilentPlayer{}, func() {}
	}
	return p, p.Close
}
