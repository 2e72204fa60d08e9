package audio

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/breakout/internal/config"
	"github.com/vovakirdan/breakout/internal/core"
)

// drain streams s to exhaustion and returns the sample count and peak.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = max(peak, smp[0], -smp[0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer did not end")
	return 0, 0
}

func TestOscillatorLength(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveTriangle} {
		n, peak := drain(t, NewOscillator(440, 100*time.Millisecond, wave, SampleRate))
		if n != SampleRate.N(100*time.Millisecond) {
			t.Errorf("wave %d: %d samples, want %d", wave, n, SampleRate.N(100*time.Millisecond))
		}
		if peak <= 0.5 || peak > 1 {
			t.Errorf("wave %d: peak %f out of range", wave, peak)
		}
	}
}

func TestEnvelopeFadesEdges(t *testing.T) {
	d := 100 * time.Millisecond
	env := NewEnvelope(NewOscillator(440, d, WaveSquare, SampleRate), d, 10*time.Millisecond, 10*time.Millisecond, SampleRate)

	buf := make([][2]float64, SampleRate.N(d))
	n, _ := env.Stream(buf)
	if n != len(buf) {
		t.Fatalf("Stream() = %d samples, want %d", n, len(buf))
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, want 0", buf[0][0])
	}
	if mid := buf[n/2][0]; mid != 1 && mid != -1 {
		t.Errorf("sustain sample = %f, want full scale", mid)
	}
	if last := buf[n-1][0]; last > 0.01 || last < -0.01 {
		t.Errorf("last sample = %f, want near 0", last)
	}
}

func TestSynthesizeEveryCue(t *testing.T) {
	for _, s := range core.Sounds {
		t.Run(s.String(), func(t *testing.T) {
			st := Synthesize(s, SampleRate)
			if st == nil {
				t.Fatal("Synthesize() = nil")
			}
			n, peak := drain(t, st)
			if n == 0 || peak == 0 {
				t.Errorf("cue is silent: %d samples, peak %f", n, peak)
			}
		})
	}
	if Synthesize(core.Sound(99), SampleRate) != nil {
		t.Error("unknown cue should synthesize nil")
	}
}

func TestSynthesizeMusicLength(t *testing.T) {
	n, _ := drain(t, Synthesize(core.SoundMusic, SampleRate))
	want := len(musicNotes) * SampleRate.N(musicNoteLength)
	if n != want {
		t.Errorf("music pass = %d samples, want %d", n, want)
	}
}

func TestPlayerMusicStartsOnce(t *testing.T) {
	p := NewPlayer(config.AudioConfig{Enabled: true, Volume: 0.5}, log.New(io.Discard))

	p.Play(core.SoundMusic)
	p.Play(core.SoundMusic)
	if got := p.Active(); got != 1 {
		t.Errorf("Active() = %d after two music cues, want 1", got)
	}

	p.Play(core.SoundBlock)
	p.Play(core.SoundBlock)
	if got := p.Active(); got != 3 {
		t.Errorf("Active() = %d, want 3", got)
	}
}

func TestPlayerLoadsWAV(t *testing.T) {
	dir := t.TempDir()
	length := 22050 / 10
	format := beep.Format{SampleRate: 22050, NumChannels: 1, Precision: 2}

	f, err := os.Create(filepath.Join(dir, "paddle.wav"))
	if err != nil {
		t.Fatal(err)
	}
	if err := wav.Encode(f, beep.Take(length, NewOscillator(440, time.Second, WaveSine, 22050)), format); err != nil {
		t.Fatalf("wav.Encode() error = %v", err)
	}
	f.Close()

	p := NewPlayer(config.AudioConfig{Volume: 1, SoundsDir: dir}, log.New(io.Discard))

	// 22.05 kHz file resampled to 44.1 kHz doubles the length
	got := p.buffers[core.SoundPaddle].Len()
	if got < 2*length-32 || got > 2*length+32 {
		t.Errorf("paddle buffer = %d samples, want about %d", got, 2*length)
	}

	synth, _ := drain(t, Synthesize(core.SoundWall, SampleRate))
	if got := p.buffers[core.SoundWall].Len(); got != synth {
		t.Errorf("wall buffer = %d samples, want built-in %d", got, synth)
	}
}

func TestPlayerLogsBadWAV(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "brick.wav"), []byte("not a wav file"), 0o600); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	p := NewPlayer(config.AudioConfig{Volume: 1, SoundsDir: dir}, log.New(&logs))

	if !strings.Contains(logs.String(), "brick") {
		t.Errorf("expected warning about brick, got %q", logs.String())
	}
	if p.buffers[core.SoundBlock].Len() == 0 {
		t.Error("bad file should fall back to the built-in cue")
	}
}

func TestOpenDisabled(t *testing.T) {
	player, closeFn := Open(config.AudioConfig{Enabled: false}, nil)
	defer closeFn()
	if _, ok := player.(core.SilentPlayer); !ok {
		t.Errorf("Open() = %T, want core.SilentPlayer", player)
	}
}
