package core

// Sound identifies a sound cue.
type Sound int

const (
	SoundWall     Sound = iota // Ball bounced off a side or the top
	SoundLifeLost              // Ball passed the bottom edge with lives left
	SoundPaddle                // Ball hit the paddle
	SoundBlock                 // A block was destroyed
	SoundMusic                 // Background track; loops until stopped
)

// Sounds lists every cue in declaration order.
var Sounds = []Sound{SoundWall, SoundLifeLost, SoundPaddle, SoundBlock, SoundMusic}

// String returns the cue's asset name.
func (s Sound) String() string {
	switch s {
	case SoundWall:
		return "wall"
	case SoundLifeLost:
		return "lose_life"
	case SoundPaddle:
		return "paddle"
	case SoundBlock:
		return "brick"
	case SoundMusic:
		return "bgmusic"
	default:
		return "unknown"
	}
}

// SoundPlayer is the audio capability injected into the game.
// Play must not block; playing SoundMusic while it runs is a no-op.
type SoundPlayer interface {
	Play(s Sound)
}

// SilentPlayer discards every cue.
type SilentPlayer struct{}

// Play implements SoundPlayer.
func (SilentPlayer) Play(Sound) {}
