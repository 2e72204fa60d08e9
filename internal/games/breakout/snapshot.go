package breakout

import "math"

// Snapshot contains the complete game state for replay and determinism tests.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick     uint64
	Phase    int
	Score    int
	Lives    int
	Level    int
	Won      bool
	Initials string

	PaddleX   float64
	PaddleDir int

	BallX    float64
	BallY    float64
	BallXFac float64
	BallYFac float64

	// Block states, 4 values per block: X, Y, Points, Health
	BlockCount int
	BlockData  []float64

	RNGState uint64
}

// Snapshot returns the current game state as a Snapshot.
func (s *Session) Snapshot() Snapshot {
	blockData := make([]float64, 0, len(s.blocks)*4)
	for _, b := range s.blocks {
		blockData = append(blockData, b.Rect.X, b.Rect.Y, float64(b.Points), float64(b.Health))
	}

	return Snapshot{
		Tick:     s.tick,
		Phase:    int(s.phase),
		Score:    s.score,
		Lives:    s.lives,
		Level:    s.level,
		Won:      s.won,
		Initials: s.initials,

		PaddleX:   s.paddle.X,
		PaddleDir: s.paddle.Dir,

		BallX:    s.ball.X,
		BallY:    s.ball.Y,
		BallXFac: s.ball.XFac,
		BallYFac: s.ball.YFac,

		BlockCount: len(s.blocks),
		BlockData:  blockData,

		RNGState: s.rng.state,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PaddleDir) //#nosec G115 -- hash computation
	if snap.Won {
		h = h*31 + 1
	}
	for _, r := range snap.Initials {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}

	h = h*31 + math.Float64bits(snap.PaddleX)
	h = h*31 + math.Float64bits(snap.BallX)
	h = h*31 + math.Float64bits(snap.BallY)
	h = h*31 + math.Float64bits(snap.BallXFac)
	h = h*31 + math.Float64bits(snap.BallYFac)

	h = h*31 + uint64(snap.BlockCount) //#nosec G115 -- hash computation
	for _, v := range snap.BlockData {
		h = h*31 + math.Float64bits(v)
	}

	h = h*31 + snap.RNGState

	return h
}
