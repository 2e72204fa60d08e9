package breakout

import "github.com/vovakirdan/breakout/internal/core"

// Ball moves at a constant speed along a direction vector. XFac is
// continuous in [-1, 1]; YFac is -1 (up) or 1 (down).
type Ball struct {
	X, Y   float64 // Center
	Radius float64
	Speed  float64
	XFac   float64
	YFac   float64
	Nudge  float64 // Inward push after a side-wall bounce
	Color  core.Color
}

// BallMove reports what happened during Update.
type BallMove struct {
	Bounced  bool // Hit a side or the top wall
	Overflow bool // Passed the bottom edge
}

// Rect returns the square bounding the ball.
func (b *Ball) Rect() core.Rect {
	return core.RectAround(core.Vec{X: b.X, Y: b.Y}, b.Radius)
}

// Respawn re-centers the ball at pos heading down with a random
// horizontal factor.
func (b *Ball) Respawn(pos core.Vec, rng *SimpleRNG) {
	b.X, b.Y = pos.X, pos.Y
	b.XFac = rng.Uniform(-1, 1)
	b.YFac = 1
}

// Update advances the ball one frame and reflects it off the side and
// top walls. The bottom edge is not a wall; crossing it is reported.
func (b *Ball) Update(fieldW, fieldH float64) BallMove {
	var m BallMove

	b.X += b.XFac * b.Speed
	b.Y += b.YFac * b.Speed

	if b.X <= 0 || b.X >= fieldW {
		b.XFac = -b.XFac
		if b.X <= 0 {
			b.X += b.Nudge
		} else {
			b.X -= b.Nudge
		}
		m.Bounced = true
	}

	if b.Y <= 0 {
		b.YFac = -b.YFac
		m.Bounced = true
	}

	if b.Y >= fieldH {
		m.Overflow = true
	}
	return m
}

// HitPaddle steers the ball by where it struck the paddle: the center
// sends it straight up, the ends at a steep angle. A ball whose center
// is outside the paddle's span is only pushed sideways.
func (b *Ball) HitPaddle(paddle core.Rect) {
	switch {
	case b.X < paddle.Left():
		b.XFac = -1
	case b.X > paddle.Right():
		b.XFac = 1
	default:
		relative := (b.X-paddle.Left())/paddle.W - 0.5
		b.XFac = relative * 2
		b.YFac = -1
	}
}

// HitBlock pushes the ball sideways off a block's ends, or reverses its
// vertical direction otherwise.
func (b *Ball) HitBlock(block core.Rect) {
	switch {
	case b.X < block.Left():
		b.XFac = -1
	case b.X > block.Right():
		b.XFac = 1
	default:
		b.YFac = -b.YFac
	}
}
