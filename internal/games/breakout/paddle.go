package breakout

import "github.com/vovakirdan/breakout/internal/core"

// Paddle is the player's horizontal-only bat.
type Paddle struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
	Speed         float64 // Pixels per frame
	Dir           int     // -1 left, 0 still, 1 right
	Color         core.Color

	fieldW float64
}

// NewPaddle places a paddle centered horizontally, offsetY above the bottom edge.
func NewPaddle(width, height, speed, offsetY float64, fieldW, fieldH float64, color core.Color) *Paddle {
	return &Paddle{
		X:      fieldW/2 - width/2,
		Y:      fieldH - offsetY,
		Width:  width,
		Height: height,
		Speed:  speed,
		Color:  color,
		fieldW: fieldW,
	}
}

// Rect returns the paddle's bounding box.
func (p *Paddle) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// SetMovement sets the movement direction (-1, 0 or 1).
func (p *Paddle) SetMovement(dir int) {
	p.Dir = core.Clamp(dir, -1, 1)
}

// Release stops the paddle only if it is moving in dir, so releasing
// one arrow while the other is held does not stop it.
func (p *Paddle) Release(dir int) {
	if p.Dir == dir {
		p.Dir = 0
	}
}

// Update moves the paddle one frame and clamps it to the field.
func (p *Paddle) Update() {
	p.X += p.Speed * float64(p.Dir)
	p.X = core.ClampF(p.X, 0, p.fieldW-p.Width)
}
