package core

// Align controls how DrawText positions text relative to its anchor.
type Align int

const (
	AlignLeft   Align = iota // Anchor is the top-left of the text
	AlignCenter              // Anchor is the center of the text
)

// Surface is the draw capability injected into the game. Coordinates are
// play-field pixels; implementations scale them to their own output.
type Surface interface {
	Clear(c Color)
	DrawRect(r Rect, c Color)
	DrawCircle(center Vec, radius float64, c Color)
	DrawText(text string, pos Vec, align Align, c Color)
	Present()
}
