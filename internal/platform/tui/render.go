package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/breakout/internal/core"
)

// Glyphs used by CellSurface.
const (
	RectGlyph = '█'
	BallGlyph = '●'
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorBlack:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// CellSurface scales the play field onto a character Screen.
type CellSurface struct {
	screen *core.Screen
	fieldW float64
	fieldH float64
}

// NewCellSurface draws a fieldW x fieldH play field onto screen.
func NewCellSurface(screen *core.Screen, fieldW, fieldH float64) *CellSurface {
	return &CellSurface{screen: screen, fieldW: fieldW, fieldH: fieldH}
}

// Screen returns the target buffer.
func (c *CellSurface) Screen() *core.Screen {
	return c.screen
}

func (c *CellSurface) col(x float64) int {
	return int(math.Floor(x * float64(c.screen.Width()) / c.fieldW))
}

func (c *CellSurface) row(y float64) int {
	return int(math.Floor(y * float64(c.screen.Height()) / c.fieldH))
}

// Clear implements core.Surface. Terminal cells keep the terminal's own
// background, so only the glyphs are reset.
func (c *CellSurface) Clear(core.Color) {
	c.screen.Clear()
}

// DrawRect implements core.Surface. Every rectangle covers at least one cell.
func (c *CellSurface) DrawRect(r core.Rect, color core.Color) {
	x0, y0 := c.col(r.Left()), c.row(r.Top())
	x1 := int(math.Ceil(r.Right()*float64(c.screen.Width())/c.fieldW)) - 1
	y1 := int(math.Ceil(r.Bottom()*float64(c.screen.Height())/c.fieldH)) - 1
	x1 = core.Max(x1, x0)
	y1 = core.Max(y1, y0)
	c.screen.FillRect(x0, y0, x1-x0+1, y1-y0+1, RectGlyph, color)
}

// DrawCircle implements core.Surface as a single glyph at the center.
func (c *CellSurface) DrawCircle(center core.Vec, _ float64, color core.Color) {
	c.screen.SetCell(c.col(center.X), c.row(center.Y), BallGlyph, color)
}

// DrawText implements core.Surface. Text rows are clamped to the screen so
// the bottom HUD line is always visible. Text centered on the field's
// middle column is centered on the screen.
func (c *CellSurface) DrawText(text string, pos core.Vec, align core.Align, color core.Color) {
	y := core.Clamp(c.row(pos.Y), 0, c.screen.Height()-1)
	if align == core.AlignCenter && pos.X == c.fieldW/2 {
		c.screen.DrawTextCentered(y, text, color)
		return
	}
	x := c.col(pos.X)
	if align == core.AlignCenter {
		x -= len([]rune(text)) / 2
	}
	x = core.Clamp(x, 0, core.Max(0, c.screen.Width()-len([]rune(text))))
	c.screen.DrawText(x, y, text, color)
}

// Present implements core.Surface. The Bubble Tea view reads the screen.
func (c *CellSurface) Present() {}

// centerText pads text so it is centered in width columns.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
