// Package gui runs the game in a desktop window with Ebitengine.
package gui

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/breakout/internal/config"
	"github.com/vovakirdan/breakout/internal/core"
	"github.com/vovakirdan/breakout/internal/games/breakout"
)

// Debug font cell size used by ebitenutil.DebugPrintAt.
const (
	glyphW = 6
	glyphH = 16
)

var palette = map[core.Color]color.RGBA{
	core.ColorDefault: {255, 255, 255, 255},
	core.ColorBlack:   {0, 0, 0, 255},
	core.ColorWhite:   {255, 255, 255, 255},
	core.ColorRed:     {255, 0, 0, 255},
	core.ColorGreen:   {0, 255, 0, 255},
	core.ColorBlue:    {0, 0, 255, 255},
	core.ColorYellow:  {255, 255, 0, 255},
	core.ColorGray:    {128, 128, 128, 255},
}

// RGBA returns the window color for c.
func RGBA(c core.Color) color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette[core.ColorDefault]
}

// Surface draws onto an Ebitengine image in play-field pixels.
type Surface struct {
	screen *ebiten.Image
}

// Clear implements core.Surface.
func (s Surface) Clear(c core.Color) {
	s.screen.Fill(RGBA(c))
}

// DrawRect implements core.Surface.
func (s Surface) DrawRect(r core.Rect, c core.Color) {
	vector.DrawFilledRect(s.screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), RGBA(c), false)
}

// DrawCircle implements core.Surface.
func (s Surface) DrawCircle(center core.Vec, radius float64, c core.Color) {
	vector.DrawFilledCircle(s.screen, float32(center.X), float32(center.Y), float32(radius), RGBA(c), true)
}

// DrawText implements core.Surface. The debug font is always white.
func (s Surface) DrawText(text string, pos core.Vec, align core.Align, _ core.Color) {
	x, y := int(pos.X), int(pos.Y)
	if align == core.AlignCenter {
		x -= len(text) * glyphW / 2
		y -= glyphH / 2
	}
	ebitenutil.DebugPrintAt(s.screen, text, x, y)
}

// Present implements core.Surface. Ebitengine presents after Draw returns.
func (s Surface) Present() {}

// keyMap maps window keys to game keys.
var keyMap = map[ebiten.Key]core.Key{
	ebiten.KeyArrowLeft:   core.KeyLeft,
	ebiten.KeyArrowRight:  core.KeyRight,
	ebiten.KeySpace:       core.KeySpace,
	ebiten.KeyEscape:      core.KeyEscape,
	ebiten.KeyEnter:       core.KeyReturn,
	ebiten.KeyNumpadEnter: core.KeyReturn,
	ebiten.KeyBackspace:   core.KeyBackspace,
}

// translateKeys turns this frame's key transitions and typed characters
// into game events.
func translateKeys(pressed, released []ebiten.Key, chars []rune) []core.Event {
	events := make([]core.Event, 0, len(pressed)+len(released)+len(chars))
	for _, k := range released {
		if gk, ok := keyMap[k]; ok {
			events = append(events, core.KeyUp(gk))
		}
	}
	for _, k := range pressed {
		if gk, ok := keyMap[k]; ok {
			events = append(events, core.KeyDown(gk))
		}
	}
	for _, r := range chars {
		events = append(events, core.Char(r))
	}
	return events
}

// Game adapts a Session to ebiten.Game.
type Game struct {
	session *breakout.Session
	fieldW  int
	fieldH  int
	logger  *log.Logger

	pressed  []ebiten.Key
	released []ebiten.Key
	chars    []rune
}

// NewGame wraps session for a window of the configured field size.
func NewGame(session *breakout.Session, cfg config.BreakoutConfig, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	return &Game{
		session: session,
		fieldW:  cfg.Window.Width,
		fieldH:  cfg.Window.Height,
		logger:  logger,
	}
}

// Update advances the session by one tick.
func (g *Game) Update() error {
	g.pressed = inpututil.AppendJustPressedKeys(g.pressed[:0])
	g.released = inpututil.AppendJustReleasedKeys(g.released[:0])
	g.chars = ebiten.AppendInputChars(g.chars[:0])

	events := translateKeys(g.pressed, g.released, g.chars)
	if ebiten.IsWindowBeingClosed() {
		events = append(events, core.Quit())
	}

	result := g.session.Step(events)
	if result.Err != nil {
		g.logger.Error("score store failed", "error", result.Err)
	}
	if result.Events.Has(core.FrameGameOver) {
		g.logger.Info("game over", "score", result.State.Score, "level", result.State.Level, "won", g.session.Won())
	}
	if result.State.Terminated {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.session.Render(Surface{screen: screen})
}

// Layout keeps the logical field size regardless of the window size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.fieldW, g.fieldH
}

// Run opens the window and blocks until the player quits.
func Run(session *breakout.Session, cfg config.BreakoutConfig, seed int64, logger *log.Logger) error {
	session.Reset(core.RuntimeConfig{TickRate: cfg.Window.FPS, Seed: seed})

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.FPS)
	ebiten.SetWindowClosingHandled(true)

	return ebiten.RunGame(NewGame(session, cfg, logger))
}
