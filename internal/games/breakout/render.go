package breakout

import (
	"fmt"

	"github.com/vovakirdan/breakout/internal/core"
)

// Screen text
const (
	TitleText      = "Breakout!"
	StartText      = "Press SPACE to Play"
	InitialsPrompt = "Enter your initials:"
	ScoresTitle    = "High Scores"
	GameOverText   = "Game Over!"
	WinText        = "You Win!"
	PlayAgainText  = "Press SPACE to Play Again"
)

// Render draws the current phase to dst and presents the frame.
func (s *Session) Render(dst core.Surface) {
	dst.Clear(core.ColorBlack)

	switch s.phase {
	case PhaseStartMenu:
		s.renderStartMenu(dst)
	case PhasePlaying:
		s.renderPlayfield(dst)
		s.renderHUD(dst)
	case PhaseEnterInitials:
		s.renderInitials(dst)
	case PhaseShowScores:
		s.renderScores(dst)
	}

	dst.Present()
}

func (s *Session) center(dy float64) core.Vec {
	return core.Vec{X: s.fieldW / 2, Y: s.fieldH/2 + dy}
}

func (s *Session) renderStartMenu(dst core.Surface) {
	dst.DrawText(TitleText, s.center(-20), core.AlignCenter, core.ColorWhite)
	dst.DrawText(StartText, s.center(20), core.AlignCenter, core.ColorWhite)
}

// renderPlayfield draws blocks, paddle and ball.
func (s *Session) renderPlayfield(dst core.Surface) {
	for _, b := range s.blocks {
		dst.DrawRect(b.Rect, b.Color)
	}
	dst.DrawRect(s.paddle.Rect(), s.paddle.Color)
	dst.DrawCircle(s.ball.Rect().Center(), s.ball.Radius, s.ball.Color)
}

// renderHUD draws lives bottom-left and score bottom-right.
func (s *Session) renderHUD(dst core.Surface) {
	y := s.fieldH - 20
	dst.DrawText(fmt.Sprintf("Lives: %d", s.lives), core.Vec{X: 10, Y: y}, core.AlignLeft, core.ColorWhite)
	dst.DrawText(fmt.Sprintf("Score: %d", s.score), core.Vec{X: s.fieldW - 100, Y: y}, core.AlignLeft, core.ColorWhite)
}

func (s *Session) renderInitials(dst core.Surface) {
	dst.DrawText(InitialsPrompt, s.center(0), core.AlignCenter, core.ColorWhite)
	dst.DrawText(s.initials, s.center(50), core.AlignCenter, core.ColorWhite)
}

// renderScores draws the table followed by the end-of-game message.
func (s *Session) renderScores(dst core.Surface) {
	dst.DrawText(ScoresTitle, core.Vec{X: s.fieldW / 2, Y: 50}, core.AlignCenter, core.ColorWhite)

	y := 100.0
	for i, e := range s.table {
		dst.DrawText(FormatTableRow(i+1, e.Initials, e.Score), core.Vec{X: s.fieldW / 2, Y: y}, core.AlignCenter, core.ColorWhite)
		y += 30
	}

	msg := GameOverText
	if s.won {
		msg = WinText
	}
	dst.DrawText(msg, s.center(180), core.AlignCenter, core.ColorWhite)
	dst.DrawText(PlayAgainText, s.center(225), core.AlignCenter, core.ColorWhite)
}

// FormatTableRow renders one high-score row as "1. AAA: 200".
func FormatTableRow(rank int, initials string, score int) string {
	return fmt.Sprintf("%d. %s: %d", rank, initials, score)
}
