package breakout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/breakout/internal/config"
	"github.com/vovakirdan/breakout/internal/core"
	"github.com/vovakirdan/breakout/internal/highscore"
)

// Phase is the session's top-level state.
type Phase int

const (
	PhaseStartMenu     Phase = iota // Title screen, waiting for SPACE
	PhasePlaying                    // Ball in play
	PhaseEnterInitials              // Game over, typing initials
	PhaseShowScores                 // Game over, high-score table shown
	PhaseTerminated                 // Player quit
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStartMenu:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseEnterInitials:
		return "initials"
	case PhaseShowScores:
		return "scores"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Session runs one player's game: menus, levels, lives and score.
// It is not safe for concurrent use; the front end's loop owns it.
type Session struct {
	cfg     config.BreakoutConfig
	runtime core.RuntimeConfig
	palette []PaletteEntry
	sound   core.SoundPlayer
	scores  highscore.Store
	rng     *SimpleRNG

	paddleColor core.Color
	ballColor   core.Color
	fieldW      float64
	fieldH      float64

	phase    Phase
	tick     uint64
	score    int
	lives    int
	level    int
	won      bool // Game over reached by clearing the last level
	paddle   *Paddle
	ball     *Ball
	blocks   []*Block
	initials string
	table    []highscore.Entry
}

// New creates a session. A nil sound player is silent; a nil store keeps
// scores in memory.
func New(cfg config.BreakoutConfig, sound core.SoundPlayer, scores highscore.Store) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("breakout: %w", err)
	}
	palette, err := ParsePalette(cfg.Blocks.Palette)
	if err != nil {
		return nil, err
	}
	paddleColor, err := core.ParseColor(cfg.Paddle.Color)
	if err != nil {
		return nil, fmt.Errorf("breakout: paddle: %w", err)
	}
	ballColor, err := core.ParseColor(cfg.Ball.Color)
	if err != nil {
		return nil, fmt.Errorf("breakout: ball: %w", err)
	}
	if sound == nil {
		sound = core.SilentPlayer{}
	}
	if scores == nil {
		scores = highscore.NewMemoryStore(cfg.Scores.Limit)
	}

	s := &Session{
		cfg:         cfg,
		palette:     palette,
		sound:       sound,
		scores:      scores,
		paddleColor: paddleColor,
		ballColor:   ballColor,
		fieldW:      float64(cfg.Window.Width),
		fieldH:      float64(cfg.Window.Height),
	}
	s.Reset(core.DefaultConfig())
	return s, nil
}

// Reset returns to the start menu and reseeds the RNG.
func (s *Session) Reset(runtime core.RuntimeConfig) {
	s.runtime = runtime
	s.rng = NewSimpleRNG(runtime.Seed)
	s.phase = PhaseStartMenu
	s.tick = 0
	s.score = 0
	s.lives = s.cfg.Gameplay.Lives
	s.level = 1
	s.won = false
	s.initials = ""
	s.table = nil
	s.loadLevel()
}

// Step processes one frame's input events and advances the simulation.
func (s *Session) Step(events []core.Event) core.StepResult {
	var res core.StepResult
	s.tick++

	for _, ev := range events {
		if s.phase == PhaseTerminated {
			break
		}
		s.handleEvent(ev, &res)
	}

	if s.phase == PhasePlaying {
		s.update(&res)
	}

	res.State = s.State()
	return res
}

func (s *Session) handleEvent(ev core.Event, res *core.StepResult) {
	if ev.Kind == core.EventQuit || ev.IsKeyDown(core.KeyEscape) {
		s.phase = PhaseTerminated
		return
	}

	switch s.phase {
	case PhaseStartMenu:
		if ev.IsKeyDown(core.KeySpace) {
			s.startGame()
			res.Events |= core.FrameStarted
		}

	case PhasePlaying:
		switch ev.Kind {
		case core.EventKeyDown:
			switch ev.Key {
			case core.KeyLeft:
				s.paddle.SetMovement(-1)
			case core.KeyRight:
				s.paddle.SetMovement(1)
			}
		case core.EventKeyUp:
			switch ev.Key {
			case core.KeyLeft:
				s.paddle.Release(-1)
			case core.KeyRight:
				s.paddle.Release(1)
			}
		}

	case PhaseEnterInitials:
		switch {
		case ev.Kind == core.EventChar:
			if len(s.initials) < s.cfg.Gameplay.InitialsMax {
				s.initials += highscore.NormalizeInitials(string(ev.Rune), 1)
			}
		case ev.IsKeyDown(core.KeyBackspace):
			if len(s.initials) > 0 {
				s.initials = s.initials[:len(s.initials)-1]
			}
		case ev.IsKeyDown(core.KeyReturn):
			if s.initials != "" {
				res.Err = s.recordScore()
				s.phase = PhaseShowScores
			}
		}

	case PhaseShowScores:
		if ev.IsKeyDown(core.KeySpace) {
			s.startGame()
			res.Events |= core.FrameRestarted
		}
	}
}

// startGame begins a fresh game at level 1.
func (s *Session) startGame() {
	s.score = 0
	s.lives = s.cfg.Gameplay.Lives
	s.level = 1
	s.won = false
	s.initials = ""
	s.table = nil
	s.loadLevel()
	s.phase = PhasePlaying
	s.sound.Play(core.SoundMusic)
}

// loadLevel regenerates the blocks and places a fresh paddle and ball.
func (s *Session) loadLevel() {
	lv := s.cfg.Level(s.level)

	s.blocks = GenerateBlocks(Layout{
		BlockW: s.cfg.Blocks.Width,
		BlockH: s.cfg.Blocks.Height,
		GapX:   s.cfg.Blocks.GapX,
		GapY:   s.cfg.Blocks.GapY,
		FieldW: s.fieldW,
		FieldH: lv.FieldHeight,
	}, s.palette, s.rng)

	p := s.cfg.Paddle
	s.paddle = NewPaddle(p.Width, p.Height, lv.PaddleSpeed, p.OffsetY, s.fieldW, s.fieldH, s.paddleColor)

	s.ball = &Ball{
		Radius: s.cfg.Ball.Radius,
		Speed:  lv.BallSpeed,
		Nudge:  s.cfg.Ball.Nudge,
		Color:  s.ballColor,
	}
	s.ball.Respawn(s.spawnPoint(), s.rng)
}

func (s *Session) spawnPoint() core.Vec {
	return core.Vec{X: s.fieldW / 2, Y: s.fieldH - s.cfg.Ball.OffsetY}
}

// update runs one frame of play: paddle, ball, then collisions with the
// paddle before the blocks.
func (s *Session) update(res *core.StepResult) {
	s.paddle.Update()

	move := s.ball.Update(s.fieldW, s.fieldH)
	if move.Bounced {
		s.sound.Play(core.SoundWall)
	}
	if move.Overflow {
		s.loseLife(res)
		if s.phase != PhasePlaying {
			return
		}
	}

	ballRect := s.ball.Rect()
	if ballRect.Intersects(s.paddle.Rect()) {
		s.ball.HitPaddle(s.paddle.Rect())
		s.sound.Play(core.SoundPaddle)
	}

	s.collideBlocks(ballRect, res)
}

// collideBlocks collects every block the ball overlaps, then applies the
// hits and removes destroyed blocks in a second pass. Only the first
// overlapped block in generation order deflects the ball.
func (s *Session) collideBlocks(ballRect core.Rect, res *core.StepResult) {
	var hits []*Block
	for _, b := range s.blocks {
		if b.Rect.Intersects(ballRect) {
			hits = append(hits, b)
		}
	}
	if len(hits) == 0 {
		return
	}

	s.ball.HitBlock(hits[0].Rect)

	destroyed := false
	for _, b := range hits {
		b.Hit()
		if b.Destroyed() {
			s.score += b.Points
			destroyed = true
		}
	}
	if !destroyed {
		return
	}

	s.blocks = slices.DeleteFunc(s.blocks, func(b *Block) bool { return b.Destroyed() })
	s.sound.Play(core.SoundBlock)

	if len(s.blocks) == 0 {
		s.levelClear(res)
	}
}

func (s *Session) loseLife(res *core.StepResult) {
	s.lives--
	res.Events |= core.FrameLifeLost

	if s.lives > 0 {
		s.ball.Respawn(s.spawnPoint(), s.rng)
		s.sound.Play(core.SoundLifeLost)
		return
	}
	s.gameOver(res)
}

func (s *Session) levelClear(res *core.StepResult) {
	if s.level >= s.cfg.LevelCount() {
		s.won = true
		s.gameOver(res)
		return
	}
	s.level++
	s.loadLevel()
	res.Events |= core.FrameLevelClear
}

func (s *Session) gameOver(res *core.StepResult) {
	s.phase = PhaseEnterInitials
	s.initials = ""
	s.paddle.SetMovement(0)
	res.Events |= core.FrameGameOver
}

// recordScore stores the finished game and loads the table to display.
func (s *Session) recordScore() error {
	var errs []error
	if err := s.scores.Record(highscore.Entry{Score: s.score, Initials: s.initials}); err != nil {
		errs = append(errs, err)
	}
	table, err := s.scores.Load()
	if err != nil {
		errs = append(errs, err)
	}
	s.table = table
	return errors.Join(errs...)
}

// State returns the public status of the session.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:      s.score,
		Lives:      s.lives,
		Level:      s.level,
		GameOver:   s.phase == PhaseEnterInitials || s.phase == PhaseShowScores,
		Terminated: s.phase == PhaseTerminated,
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Initials returns the initials typed so far.
func (s *Session) Initials() string {
	return s.initials
}

// Table returns the high-score table loaded after the last game.
func (s *Session) Table() []highscore.Entry {
	return s.table
}

// Won reports whether the last game ended by clearing every level.
func (s *Session) Won() bool {
	return s.won
}

// BlocksRemaining returns the number of live blocks.
func (s *Session) BlocksRemaining() int {
	return len(s.blocks)
}
