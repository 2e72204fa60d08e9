package breakout

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/breakout/internal/config"
	"github.com/vovakirdan/breakout/internal/core"
	"github.com/vovakirdan/breakout/internal/highscore"
)

// recordingPlayer remembers every cue it was asked to play.
type recordingPlayer struct {
	played []core.Sound
}

func (p *recordingPlayer) Play(s core.Sound) {
	p.played = append(p.played, s)
}

func (p *recordingPlayer) count(s core.Sound) int {
	n := 0
	for _, got := range p.played {
		if got == s {
			n++
		}
	}
	return n
}

// failingStore rejects every write.
type failingStore struct{}

func (failingStore) Load() ([]highscore.Entry, error) { return nil, nil }
func (failingStore) Record(highscore.Entry) error     { return errors.New("disk full") }
func (failingStore) Reset() error                     { return nil }

func newTestSession(t *testing.T, seed int64) (*Session, *recordingPlayer, *highscore.MemoryStore) {
	t.Helper()
	player := &recordingPlayer{}
	store := highscore.NewMemoryStore(10)
	s, err := New(config.DefaultBreakoutConfig(), player, store)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.Reset(core.RuntimeConfig{TickRate: 30, Seed: seed})
	return s, player, store
}

// startPlaying leaves the start menu.
func startPlaying(t *testing.T, s *Session) {
	t.Helper()
	res := s.Step([]core.Event{core.KeyDown(core.KeySpace)})
	if s.phase != PhasePlaying {
		t.Fatalf("SPACE should start the game, phase = %s", s.phase)
	}
	if !res.Events.Has(core.FrameStarted) {
		t.Error("start should be reported as a frame event")
	}
}

// dropBall puts the ball just above the bottom edge, heading down.
func dropBall(s *Session) {
	s.ball.X = s.fieldW / 2
	s.ball.Y = s.fieldH - 1
	s.ball.XFac = 0
	s.ball.YFac = 1
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and inputs must give identical results
	inputs := make([][]core.Event, 300)
	inputs[0] = []core.Event{core.KeyDown(core.KeySpace)}
	for i := 1; i < len(inputs); i++ {
		switch i % 40 {
		case 5:
			inputs[i] = []core.Event{core.KeyDown(core.KeyRight)}
		case 15:
			inputs[i] = []core.Event{core.KeyUp(core.KeyRight)}
		case 20:
			inputs[i] = []core.Event{core.KeyDown(core.KeyLeft)}
		case 35:
			inputs[i] = []core.Event{core.KeyUp(core.KeyLeft)}
		}
	}

	run := func(seed int64) Snapshot {
		s, _, _ := newTestSession(t, seed)
		for _, in := range inputs {
			s.Step(in)
		}
		return s.Snapshot()
	}

	snap1 := run(12345)
	snap2 := run(12345)
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Score, snap2.Score)
	}
	if snap1.BallX != snap2.BallX || snap1.BallY != snap2.BallY {
		t.Errorf("Determinism failed: ball positions differ")
	}

	snap3 := run(54321)
	if snap1.Hash() == snap3.Hash() {
		t.Error("different seeds should produce different games")
	}
}

func TestStartMenu(t *testing.T) {
	tests := []struct {
		name     string
		events   []core.Event
		expected Phase
	}{
		{"no input", nil, PhaseStartMenu},
		{"other keys ignored", []core.Event{core.KeyDown(core.KeyLeft), core.Char('x')}, PhaseStartMenu},
		{"space starts", []core.Event{core.KeyDown(core.KeySpace)}, PhasePlaying},
		{"escape quits", []core.Event{core.KeyDown(core.KeyEscape)}, PhaseTerminated},
		{"window close quits", []core.Event{core.Quit()}, PhaseTerminated},
		{"quit wins over later space", []core.Event{core.Quit(), core.KeyDown(core.KeySpace)}, PhaseTerminated},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _, _ := newTestSession(t, 1)
			res := s.Step(tc.events)
			if s.phase != tc.expected {
				t.Errorf("phase = %s, expected %s", s.phase, tc.expected)
			}
			if res.State.Terminated != (tc.expected == PhaseTerminated) {
				t.Errorf("State.Terminated = %v", res.State.Terminated)
			}
		})
	}
}

func TestStartPlaysMusic(t *testing.T) {
	s, player, _ := newTestSession(t, 1)
	s.Step(nil)
	if player.count(core.SoundMusic) != 0 {
		t.Error("music should not start in the menu")
	}
	startPlaying(t, s)
	if player.count(core.SoundMusic) != 1 {
		t.Errorf("music played %d times, expected 1", player.count(core.SoundMusic))
	}
}

func TestBallUpdateMoves(t *testing.T) {
	tests := []struct {
		name       string
		xFac, yFac float64
	}{
		{"down", 0, 1},
		{"up-left", -0.5, -1},
		{"down-right", 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := &Ball{X: 300, Y: 250, Radius: 7, Speed: 5, XFac: tc.xFac, YFac: tc.yFac}
			b.Update(600, 500)
			if b.X == 300 && b.Y == 250 {
				t.Error("Update should move the ball")
			}
		})
	}
}

func TestBallWalls(t *testing.T) {
	// Left wall: reflect and nudge inward
	b := &Ball{X: 3, Y: 250, Radius: 7, Speed: 5, XFac: -1, YFac: 1, Nudge: 2}
	m := b.Update(600, 500)
	if !m.Bounced || b.XFac != 1 || b.X != 0 {
		t.Errorf("left wall: bounced=%v xfac=%v x=%v", m.Bounced, b.XFac, b.X)
	}

	// Right wall
	b = &Ball{X: 598, Y: 250, Radius: 7, Speed: 5, XFac: 1, YFac: 1, Nudge: 2}
	m = b.Update(600, 500)
	if !m.Bounced || b.XFac != -1 || b.X != 601 {
		t.Errorf("right wall: bounced=%v xfac=%v x=%v", m.Bounced, b.XFac, b.X)
	}

	// Top wall
	b = &Ball{X: 300, Y: 4, Radius: 7, Speed: 5, XFac: 0, YFac: -1}
	m = b.Update(600, 500)
	if !m.Bounced || b.YFac != 1 {
		t.Errorf("top wall: bounced=%v yfac=%v", m.Bounced, b.YFac)
	}

	// Bottom edge is not a wall
	b = &Ball{X: 300, Y: 498, Radius: 7, Speed: 5, XFac: 0, YFac: 1}
	m = b.Update(600, 500)
	if m.Bounced || !m.Overflow || b.YFac != 1 {
		t.Errorf("bottom: bounced=%v overflow=%v yfac=%v", m.Bounced, m.Overflow, b.YFac)
	}
}

func TestPaddleStaysInBounds(t *testing.T) {
	tests := []struct {
		name   string
		startX float64
		dir    int
		frames int
	}{
		{"left edge", 5, -1, 10},
		{"right edge", 495, 1, 10},
		{"long run left", 250, -1, 200},
		{"long run right", 250, 1, 200},
		{"still", 0, 0, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPaddle(100, 5, 10, 50, 600, 500, core.ColorWhite)
			p.X = tc.startX
			p.SetMovement(tc.dir)
			for range tc.frames {
				p.Update()
				if p.X < 0 || p.X > 600-p.Width {
					t.Fatalf("paddle out of bounds: x=%v", p.X)
				}
			}
		})
	}
}

func TestPaddleRelease(t *testing.T) {
	p := NewPaddle(100, 5, 10, 50, 600, 500, core.ColorWhite)

	p.SetMovement(1)
	p.Release(-1) // Releasing the other key keeps moving
	if p.Dir != 1 {
		t.Errorf("Dir = %d, expected 1", p.Dir)
	}
	p.Release(1)
	if p.Dir != 0 {
		t.Errorf("Dir = %d, expected 0", p.Dir)
	}
}

func TestHitPaddle(t *testing.T) {
	paddle := core.NewRect(250, 450, 100, 5)

	tests := []struct {
		name     string
		ballX    float64
		wantXFac float64
		wantYFac float64
	}{
		{"center", 300, 0, -1},
		{"left end", 250, -1, -1},
		{"right end", 350, 1, -1},
		{"quarter right", 325, 0.5, -1},
		{"left of paddle", 245, -1, 1},
		{"right of paddle", 355, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := &Ball{X: tc.ballX, Y: 447, Radius: 7, Speed: 5, XFac: 0.3, YFac: 1}
			b.HitPaddle(paddle)
			if b.XFac < -1 || b.XFac > 1 {
				t.Errorf("XFac %v out of [-1, 1]", b.XFac)
			}
			if diff := b.XFac - tc.wantXFac; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("XFac = %v, expected %v", b.XFac, tc.wantXFac)
			}
			if b.YFac != tc.wantYFac {
				t.Errorf("YFac = %v, expected %v", b.YFac, tc.wantYFac)
			}
		})
	}
}

func TestHitBlock(t *testing.T) {
	block := core.NewRect(100, 100, 40, 15)

	b := &Ball{X: 120, YFac: -1, XFac: 0.2}
	b.HitBlock(block)
	if b.YFac != 1 || b.XFac != 0.2 {
		t.Errorf("face hit: xfac=%v yfac=%v", b.XFac, b.YFac)
	}

	b = &Ball{X: 95, YFac: -1, XFac: 0.2}
	b.HitBlock(block)
	if b.XFac != -1 || b.YFac != -1 {
		t.Errorf("left end hit: xfac=%v yfac=%v", b.XFac, b.YFac)
	}

	b = &Ball{X: 145, YFac: 1, XFac: -0.2}
	b.HitBlock(block)
	if b.XFac != 1 || b.YFac != 1 {
		t.Errorf("right end hit: xfac=%v yfac=%v", b.XFac, b.YFac)
	}
}

func TestGenerateBlocks(t *testing.T) {
	s, _, _ := newTestSession(t, 7)

	if len(s.blocks) != 80 {
		t.Fatalf("generated %d blocks, expected 80", len(s.blocks))
	}

	points := map[core.Color]int{}
	for _, p := range s.palette {
		points[p.Color] = p.Points
	}
	for i, b := range s.blocks {
		if b.Health != 1 {
			t.Errorf("block %d health = %d, expected 1", i, b.Health)
		}
		if want, ok := points[b.Color]; !ok || b.Points != want {
			t.Errorf("block %d color %s has %d points", i, b.Color, b.Points)
		}
		if b.Rect.Bottom() > 265 {
			t.Errorf("block %d below the block field: %+v", i, b.Rect)
		}
	}

	// Column by column: the second block is under the first
	if s.blocks[1].Rect.X != 0 || s.blocks[1].Rect.Y != 35 {
		t.Errorf("second block at (%v, %v), expected (0, 35)", s.blocks[1].Rect.X, s.blocks[1].Rect.Y)
	}
}

func TestBlockDestroyedOnce(t *testing.T) {
	s, player, _ := newTestSession(t, 1)
	startPlaying(t, s)

	target := &Block{Rect: core.NewRect(280, 300, 40, 15), Color: core.ColorBlue, Points: 20, Health: 1}
	other := &Block{Rect: core.NewRect(0, 0, 40, 15), Color: core.ColorRed, Points: 15, Health: 1}
	s.blocks = []*Block{target, other}

	// Ball moving up into the target's bottom face
	s.ball.X, s.ball.Y = 300, 325
	s.ball.XFac, s.ball.YFac = 0, -1

	s.Step(nil)

	if s.score != 20 {
		t.Errorf("score = %d, expected 20", s.score)
	}
	if len(s.blocks) != 1 || s.blocks[0] != other {
		t.Errorf("target should be removed, %d blocks left", len(s.blocks))
	}
	if s.ball.YFac != 1 {
		t.Errorf("ball should bounce down, YFac = %v", s.ball.YFac)
	}
	if player.count(core.SoundBlock) != 1 {
		t.Errorf("block sound played %d times, expected 1", player.count(core.SoundBlock))
	}

	// A second frame cannot score the same block again
	s.Step(nil)
	if s.score != 20 {
		t.Errorf("score after second frame = %d, expected 20", s.score)
	}
}

func TestMultiBlockHit(t *testing.T) {
	s, _, _ := newTestSession(t, 1)
	startPlaying(t, s)

	left := &Block{Rect: core.NewRect(260, 300, 40, 15), Points: 10, Health: 1}
	right := &Block{Rect: core.NewRect(300, 300, 40, 15), Points: 25, Health: 1}
	s.blocks = []*Block{left, right, {Rect: core.NewRect(0, 0, 40, 15), Points: 5, Health: 1}}

	// Centered on the seam, overlapping both
	s.ball.X, s.ball.Y = 300, 325
	s.ball.XFac, s.ball.YFac = 0, -1

	s.Step(nil)

	if s.score != 35 {
		t.Errorf("both blocks should score, got %d", s.score)
	}
	if len(s.blocks) != 1 {
		t.Errorf("%d blocks left, expected 1", len(s.blocks))
	}
	// Only one deflection: YFac flipped once, not twice
	if s.ball.YFac != 1 {
		t.Errorf("YFac = %v, expected 1", s.ball.YFac)
	}
}

func TestPaddleCollision(t *testing.T) {
	s, player, _ := newTestSession(t, 1)
	startPlaying(t, s)

	s.ball.X, s.ball.Y = 300, 440
	s.ball.XFac, s.ball.YFac = 0, 1

	s.Step(nil)

	if s.ball.YFac != -1 {
		t.Errorf("ball should bounce up off the paddle, YFac = %v", s.ball.YFac)
	}
	if player.count(core.SoundPaddle) != 1 {
		t.Errorf("paddle sound played %d times, expected 1", player.count(core.SoundPaddle))
	}
}

func TestLifeLost(t *testing.T) {
	s, player, _ := newTestSession(t, 1)
	startPlaying(t, s)

	dropBall(s)
	res := s.Step(nil)

	if !res.Events.Has(core.FrameLifeLost) {
		t.Error("life loss should be reported")
	}
	if s.lives != 2 {
		t.Errorf("lives = %d, expected 2", s.lives)
	}
	if s.phase != PhasePlaying {
		t.Errorf("phase = %s, expected playing", s.phase)
	}
	if s.ball.X != 300 || s.ball.Y != 350 || s.ball.YFac != 1 {
		t.Errorf("ball not respawned: (%v, %v) yfac %v", s.ball.X, s.ball.Y, s.ball.YFac)
	}
	if s.ball.XFac < -1 || s.ball.XFac > 1 {
		t.Errorf("respawn XFac %v out of range", s.ball.XFac)
	}
	if player.count(core.SoundLifeLost) != 1 {
		t.Errorf("life-lost sound played %d times", player.count(core.SoundLifeLost))
	}
}

func TestLastLifeEndsGame(t *testing.T) {
	s, player, _ := newTestSession(t, 1)
	startPlaying(t, s)

	var res core.StepResult
	for range 3 {
		dropBall(s)
		res = s.Step(nil)
	}

	if s.phase != PhaseEnterInitials {
		t.Fatalf("phase = %s, expected initials", s.phase)
	}
	if !res.State.GameOver || !res.Events.Has(core.FrameGameOver) {
		t.Error("game over should be reported")
	}
	if s.lives != 0 {
		t.Errorf("lives = %d, expected 0", s.lives)
	}
	if s.won {
		t.Error("losing all lives is not a win")
	}
	// The last loss plays no life-lost cue
	if player.count(core.SoundLifeLost) != 2 {
		t.Errorf("life-lost sound played %d times, expected 2", player.count(core.SoundLifeLost))
	}

	// Further frames are harmless
	for range 10 {
		s.Step(nil)
	}
	if s.phase != PhaseEnterInitials {
		t.Errorf("phase changed to %s without input", s.phase)
	}
}

// clearWithBall leaves one block and bounces the ball into it.
func clearWithBall(s *Session) core.StepResult {
	s.blocks = []*Block{{Rect: core.NewRect(0, 0, 40, 15), Points: 10, Health: 1}}
	s.ball.X, s.ball.Y = 20, 20
	s.ball.XFac, s.ball.YFac = 0, -1
	return s.Step(nil)
}

func TestLevelClearAdvances(t *testing.T) {
	s, _, _ := newTestSession(t, 1)
	startPlaying(t, s)

	res := clearWithBall(s)

	if !res.Events.Has(core.FrameLevelClear) {
		t.Error("level clear should be reported")
	}
	if s.level != 2 {
		t.Errorf("level = %d, expected 2", s.level)
	}
	if len(s.blocks) != 80 {
		t.Errorf("level 2 has %d blocks, expected 80", len(s.blocks))
	}
	if s.score != 10 {
		t.Errorf("score should persist across levels, got %d", s.score)
	}
	if s.ball.Y != 350 {
		t.Errorf("ball should be fresh at the spawn point, y = %v", s.ball.Y)
	}
	if s.ball.Speed != 7 {
		t.Errorf("level 2 ball speed = %v, expected 7", s.ball.Speed)
	}
}

func TestFinalLevelClearEndsGame(t *testing.T) {
	s, _, _ := newTestSession(t, 1)
	startPlaying(t, s)

	for level := 1; level <= 3; level++ {
		if s.level != level {
			t.Fatalf("level = %d, expected %d", s.level, level)
		}
		clearWithBall(s)
	}

	if s.phase != PhaseEnterInitials {
		t.Fatalf("phase = %s, expected initials", s.phase)
	}
	if s.level != 3 {
		t.Errorf("level = %d; there is no level 4", s.level)
	}
	if !s.won {
		t.Error("clearing the last level should count as a win")
	}
	if s.score != 30 {
		t.Errorf("score = %d, expected 30", s.score)
	}
}

func TestInitialsEntry(t *testing.T) {
	s, _, store := newTestSession(t, 1)
	startPlaying(t, s)
	s.score = 120
	for range 3 {
		dropBall(s)
		s.Step(nil)
	}

	// RETURN with nothing typed is ignored
	s.Step([]core.Event{core.KeyDown(core.KeyReturn)})
	if s.phase != PhaseEnterInitials {
		t.Fatalf("empty RETURN should be ignored, phase = %s", s.phase)
	}

	s.Step([]core.Event{core.Char('a'), core.Char('1'), core.Char('b'), core.Char(' ')})
	if s.initials != "AB" {
		t.Errorf("initials = %q, expected AB", s.initials)
	}
	s.Step([]core.Event{core.KeyDown(core.KeyBackspace), core.Char('c'), core.Char('d'), core.Char('e')})
	if s.initials != "ACD" {
		t.Errorf("initials = %q, expected ACD", s.initials)
	}

	s.Step([]core.Event{core.KeyDown(core.KeyReturn)})
	if s.phase != PhaseShowScores {
		t.Fatalf("phase = %s, expected scores", s.phase)
	}

	entries, _ := store.Load()
	expected := []highscore.Entry{{Score: 120, Initials: "ACD"}}
	if !slices.Equal(entries, expected) {
		t.Errorf("store = %v, expected %v", entries, expected)
	}
	if !slices.Equal(s.Table(), expected) {
		t.Errorf("table = %v, expected %v", s.Table(), expected)
	}
}

func TestRestartFromScores(t *testing.T) {
	s, _, _ := newTestSession(t, 1)
	startPlaying(t, s)
	clearWithBall(s) // reach level 2
	for range 3 {
		dropBall(s)
		s.Step(nil)
	}
	s.Step([]core.Event{core.Char('z'), core.KeyDown(core.KeyReturn)})

	res := s.Step([]core.Event{core.KeyDown(core.KeySpace)})

	if !res.Events.Has(core.FrameRestarted) {
		t.Error("restart should be reported")
	}
	if s.phase != PhasePlaying {
		t.Errorf("phase = %s, expected playing", s.phase)
	}
	if s.score != 0 || s.lives != 3 || s.level != 1 {
		t.Errorf("restart state: score %d, lives %d, level %d", s.score, s.lives, s.level)
	}
	if len(s.blocks) != 80 {
		t.Errorf("restart has %d blocks, expected 80", len(s.blocks))
	}
	if s.ball.Speed != 5 {
		t.Errorf("restart ball speed = %v, expected level 1 speed 5", s.ball.Speed)
	}
}

func TestEscapeQuitsEverywhere(t *testing.T) {
	s, _, _ := newTestSession(t, 1)
	startPlaying(t, s)
	res := s.Step([]core.Event{core.KeyDown(core.KeyEscape)})
	if !res.State.Terminated {
		t.Error("ESC during play should terminate")
	}

	s, _, _ = newTestSession(t, 1)
	startPlaying(t, s)
	for range 3 {
		dropBall(s)
		s.Step(nil)
	}
	res = s.Step([]core.Event{core.KeyDown(core.KeyEscape)})
	if !res.State.Terminated {
		t.Error("ESC at game over should terminate")
	}
}

func TestStoreErrorIsReported(t *testing.T) {
	s, err := New(config.DefaultBreakoutConfig(), nil, failingStore{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	startPlaying(t, s)
	for range 3 {
		dropBall(s)
		s.Step(nil)
	}

	res := s.Step([]core.Event{core.Char('q'), core.KeyDown(core.KeyReturn)})
	if res.Err == nil || !strings.Contains(res.Err.Error(), "disk full") {
		t.Errorf("Err = %v, expected store failure", res.Err)
	}
	if s.phase != PhaseShowScores {
		t.Errorf("game should continue to the table, phase = %s", s.phase)
	}
}

func TestPaddleInput(t *testing.T) {
	s, _, _ := newTestSession(t, 1)
	startPlaying(t, s)
	x0 := s.paddle.X

	s.Step([]core.Event{core.KeyDown(core.KeyRight)})
	if s.paddle.X != x0+10 {
		t.Errorf("paddle x = %v, expected %v", s.paddle.X, x0+10)
	}

	// Pressing left then releasing right keeps moving left
	s.Step([]core.Event{core.KeyDown(core.KeyLeft), core.KeyUp(core.KeyRight)})
	if s.paddle.Dir != -1 {
		t.Errorf("Dir = %d, expected -1", s.paddle.Dir)
	}

	s.Step([]core.Event{core.KeyUp(core.KeyLeft)})
	x1 := s.paddle.X
	s.Step(nil)
	if s.paddle.X != x1 {
		t.Error("paddle should stop after key release")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Blocks.Palette = []config.PaletteConfig{{Color: "plaid", Points: 1}}
	if _, err := New(cfg, nil, nil); err == nil {
		t.Error("unknown palette color should fail")
	}

	cfg = config.DefaultBreakoutConfig()
	cfg.Levels = nil
	if _, err := New(cfg, nil, nil); err == nil {
		t.Error("no levels should fail")
	}

	// A level without room for blocks could never be cleared.
	cfg = config.DefaultBreakoutConfig()
	cfg.Blocks.FieldHeight = 0
	if _, err := New(cfg, nil, nil); err == nil {
		t.Error("empty block field should fail")
	}

	cfg = config.DefaultBreakoutConfig()
	cfg.Blocks.GapX = -cfg.Blocks.Width
	if _, err := New(cfg, nil, nil); err == nil {
		t.Error("overlapping columns should fail")
	}
}
