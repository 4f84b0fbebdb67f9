package snake

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

func newTestGame(t *testing.T, g *Game, seed int64) *Game {
	t.Helper()
	g.ResetWith(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}, config.DefaultSnakeConfig())
	return g
}

func stepN(g *Game, n int, input core.InputFrame) []core.GameEvent {
	var events []core.GameEvent
	for i := 0; i < n; i++ {
		res := g.Step(input)
		events = append(events, res.Events...)
	}
	return events
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	g1 := newTestGame(t, New(), 12345)
	g2 := newTestGame(t, New(), 12345)

	input := core.NewInputFrame()
	for i := 0; i < 600; i++ {
		input.Clear()
		switch i {
		case 50:
			input.Set(core.ActionLeft)
		case 140:
			input.Set(core.ActionDown)
		case 260:
			input.Set(core.ActionRight)
		}

		g1.Step(input)
		g2.Step(input)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); !reflect.DeepEqual(s1, s2) {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
}

func TestCadence(t *testing.T) {
	g := newTestGame(t, New(), 1)

	if g.moveEvery != 30 || g.foodEvery != 60 {
		t.Fatalf("moveEvery=%d foodEvery=%d, want 30 and 60", g.moveEvery, g.foodEvery)
	}

	idle := core.NewInputFrame()
	stepN(g, 29, idle)
	if g.Session().Tick() != 0 {
		t.Fatalf("moved after 29 frames")
	}
	stepN(g, 1, idle)
	if g.Session().Tick() != 1 {
		t.Fatalf("Tick() = %d after 30 frames, want 1", g.Session().Tick())
	}
	if len(g.Session().Food()) != 0 {
		t.Fatalf("food spawned before the food interval")
	}

	stepN(g, 30, idle)
	if g.Session().Tick() != 2 {
		t.Errorf("Tick() = %d after 60 frames, want 2", g.Session().Tick())
	}
	if len(g.Session().Food()) != 1 {
		t.Errorf("want one food item after 60 frames, got %v", g.Session().Food())
	}
}

func TestFramesFor(t *testing.T) {
	tests := []struct {
		d    time.Duration
		rate int
		want int
	}{
		{500 * time.Millisecond, 60, 30},
		{time.Second, 60, 60},
		{time.Millisecond, 60, 1},
		{0, 60, 1},
		{250 * time.Millisecond, 30, 8},
	}
	for _, tt := range tests {
		if got := framesFor(tt.d, tt.rate); got != tt.want {
			t.Errorf("framesFor(%v, %d) = %d, want %d", tt.d, tt.rate, got, tt.want)
		}
	}
}

func TestInputPriority(t *testing.T) {
	g := newTestGame(t, New(), 1)

	input := core.NewInputFrame()
	input.Set(core.ActionRight)
	input.Set(core.ActionUp)
	input.Set(core.ActionLeft)
	g.Step(input)

	stepN(g, 29, core.NewInputFrame())

	if g.Session().Heading() != DirLeft {
		t.Errorf("Heading() = %v, want left to win", g.Session().Heading())
	}
	if g.Session().Head() != (Position{2, 3}) {
		t.Errorf("Head() = %v, want (2,3)", g.Session().Head())
	}
}

func TestInputLastPressWins(t *testing.T) {
	g := newTestGame(t, New(), 1)

	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	right := core.NewInputFrame()
	right.Set(core.ActionRight)

	g.Step(left)
	stepN(g, 10, core.NewInputFrame())
	g.Step(right)
	stepN(g, 18, core.NewInputFrame())

	if g.Session().Heading() != DirRight {
		t.Errorf("Heading() = %v, want right", g.Session().Heading())
	}
}

func TestBufferedInputClearedAfterMove(t *testing.T) {
	g := newTestGame(t, New(), 1)

	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	g.Step(left)
	stepN(g, 29, core.NewInputFrame())

	if g.pending.Held {
		t.Error("pending input should be cleared by the move")
	}
}

func TestWallCrashReportsOnce(t *testing.T) {
	g := newTestGame(t, New(), 1)

	// The snake starts at (3,3) heading up and leaves the arena on tick 7.
	events := stepN(g, 7*30, core.NewInputFrame())

	var crashes []core.GameEvent
	for _, ev := range events {
		if ev.Kind == EventGameOver.String() {
			crashes = append(crashes, ev)
		}
	}
	if len(crashes) != 1 {
		t.Fatalf("got %d game over events, want 1", len(crashes))
	}
	if !strings.Contains(crashes[0].Message, "hit the wall") {
		t.Errorf("crash message = %q", crashes[0].Message)
	}

	snap := g.Snapshot()
	if snap.Crashes != 1 {
		t.Errorf("Crashes = %d, want 1", snap.Crashes)
	}
	if snap.Head != (Position{3, 3}) || snap.Length != 2 {
		t.Errorf("after crash head=%v length=%d, want restart at (3,3) length 2", snap.Head, snap.Length)
	}
	if g.State().GameOver {
		t.Error("State().GameOver should stay false, the game restarts itself")
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, New(), 1)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)

	if !g.State().Paused || g.Snapshot().State != StatePaused {
		t.Fatal("game should be paused")
	}
	stepN(g, 100, core.NewInputFrame())
	if g.Session().Tick() != 0 {
		t.Errorf("paused game moved %d ticks", g.Session().Tick())
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestRestartKeepsRunStats(t *testing.T) {
	g := newTestGame(t, New(), 1)
	stepN(g, 7*30, core.NewInputFrame())

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)

	snap := g.Snapshot()
	if snap.Crashes != 1 {
		t.Errorf("Crashes = %d, restart should keep it", snap.Crashes)
	}
	if snap.Frame != 0 || snap.MoveTick != 0 {
		t.Errorf("restart should start a fresh session, got frame=%d tick=%d", snap.Frame, snap.MoveTick)
	}
}

func TestRestartUsesFreshSeed(t *testing.T) {
	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)

	runSeeds := func() []int64 {
		g := newTestGame(t, New(), 100)
		seeds := []int64{g.runSeed}
		for i := 0; i < 3; i++ {
			// Same frame count before every restart
			stepN(g, 10, core.NewInputFrame())
			g.Step(restart)
			seeds = append(seeds, g.runSeed)
		}
		return seeds
	}

	seeds := runSeeds()
	seen := make(map[int64]bool)
	for _, s := range seeds {
		if seen[s] {
			t.Fatalf("run seeds %v repeat %d", seeds, s)
		}
		seen[s] = true
	}
	if again := runSeeds(); !reflect.DeepEqual(seeds, again) {
		t.Errorf("run seeds %v, then %v with the same base seed", seeds, again)
	}
}

func TestResetUsesSharedConfig(t *testing.T) {
	saved := sharedConfig
	t.Cleanup(func() { SetConfig(saved) })

	cfg := config.DefaultSnakeConfig()
	cfg.Arena = config.ArenaConfig{Width: 6, Height: 7}
	SetConfig(cfg)

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	if got := g.Session().Arena(); got != (Arena{Width: 6, Height: 7}) {
		t.Errorf("Arena() = %+v, want 6x7 from SetConfig", got)
	}
}

func TestFairVariantAvoidsBody(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Arena = config.ArenaConfig{Width: 3, Height: 3}
	cfg.Start.Segments = []config.Cell{{X: 1, Y: 1}, {X: 1, Y: 0}}
	cfg.Food.MaxItems = 0
	cfg.Timing.MoveInterval = time.Hour

	g := NewFair()
	g.ResetWith(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3}, cfg)

	stepN(g, 60*20, core.NewInputFrame())

	for _, f := range g.Session().Food() {
		if f == (Position{1, 1}) || f == (Position{1, 0}) {
			t.Fatalf("fair variant placed food on the body at %v", f)
		}
	}
	if len(g.Session().Food()) != 20 {
		t.Errorf("Food() has %d items, want 20", len(g.Session().Food()))
	}
}

func TestRulesFromConfig(t *testing.T) {
	rules, err := RulesFromConfig(config.DefaultSnakeConfig())
	if err != nil {
		t.Fatalf("RulesFromConfig() failed: %v", err)
	}
	if !reflect.DeepEqual(rules, ClassicRules()) {
		t.Errorf("default config rules = %+v, want classic %+v", rules, ClassicRules())
	}

	bad := config.DefaultSnakeConfig()
	bad.Start.Segments = []config.Cell{{X: 0, Y: 0}, {X: 5, Y: 5}}
	if _, err := RulesFromConfig(bad); err == nil {
		t.Error("detached start segments should be rejected")
	}

	bad = config.DefaultSnakeConfig()
	bad.Start.Heading = "sideways"
	if _, err := RulesFromConfig(bad); err == nil {
		t.Error("unknown heading should be rejected")
	}
}

func TestGameIDs(t *testing.T) {
	if New().ID() != "snake" || NewFair().ID() != "snake_fair" {
		t.Errorf("unexpected IDs %q, %q", New().ID(), NewFair().ID())
	}
	for _, id := range []string{"snake", "snake_fair"} {
		if !registry.Exists(id) {
			t.Errorf("%q should be registered", id)
		}
	}
}

func TestTitles(t *testing.T) {
	if New().Title() != "Snake" {
		t.Errorf("Expected title 'Snake', got '%s'", New().Title())
	}
	if NewFair().Title() != "Snake (Fair Food)" {
		t.Errorf("Expected title 'Snake (Fair Food)', got '%s'", NewFair().Title())
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New()
	g.ResetWith(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60, Seed: 1}, config.DefaultSnakeConfig())

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("State = %v, want paused_small_window", g.Snapshot().State)
	}
	stepN(g, 100, core.NewInputFrame())
	if g.Session().Tick() != 0 {
		t.Error("game should not move while the window is too small")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("render should show the too-small notice")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, New(), 42)
	stepN(g, 30, core.NewInputFrame())
	g.Session().food.Add(Position{X: 0, Y: 0})

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Snake", "Length: 2", "^", "o", "*"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestCellToScreenFlipsY(t *testing.T) {
	g := newTestGame(t, New(), 1)

	_, top := g.cellToScreen(Position{0, 9})
	_, bottom := g.cellToScreen(Position{0, 0})
	if top >= bottom {
		t.Errorf("row for y=9 (%d) should be above row for y=0 (%d)", top, bottom)
	}
}

func TestResizeKeepsSession(t *testing.T) {
	g := newTestGame(t, New(), 1)
	stepN(g, 30, core.NewInputFrame())

	g.Resize(20, 10)
	if g.Snapshot().State != StatePausedSmall {
		t.Fatal("shrinking below the arena should pause")
	}
	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Fatal("growing back should resume")
	}
	if g.Session().Tick() != 1 {
		t.Errorf("Resize restarted the session, tick %d", g.Session().Tick())
	}
}

func TestNewSessionFor(t *testing.T) {
	for _, id := range []string{"snake", "snake_fair"} {
		s, err := NewSessionFor(id, config.DefaultSnakeConfig(), 1)
		if err != nil {
			t.Fatalf("NewSessionFor(%q) failed: %v", id, err)
		}
		if s.Length() != 2 {
			t.Errorf("%s starts with length %d", id, s.Length())
		}
	}

	if _, err := NewSessionFor("tetris", config.DefaultSnakeConfig(), 1); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("unknown variant error = %v", err)
	}
}
