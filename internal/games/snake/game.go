// Package snake implements the grid Snake rules and the registry.Game adapter
// that drives them from frame ticks.
package snake

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Variant selects the food placement rule.
type Variant string

const (
	// VariantClassic lets food appear anywhere, including under the body.
	VariantClassic Variant = "classic"
	// VariantFair never places food on the body.
	VariantFair Variant = "fair"
)

// Game adapts a Session to the platform: it turns fixed-rate platform frames
// into the movement and food cadences, samples input and renders.
type Game struct {
	variant Variant
	cfg     config.SnakeConfig
	session *Session

	// Food seeds: each manual restart uses baseSeed+restarts, so the
	// placer never replays an earlier run.
	baseSeed int64
	restarts int64
	runSeed  int64

	frame      uint64 // Platform frames since Reset
	tickRate   int    // Platform frames per second
	moveEvery  int    // Frames per movement tick
	foodEvery  int    // Frames per food tick
	moveTicker int
	foodTicker int

	// pending is the last direction pressed since the previous movement tick.
	pending Input

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool

	// Crash banner shown for a while after an automatic restart
	lastCrash   Event
	crashFrames int
	crashes     int
	best        int // Longest body this run of the program
}

// ErrUnknownVariant is returned for variant ids this package does not provide.
var ErrUnknownVariant = errors.New("snake: unknown variant")

// sharedConfig is what Reset starts games from. The CLI replaces it with the
// loaded and validated file before any game is created.
var sharedConfig = config.DefaultSnakeConfig()

// SetConfig sets the configuration used by Reset.
func SetConfig(cfg config.SnakeConfig) {
	sharedConfig = cfg
}

// New creates a Snake game with the classic food rule.
func New() *Game {
	return &Game{variant: VariantClassic}
}

// NewFair creates a Snake game whose food never lands on the body.
func NewFair() *Game {
	return &Game{variant: VariantFair}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
	registry.Register("snake_fair", func() registry.Game {
		return NewFair()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.variant == VariantFair {
		return "snake_fair"
	}
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantFair {
		return "Snake (Fair Food)"
	}
	return "Snake"
}

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	if g.variant == VariantFair {
		return "classic snake, food never spawns under the body"
	}
	return "classic snake, food may spawn anywhere"
}

// RulesFromConfig converts a loaded configuration into validated rules.
func RulesFromConfig(cfg config.SnakeConfig) (Rules, error) {
	heading, err := ParseDirection(cfg.Start.Heading)
	if err != nil {
		return Rules{}, err
	}
	start := make([]Position, len(cfg.Start.Segments))
	for i, c := range cfg.Start.Segments {
		start[i] = Position{X: c.X, Y: c.Y}
	}
	rules := Rules{
		Arena:        Arena{Width: cfg.Arena.Width, Height: cfg.Arena.Height},
		StartHeading: heading,
		Start:        start,
		MaxFood:      cfg.Food.MaxItems,
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// NewSessionFor builds a session for the registered variant id.
func NewSessionFor(id string, cfg config.SnakeConfig, seed int64) (*Session, error) {
	var v Variant
	switch id {
	case "snake":
		v = VariantClassic
	case "snake_fair":
		v = VariantFair
	default:
		return nil, fmt.Errorf("snake: unknown variant %q: %w", id, ErrUnknownVariant)
	}
	return newVariantSession(v, cfg, seed)
}

func newVariantSession(v Variant, cfg config.SnakeConfig, seed int64) (*Session, error) {
	rules, err := RulesFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	avoid := cfg.Food.AvoidSnake || v == VariantFair
	return NewSession(rules, NewRandomPlacer(seed, avoid))
}

// Reset initializes/restarts the game from the configuration set with
// SetConfig.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.ResetWith(cfg, sharedConfig)
}

// ResetWith initializes the game from an explicit configuration.
// It panics if the configuration does not describe a playable game, since
// callers are expected to validate configuration first.
func (g *Game) ResetWith(cfg core.RuntimeConfig, snakeCfg config.SnakeConfig) {
	session, err := newVariantSession(g.variant, snakeCfg, cfg.Seed)
	if err != nil {
		panic(fmt.Sprintf("snake: invalid configuration: %v", err))
	}

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	g.cfg = snakeCfg
	g.session = session
	g.baseSeed = cfg.Seed
	g.restarts = 0
	g.runSeed = cfg.Seed
	g.frame = 0
	g.tickRate = tickRate
	g.moveEvery = framesFor(snakeCfg.Timing.MoveInterval, tickRate)
	g.foodEvery = framesFor(snakeCfg.Timing.FoodInterval, tickRate)
	g.moveTicker = 0
	g.foodTicker = 0
	g.pending = Input{}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.lastCrash = Event{}
	g.crashFrames = 0
	g.crashes = 0
	g.best = session.Length()
	g.tooSmall = !g.fits()
}

// Resize adapts to a new screen size without restarting the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.session != nil {
		g.tooSmall = !g.fits()
	}
}

// framesFor converts an interval into a whole number of platform frames, at
// least one.
func framesFor(d time.Duration, tickRate int) int {
	frames := int(math.Round(d.Seconds() * float64(tickRate)))
	return max(1, frames)
}

// Step advances the game by one platform frame.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.frame++

	if input.Has(core.ActionRestart) {
		g.restartRun()
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.sampleInput(input)

	var events []core.GameEvent

	g.moveTicker++
	if g.moveTicker >= g.moveEvery {
		g.moveTicker = 0
		events = append(events, g.advance()...)
	}

	g.foodTicker++
	if g.foodTicker >= g.foodEvery {
		g.foodTicker = 0
		g.session.SpawnFood()
	}

	if g.crashFrames > 0 {
		g.crashFrames--
	}

	return core.StepResult{State: g.State(), Events: events}
}

// sampleInput keeps the last direction pressed before the next movement tick.
// When several directions arrive in one frame the priority is
// Left, Down, Up, Right.
func (g *Game) sampleInput(input core.InputFrame) {
	action, ok := input.First(core.ActionLeft, core.ActionDown, core.ActionUp, core.ActionRight)
	if !ok {
		return
	}
	switch action {
	case core.ActionLeft:
		g.pending = Hold(DirLeft)
	case core.ActionDown:
		g.pending = Hold(DirDown)
	case core.ActionUp:
		g.pending = Hold(DirUp)
	case core.ActionRight:
		g.pending = Hold(DirRight)
	}
}

// advance runs one movement tick and translates its events.
func (g *Game) advance() []core.GameEvent {
	res, err := g.session.Advance(g.pending)
	g.pending = Input{}
	if err != nil {
		panic(err)
	}

	var out []core.GameEvent
	for _, ev := range res.Events {
		switch ev.Kind {
		case EventGameOver:
			g.lastCrash = ev
			g.crashFrames = g.moveEvery * crashTicks
			g.crashes++
			out = append(out, core.GameEvent{
				Kind:    ev.Kind.String(),
				Message: describeCrash(ev),
			})
		case EventGrowth:
			g.best = max(g.best, ev.Length)
			out = append(out, core.GameEvent{
				Kind:    ev.Kind.String(),
				Message: fmt.Sprintf("ate food, length %d", ev.Length),
			})
		}
	}
	return out
}

// restartRun starts a fresh session with the next seed in the run sequence.
func (g *Game) restartRun() {
	crashes, best := g.crashes, g.best
	base, restarts := g.baseSeed, g.restarts+1
	g.ResetWith(core.RuntimeConfig{
		ScreenW:  g.screenW,
		ScreenH:  g.screenH,
		TickRate: g.tickRate,
		Seed:     base + restarts,
	}, g.cfg)
	g.crashes, g.best = crashes, best
	g.baseSeed, g.restarts = base, restarts
}

// State returns the current game state.
// Collisions restart the game immediately, so GameOver is never reported.
func (g *Game) State() core.GameState {
	score := 0
	if g.session != nil {
		score = g.session.Eaten()
	}
	return core.GameState{
		Score:  score,
		Paused: g.paused,
	}
}

// Session exposes the running session to tests and debug tooling.
func (g *Game) Session() *Session {
	return g.session
}
