package snake

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Frame     uint64 // Platform frames since Reset
	MoveTick  uint64 // Movement ticks run by the session
	Eaten     int
	Crashes   int
	Length    int
	Head      Position
	Dir       Direction
	Segments  []Position
	Food      []Position
	Pending   int // Growth owed to the snake
	MoveEvery int
	FoodEvery int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Frame:     g.frame,
		MoveTick:  g.session.Tick(),
		Eaten:     g.session.Eaten(),
		Crashes:   g.crashes,
		Length:    g.session.Length(),
		Head:      g.session.Head(),
		Dir:       g.session.Heading(),
		Segments:  g.session.Segments(),
		Food:      g.session.Food(),
		Pending:   g.session.PendingGrowth(),
		MoveEvery: g.moveEvery,
		FoodEvery: g.foodEvery,
		State:     state,
	}
}
