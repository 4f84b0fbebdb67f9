package snake

// EventKind identifies a session event.
type EventKind int

const (
	// EventGameOver fires once on a tick that ended in a collision.
	EventGameOver EventKind = iota + 1
	// EventGrowth fires once on a tick where the head reached food.
	EventGrowth
	// EventFoodSpawned fires when the food cadence adds an item.
	EventFoodSpawned
)

func (k EventKind) String() string {
	switch k {
	case EventGameOver:
		return "game_over"
	case EventGrowth:
		return "growth"
	case EventFoodSpawned:
		return "food_spawned"
	default:
		return "unknown"
	}
}

// Event is a signal raised by the session during a tick.
type Event struct {
	Kind EventKind
	Tick uint64
	// At is the head cell for game over and growth, the food cell for spawns.
	At Position
	// Collision is set for EventGameOver.
	Collision CollisionKind
	// Length is the body length after growth, or the length the snake had
	// when it crashed.
	Length int
}

// Listener receives events after the tick's state has been committed.
type Listener func(Event)
