package snake

import "math/rand"

// FoodPlacer picks the cell for a new food item.
// occupied reports cells covered by the snake; placers may ignore it.
type FoodPlacer interface {
	Place(arena Arena, occupied func(Position) bool) (Position, bool)
}

// RandomPlacer draws food cells uniformly from the whole arena.
//
// With AvoidSnake unset the body is not consulted and food may land under the
// snake, which is how the classic rules behave.
type RandomPlacer struct {
	rng        *rand.Rand
	AvoidSnake bool
}

// NewRandomPlacer returns a placer seeded with seed.
func NewRandomPlacer(seed int64, avoidSnake bool) *RandomPlacer {
	return &RandomPlacer{
		rng:        rand.New(rand.NewSource(seed)),
		AvoidSnake: avoidSnake,
	}
}

// Place returns a random cell. It fails only when AvoidSnake is set and the
// snake fills the arena.
func (p *RandomPlacer) Place(arena Arena, occupied func(Position) bool) (Position, bool) {
	if arena.Cells() <= 0 {
		return Position{}, false
	}
	if !p.AvoidSnake || occupied == nil {
		return Position{X: p.rng.Intn(arena.Width), Y: p.rng.Intn(arena.Height)}, true
	}

	free := make([]Position, 0, arena.Cells())
	for y := 0; y < arena.Height; y++ {
		for x := 0; x < arena.Width; x++ {
			pos := Position{X: x, Y: y}
			if !occupied(pos) {
				free = append(free, pos)
			}
		}
	}
	if len(free) == 0 {
		return Position{}, false
	}
	return free[p.rng.Intn(len(free))], true
}

// FoodField holds the food items currently on the arena.
type FoodField struct {
	items []Position
}

// Len returns the number of food items.
func (f *FoodField) Len() int {
	return len(f.items)
}

// Items returns a copy of the food positions in spawn order.
func (f *FoodField) Items() []Position {
	out := make([]Position, len(f.items))
	copy(out, f.items)
	return out
}

// Add places a food item.
func (f *FoodField) Add(p Position) {
	f.items = append(f.items, p)
}

// Consume removes every item on head and reports whether any was eaten.
func (f *FoodField) Consume(head Position) bool {
	kept := f.items[:0]
	eaten := false
	for _, item := range f.items {
		if CheckEating(head, item) {
			eaten = true
			continue
		}
		kept = append(kept, item)
	}
	f.items = kept
	return eaten
}

// Clear removes all food.
func (f *FoodField) Clear() {
	f.items = f.items[:0]
}
