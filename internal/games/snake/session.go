package snake

import (
	"errors"
	"fmt"
)

// Rules fixes the arena and the snake every game starts (and restarts) with.
type Rules struct {
	Arena        Arena
	StartHeading Direction
	// Start is the head-first body placed at the beginning of every game.
	Start []Position
	// MaxFood caps the number of food items on the arena. 0 means no cap.
	MaxFood int
}

// ClassicRules returns the 10x10 arena with a two cell snake at (3,3)-(3,2)
// heading up and a single food item at a time.
func ClassicRules() Rules {
	return Rules{
		Arena:        Arena{Width: 10, Height: 10},
		StartHeading: DirUp,
		Start:        []Position{{X: 3, Y: 3}, {X: 3, Y: 2}},
		MaxFood:      1,
	}
}

// Validate checks that the rules describe a playable start.
func (r Rules) Validate() error {
	if r.Arena.Width < 1 || r.Arena.Height < 1 {
		return fmt.Errorf("snake: arena %dx%d is empty", r.Arena.Width, r.Arena.Height)
	}
	if r.MaxFood < 0 {
		return fmt.Errorf("snake: negative food cap %d", r.MaxFood)
	}
	if _, err := NewSnake(r.StartHeading, r.Start...); err != nil {
		return fmt.Errorf("snake: bad start body: %w", err)
	}
	for _, p := range r.Start {
		if !r.Arena.Contains(p) {
			return fmt.Errorf("snake: start segment %v outside %dx%d arena", p, r.Arena.Width, r.Arena.Height)
		}
	}
	return nil
}

// Phase is the session state machine position.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	if p == PhaseGameOver {
		return "game_over"
	}
	return "running"
}

// Input is the directional key sampled for one movement tick.
// The zero value means no key is held and the heading is kept.
type Input struct {
	Dir  Direction
	Held bool
}

// Hold returns an Input with d held.
func Hold(d Direction) Input {
	return Input{Dir: d, Held: true}
}

// TickResult describes what happened during one Advance call.
type TickResult struct {
	Tick      uint64
	Events    []Event
	Collision CollisionKind
	Grew      bool
}

// GameOver reports whether the tick ended in a collision and restart.
func (r TickResult) GameOver() bool {
	return r.Collision != CollisionNone
}

// Session owns the state of one game: the snake, the food and the transient
// growth bookkeeping. It is not safe for concurrent use.
type Session struct {
	rules  Rules
	placer FoodPlacer

	snake *Snake
	food  FoodField
	phase Phase
	tick  uint64
	eaten int

	// pendingGrowth counts growth signals not yet turned into segments.
	pendingGrowth int
	// lastTail is the cell the tail left during the most recent step.
	lastTail     Position
	haveLastTail bool

	listeners []Listener
}

// NewSession validates rules and starts a game in the running phase.
func NewSession(rules Rules, placer FoodPlacer) (*Session, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if placer == nil {
		return nil, errors.New("snake: nil food placer")
	}

	start := make([]Position, len(rules.Start))
	copy(start, rules.Start)
	rules.Start = start

	s := &Session{rules: rules, placer: placer}
	if err := s.restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// Subscribe registers a listener called synchronously after each tick.
func (s *Session) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Advance runs one movement tick:
//
//  1. resolve the requested heading against the reversal rule
//  2. step the snake
//  3. check the new head for collisions; on collision emit one game over
//     event, restart and stop
//  4. check whether the new head is on food
//  5. on food, consume it and emit one growth event
//  6. if growth is pending, append a segment at the tail cell vacated in 2
//
// An error is returned only for invariant violations; the tick is abandoned.
func (s *Session) Advance(in Input) (TickResult, error) {
	s.tick++
	res := TickResult{Tick: s.tick}

	heading := s.snake.Heading()
	if in.Held {
		heading = ResolveHeading(heading, in.Dir)
	}

	before := s.snake.Segments()
	newHead, vacated := s.snake.Step(heading)
	s.lastTail, s.haveLastTail = vacated, true

	if kind := CheckCollision(newHead, before, s.rules.Arena); kind != CollisionNone {
		res.Collision = kind
		res.Events = append(res.Events, Event{
			Kind:      EventGameOver,
			Tick:      s.tick,
			At:        newHead,
			Collision: kind,
			Length:    len(before),
		})
		s.phase = PhaseGameOver
		if err := s.restart(); err != nil {
			return res, err
		}
		s.emit(res.Events)
		return res, nil
	}

	ate := s.food.Consume(newHead)
	if ate {
		s.eaten++
		s.pendingGrowth++
	}

	if s.pendingGrowth > 0 {
		if err := s.applyGrowth(); err != nil {
			return res, err
		}
		res.Grew = true
	}

	if ate {
		res.Events = append(res.Events, Event{
			Kind:   EventGrowth,
			Tick:   s.tick,
			At:     newHead,
			Length: s.snake.Len(),
		})
	}

	s.emit(res.Events)
	return res, nil
}

// applyGrowth turns one pending growth unit into a segment at the vacated tail.
func (s *Session) applyGrowth() error {
	if !s.haveLastTail {
		return fmt.Errorf("snake: growth pending without a vacated tail: %w", ErrInvariantViolation)
	}
	if err := s.snake.Grow(s.lastTail); err != nil {
		return err
	}
	s.pendingGrowth--
	s.haveLastTail = false
	return nil
}

// SpawnFood runs the food cadence: it asks the placer for a cell unless the
// food cap is reached. It reports where food was placed, if anywhere.
func (s *Session) SpawnFood() (Position, bool) {
	if s.rules.MaxFood > 0 && s.food.Len() >= s.rules.MaxFood {
		return Position{}, false
	}
	pos, ok := s.placer.Place(s.rules.Arena, s.snake.Occupies)
	if !ok {
		return Position{}, false
	}
	s.food.Add(pos)
	s.emit([]Event{{
		Kind:   EventFoodSpawned,
		Tick:   s.tick,
		At:     pos,
		Length: s.snake.Len(),
	}})
	return pos, true
}

// restart clears the arena and places a fresh snake from the rules.
// It is the GameOver -> Running transition and the initial state.
func (s *Session) restart() error {
	snake, err := NewSnake(s.rules.StartHeading, s.rules.Start...)
	if err != nil {
		return err
	}
	s.snake = snake
	s.food.Clear()
	s.eaten = 0
	s.pendingGrowth = 0
	s.lastTail, s.haveLastTail = Position{}, false
	s.phase = PhaseRunning
	return nil
}

func (s *Session) emit(events []Event) {
	for _, ev := range events {
		for _, l := range s.listeners {
			l(ev)
		}
	}
}

// Rules returns the rules the session was created with.
func (s *Session) Rules() Rules {
	r := s.rules
	r.Start = make([]Position, len(s.rules.Start))
	copy(r.Start, s.rules.Start)
	return r
}

// Arena returns the playing field.
func (s *Session) Arena() Arena { return s.rules.Arena }

// Phase returns the state machine phase.
func (s *Session) Phase() Phase { return s.phase }

// Tick returns the number of movement ticks run so far.
func (s *Session) Tick() uint64 { return s.tick }

// Eaten returns the food eaten since the last restart.
func (s *Session) Eaten() int { return s.eaten }

// Snake returns a copy of the snake. Changing it does not affect the session.
func (s *Session) Snake() *Snake {
	return &Snake{segments: s.snake.Segments(), heading: s.snake.Heading()}
}

// Segments returns a copy of the body, head first.
func (s *Session) Segments() []Position { return s.snake.Segments() }

// Head returns the head cell.
func (s *Session) Head() Position { return s.snake.Head() }

// Heading returns the current heading.
func (s *Session) Heading() Direction { return s.snake.Heading() }

// Length returns the body length.
func (s *Session) Length() int { return s.snake.Len() }

// Food returns the food cells in spawn order.
func (s *Session) Food() []Position { return s.food.Items() }

// PendingGrowth returns the number of segments owed to the snake.
func (s *Session) PendingGrowth() int { return s.pendingGrowth }
