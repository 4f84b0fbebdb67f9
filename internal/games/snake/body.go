package snake

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation marks a state the engine should never reach.
// It always indicates a programming defect, never a game rule outcome.
var ErrInvariantViolation = errors.New("snake: invariant violation")

// Snake is the ordered body of the player, head first.
type Snake struct {
	segments []Position
	heading  Direction
}

// NewSnake builds a snake from head-first segments.
// The segments must be non-empty and pairwise adjacent.
func NewSnake(heading Direction, segments ...Position) (*Snake, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("snake: empty body: %w", ErrInvariantViolation)
	}
	for i := 1; i < len(segments); i++ {
		if !segments[i-1].Adjacent(segments[i]) {
			return nil, fmt.Errorf("snake: segments %v and %v are not adjacent: %w",
				segments[i-1], segments[i], ErrInvariantViolation)
		}
	}

	body := make([]Position, len(segments))
	copy(body, segments)
	return &Snake{segments: body, heading: heading}, nil
}

// Head returns the first segment.
func (s *Snake) Head() Position {
	return s.segments[0]
}

// Tail returns the last segment.
func (s *Snake) Tail() Position {
	return s.segments[len(s.segments)-1]
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.segments)
}

// Heading returns the direction of the last step, or the start heading.
func (s *Snake) Heading() Direction {
	return s.heading
}

// Segments returns a copy of the body, head first.
func (s *Snake) Segments() []Position {
	out := make([]Position, len(s.segments))
	copy(out, s.segments)
	return out
}

// Occupies reports whether any segment is on p.
func (s *Snake) Occupies(p Position) bool {
	for _, seg := range s.segments {
		if seg == p {
			return true
		}
	}
	return false
}

// Step moves the snake one cell along heading.
// Every segment takes the old position of its predecessor, so the length is
// unchanged. vacatedTail is the tail position before the shift.
func (s *Snake) Step(heading Direction) (newHead, vacatedTail Position) {
	vacatedTail = s.Tail()
	newHead = s.Head().Translate(heading)

	for i := len(s.segments) - 1; i > 0; i-- {
		s.segments[i] = s.segments[i-1]
	}
	s.segments[0] = newHead
	s.heading = heading

	return newHead, vacatedTail
}

// Grow appends a tail segment at at, which must touch the current tail.
// Callers pass the vacatedTail returned by the most recent Step.
func (s *Snake) Grow(at Position) error {
	if !s.Tail().Adjacent(at) {
		return fmt.Errorf("snake: grow at %v does not touch tail %v: %w", at, s.Tail(), ErrInvariantViolation)
	}
	s.segments = append(s.segments, at)
	return nil
}
