package snake

import "fmt"

// Direction is one of the four cardinal headings.
type Direction int

const (
	DirLeft Direction = iota
	DirUp
	DirRight
	DirDown
)

// Opposite returns the heading rotated by 180 degrees.
func (d Direction) Opposite() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	default:
		return DirUp
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts "left", "up", "right" or "down" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return DirLeft, nil
	case "up":
		return DirUp, nil
	case "right":
		return DirRight, nil
	case "down":
		return DirDown, nil
	}
	return DirUp, fmt.Errorf("snake: unknown direction %q", s)
}

// ResolveHeading applies a requested heading to the current one.
// A request for the opposite heading is ignored, so the snake can never
// turn back into its own neck.
func ResolveHeading(current, requested Direction) Direction {
	if requested == current.Opposite() {
		return current
	}
	return requested
}

// Position is a cell coordinate on the arena. Y grows upwards.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Translate returns the neighbouring cell in direction d.
func (p Position) Translate(d Direction) Position {
	switch d {
	case DirLeft:
		p.X--
	case DirRight:
		p.X++
	case DirUp:
		p.Y++
	case DirDown:
		p.Y--
	}
	return p
}

// Adjacent reports whether q shares an edge with p.
func (p Position) Adjacent(q Position) bool {
	dx, dy := p.X-q.X, p.Y-q.Y
	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}

// Arena is the fixed playing field, Width x Height cells.
type Arena struct {
	Width  int
	Height int
}

// Contains reports whether p lies inside the arena.
func (a Arena) Contains(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < a.Width && p.Y < a.Height
}

// Cells returns the number of cells in the arena.
func (a Arena) Cells() int {
	return a.Width * a.Height
}
