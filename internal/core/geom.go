// Package core holds the frontend-neutral pieces shared by the game and its
// frontends: the character screen, input frames and runtime settings.
// It does not import Bubble Tea.
package core

// Rect is an axis-aligned screen rectangle in character cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inner returns the rectangle shrunk by one cell on every side,
// i.e. the area inside a box border.
func (r Rect) Inner() Rect {
	return Rect{X: r.X + 1, Y: r.Y + 1, W: Max(0, r.W-2), H: Max(0, r.H-2)}
}

// CenterRect places a w x h rectangle centered horizontally in an area of the
// given width, starting at row top. Negative offsets are clamped to zero.
func CenterRect(areaW, top, w, h int) Rect {
	x := Clamp((areaW-w)/2, 0, Max(0, areaW))
	return Rect{X: x, Y: top, W: w, H: h}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
