// Package core provides the platform primitives shared by the game session
// and the terminal front ends. It has no Bubble Tea dependency so that the
// session logic stays pure and testable.
package core

// Rect is an axis-aligned area of the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// CenteredIn returns a w×h rectangle centered inside r.
func (r Rect) CenteredIn(w, h int) Rect {
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Wrap maps val into [0, n) with wrap-around in both directions.
// Returns 0 when n is not positive.
func Wrap(val, n int) int {
	if n <= 0 {
		return 0
	}
	val %= n
	if val < 0 {
		val += n
	}
	return val
}
