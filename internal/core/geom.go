// Package core provides fundamental types shared by the simulation and the
// platform drivers. It has no Bubble Tea or ebiten dependency so the game
// logic stays pure and testable.
package core

import "cmp"

// Rect is an integer cell rectangle, used for drawing on a Screen.
type Rect struct {
	X, Y int // Top-left cell
	W, H int // Size in cells
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

// Box is an axis-aligned bounding box in world units.
//
// Edges are closed: two boxes that merely touch are considered overlapping.
// This matches the arcade rules, where grazing a pipe edge counts as a hit.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewBox creates a box from its top-left corner and size.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// OverlapsX reports whether the horizontal extents of b and o intersect.
func (b Box) OverlapsX(o Box) bool {
	return b.Right() >= o.X && b.X <= o.Right()
}

// CrossedDown reports whether a value moving from prev to cur passed the
// threshold on its way down: it was strictly above and is now at or below.
// Used instead of float equality so triggers fire exactly once regardless of
// how the step size divides the distance.
func CrossedDown(prev, cur, threshold float64) bool {
	return prev > threshold && cur <= threshold
}

// Clamp restricts a value to be within [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
