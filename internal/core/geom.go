// Package core provides fundamental types and utilities for the shooter simulation.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Arena bounds in world units. The origin is the top-left corner.
const (
	ArenaWidth  = 480.0
	ArenaHeight = 270.0
)

// Vec2 is a 2D point or displacement in world units.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// DistSq returns the squared Euclidean distance between v and o.
func (v Vec2) DistSq(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Bearing returns the angle in radians of the straight line from v to o.
func (v Vec2) Bearing(o Vec2) float64 {
	return math.Atan2(o.Y-v.Y, o.X-v.X)
}

// Polar returns the vector of the given length pointing at angle (radians).
func Polar(angle, length float64) Vec2 {
	return Vec2{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// OutOfArena reports whether p has left the arena.
// Points on the boundary are still inside.
func OutOfArena(p Vec2) bool {
	return p.X < 0 || p.Y < 0 || p.X > ArenaWidth || p.Y > ArenaHeight
}

// ClampToArena restricts p to the arena rectangle.
func ClampToArena(p Vec2) Vec2 {
	return Vec2{X: ClampF(p.X, 0, ArenaWidth), Y: ClampF(p.Y, 0, ArenaHeight)}
}

// Hit reports whether two circles touch: the squared distance between
// p1 and p2 is at most (r1+r2)². Margins are the caller's business.
func Hit(p1 Vec2, r1 float64, p2 Vec2, r2 float64) bool {
	r := r1 + r2
	return p1.DistSq(p2) <= r*r
}

// Rect represents an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
