package model

import (
	"fmt"
	"math"
)

// Point is a cell coordinate on the map grid.
// Value type, passed by value (immutable).
type Point struct {
	X int32
	Y int32
}

// NewPoint creates a Point with the given coordinates.
func NewPoint(x, y int32) Point {
	return Point{X: x, Y: y}
}

// Step returns the neighbouring cell in direction dir.
// UP increases Y, DOWN decreases it.
func (p Point) Step(dir Direction) Point {
	switch dir {
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

// Manhattan returns the 4-directional grid distance to other.
func (p Point) Manhattan(other Point) int32 {
	return abs32(p.X-other.X) + abs32(p.Y-other.Y)
}

// DistanceSquared returns the squared Euclidean distance (no sqrt, hot path).
func (p Point) DistanceSquared(other Point) int64 {
	dx := int64(p.X - other.X)
	dy := int64(p.Y - other.Y)
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance to other.
func (p Point) Distance(other Point) float64 {
	return math.Sqrt(float64(p.DistanceSquared(other)))
}

// DirectionTo returns the cardinal direction that reduces the Manhattan
// distance to other, preferring the X axis. ok is false when p == other.
func (p Point) DirectionTo(other Point) (dir Direction, ok bool) {
	switch {
	case other.X > p.X:
		return DirRight, true
	case other.X < p.X:
		return DirLeft, true
	case other.Y > p.Y:
		return DirUp, true
	case other.Y < p.Y:
		return DirDown, true
	}
	return 0, false
}

func (p Point) String() string {
	return fmt.Sprintf("(%d;%d)", p.X, p.Y)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
