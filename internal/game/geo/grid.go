package geo

import "github.com/udisondev/labyrinth/internal/model"

// Grid is a 2-D passability map indexed by cell coordinates.
// Cells outside the grid are blocked.
type Grid struct {
	width  int32
	height int32
	cells  []bool
}

// NewGrid creates a width×height grid with every cell set to passable.
func NewGrid(width, height int32, passable bool) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]bool, int(width)*int(height)),
	}
	if passable {
		for i := range g.cells {
			g.cells[i] = true
		}
	}
	return g
}

// Width returns grid width in cells.
func (g *Grid) Width() int32 { return g.width }

// Height returns grid height in cells.
func (g *Grid) Height() int32 { return g.height }

// Contains reports whether p lies inside the grid.
func (g *Grid) Contains(p model.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// Set marks a cell passable or blocked. Out of range cells are ignored.
func (g *Grid) Set(p model.Point, passable bool) {
	if !g.Contains(p) {
		return
	}
	g.cells[g.index(p)] = passable
}

// Passable reports whether p can be entered.
func (g *Grid) Passable(p model.Point) bool {
	if !g.Contains(p) {
		return false
	}
	return g.cells[g.index(p)]
}

// CellCount returns width*height.
func (g *Grid) CellCount() int {
	return len(g.cells)
}

func (g *Grid) index(p model.Point) int {
	return int(p.Y)*int(g.width) + int(p.X)
}
