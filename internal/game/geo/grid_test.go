package geo

import (
	"testing"

	"github.com/udisondev/labyrinth/internal/model"
)

func TestGrid_Passable(t *testing.T) {
	g := NewGrid(4, 3, true)
	g.Set(model.NewPoint(1, 1), false)

	tests := []struct {
		name string
		p    model.Point
		want bool
	}{
		{"open cell", model.NewPoint(0, 0), true},
		{"blocked cell", model.NewPoint(1, 1), false},
		{"last cell", model.NewPoint(3, 2), true},
		{"negative x", model.NewPoint(-1, 0), false},
		{"beyond width", model.NewPoint(4, 0), false},
		{"beyond height", model.NewPoint(0, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Passable(tt.p); got != tt.want {
				t.Errorf("Passable(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestGrid_SetOutOfRangeIgnored(t *testing.T) {
	g := NewGrid(2, 2, false)
	g.Set(model.NewPoint(5, 5), true)

	if g.CellCount() != 4 {
		t.Errorf("CellCount() = %d, want 4", g.CellCount())
	}
	if g.Width() != 2 || g.Height() != 2 {
		t.Errorf("size = %dx%d, want 2x2", g.Width(), g.Height())
	}
}
