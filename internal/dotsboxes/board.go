package dotsboxes

import (
	"fmt"

	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/apperror"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/entity"
)

// MinBoardSize is the smallest board with at least one cell.
const MinBoardSize = 2

type Board struct {
	Size  int
	Dots  []entity.Dot
	Edges []entity.Edge
	Cells []entity.Cell
}

// BuildBoard generates the dots, the undrawn edges and the unowned cells of a size x size grid.
func BuildBoard(size int) (*Board, error) {
	if size < MinBoardSize {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, size)
	}

	return &Board{
		Size:  size,
		Dots:  buildDots(size),
		Edges: buildEdges(size),
		Cells: buildCells(size),
	}, nil
}

func buildDots(size int) []entity.Dot {
	dots := make([]entity.Dot, 0, size*size)
	for y := range size {
		for x := range size {
			dots = append(dots, entity.Dot{X: x, Y: y})
		}
	}

	return dots
}

func buildEdges(size int) []entity.Edge {
	edges := make([]entity.Edge, 0, 2*size*(size-1))

	for y := range size {
		for x := range size - 1 {
			edges = append(edges, entity.Edge{
				ID:          entity.HorizontalEdgeID(x, y),
				Orientation: entity.Horizontal,
				From:        entity.Dot{X: x, Y: y},
				To:          entity.Dot{X: x + 1, Y: y},
			})
		}
	}

	for x := range size {
		for y := range size - 1 {
			edges = append(edges, entity.Edge{
				ID:          entity.VerticalEdgeID(x, y),
				Orientation: entity.Vertical,
				From:        entity.Dot{X: x, Y: y},
				To:          entity.Dot{X: x, Y: y + 1},
			})
		}
	}

	return edges
}

func buildCells(size int) []entity.Cell {
	cells := make([]entity.Cell, 0, (size-1)*(size-1))
	for y := range size - 1 {
		for x := range size - 1 {
			cells = append(cells, entity.Cell{
				ID:     entity.NewCellID(x, y),
				X:      x,
				Y:      y,
				Top:    entity.HorizontalEdgeID(x, y),
				Right:  entity.VerticalEdgeID(x+1, y),
				Bottom: entity.HorizontalEdgeID(x, y+1),
				Left:   entity.VerticalEdgeID(x, y),
			})
		}
	}

	return cells
}
