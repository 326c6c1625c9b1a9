package entity

import "fmt"

type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"

	// NoOwner marks an edge or a cell that nobody has claimed yet.
	NoOwner = 0
)

type (
	EdgeID string
	CellID string
)

type Dot struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Dot) String() string {
	return fmt.Sprintf("%d-%d", that.X, that.Y)
}

// HorizontalEdgeID identifies the edge (x,y)-(x+1,y).
func HorizontalEdgeID(x, y int) EdgeID {
	return EdgeID(fmt.Sprintf("h-%d-%d", x, y))
}

// VerticalEdgeID identifies the edge (x,y)-(x,y+1).
func VerticalEdgeID(x, y int) EdgeID {
	return EdgeID(fmt.Sprintf("v-%d-%d", x, y))
}

func NewCellID(x, y int) CellID {
	return CellID(fmt.Sprintf("sq-%d-%d", x, y))
}

type Edge struct {
	ID          EdgeID      `json:"id"`
	Orientation Orientation `json:"type"`
	From        Dot         `json:"start"`
	To          Dot         `json:"end"`
	Completed   bool        `json:"completed"`
	Owner       int         `json:"owner"`
}

type Cell struct {
	ID     CellID `json:"id"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Top    EdgeID `json:"top"`
	Right  EdgeID `json:"right"`
	Bottom EdgeID `json:"bottom"`
	Left   EdgeID `json:"left"`
	Owner  int    `json:"owner"`
}

// Edges returns the bounding edges in top, right, bottom, left order.
func (that Cell) Edges() [4]EdgeID {
	return [...]EdgeID{that.Top, that.Right, that.Bottom, that.Left}
}

func (that Cell) IsOwned() bool {
	return that.Owner != NoOwner
}
