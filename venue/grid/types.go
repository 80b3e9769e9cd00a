package grid

// CellType represents the kind of a grid cell. Unknown type strings from a
// configuration file are kept verbatim and behave like Empty.
type CellType string

const (
	Empty CellType = "EMPTY"
	Road  CellType = "ROAD"
	Store CellType = "STORE"

	// MaxDimension bounds the declared width and height of a grid.
	MaxDimension = 1000
)

// Position represents x,y coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by the offset d.
func (p Position) Add(d Offset) Position {
	return Position{X: p.X + d.DX, Y: p.Y + d.DY}
}

// Cell represents a single grid cell
type Cell struct {
	Pos   Position `json:"pos"`
	Type  CellType `json:"type"`
	Label string   `json:"label"`
}

// IsRoad reports whether the cell is traversable.
func (c Cell) IsRoad() bool {
	return c.Type == Road
}

// IsStore reports whether the cell is a point of interest.
func (c Cell) IsStore() bool {
	return c.Type == Store
}

// Node is a flat, read-only row of the grid used for tabular export.
type Node struct {
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Type  CellType `json:"type"`
	Label string   `json:"label"`
}
