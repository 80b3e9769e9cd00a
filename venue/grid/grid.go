package grid

import "fmt"

// Grid is an immutable width x height venue map. Every coordinate holds
// exactly one Cell.
type Grid struct {
	width  int
	height int
	cells  []Cell // x-major: index = x*height + y
}

// New creates a grid where every cell is Empty with an empty label.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrConfigParse, width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: dimensions must not exceed %d, got %dx%d", ErrConfigParse, MaxDimension, width, height)
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			g.cells[g.index(x, y)] = Cell{Pos: Position{X: x, Y: y}, Type: Empty}
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// At returns the cell at p, or false when p is out of bounds.
func (g *Grid) At(p Position) (Cell, bool) {
	if !g.InBounds(p) {
		return Cell{}, false
	}
	return g.cells[g.index(p.X, p.Y)], true
}

// TypeAt returns the type at p; out-of-bounds positions report Empty.
func (g *Grid) TypeAt(p Position) CellType {
	c, ok := g.At(p)
	if !ok {
		return Empty
	}
	return c.Type
}

// ByLabel returns the first cell carrying label in row-major order.
func (g *Grid) ByLabel(label string) (Cell, error) {
	for _, c := range g.cells {
		if c.Label == label {
			return c, nil
		}
	}
	return Cell{}, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
}

// Cells returns a copy of all cells in enumeration order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Nodes returns the read-only node table in enumeration order.
func (g *Grid) Nodes() []Node {
	nodes := make([]Node, 0, len(g.cells))
	for _, c := range g.cells {
		nodes = append(nodes, Node{X: c.Pos.X, Y: c.Pos.Y, Type: c.Type, Label: c.Label})
	}
	return nodes
}

// Count returns the number of cells of the given type.
func (g *Grid) Count(t CellType) int {
	n := 0
	for _, c := range g.cells {
		if c.Type == t {
			n++
		}
	}
	return n
}

// DuplicateLabels returns the non-empty labels carried by more than one cell,
// in order of first appearance.
func (g *Grid) DuplicateLabels() []string {
	seen := make(map[string]int)
	var dups []string
	for _, c := range g.cells {
		if c.Label == "" {
			continue
		}
		seen[c.Label]++
		if seen[c.Label] == 2 {
			dups = append(dups, c.Label)
		}
	}
	return dups
}

func (g *Grid) index(x, y int) int {
	return x*g.height + y
}

// clone returns a deep copy used as the base for a same-size reload.
func (g *Grid) clone() *Grid {
	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  g.Cells(),
	}
}

// set assigns type and label at (x, y). Out-of-bounds coordinates are ignored.
// Only the loader calls it, before the grid is published.
func (g *Grid) set(x, y int, t CellType, label string) {
	p := Position{X: x, Y: y}
	if !g.InBounds(p) {
		return
	}
	g.cells[g.index(x, y)] = Cell{Pos: p, Type: t, Label: label}
}
