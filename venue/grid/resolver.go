package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Offset is a relative step from a cell.
type Offset struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Scope is an ordered list of neighbor offsets. The order decides which match
// wins when several neighbors qualify.
type Scope struct {
	name    string
	offsets []Offset
}

var (
	// FourDir examines west, east, south, north in that order.
	FourDir = Scope{
		name:    "four",
		offsets: []Offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}},
	}

	// EightDir examines the four cardinal neighbors followed by the diagonals.
	EightDir = Scope{
		name:    "eight",
		offsets: []Offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}},
	}
)

// Radius returns the (2r+1)x(2r+1) square around a cell, center excluded,
// enumerated with dx in the outer loop and dy in the inner loop.
func Radius(r int) (Scope, error) {
	if r < 1 {
		return Scope{}, fmt.Errorf("%w: radius must be at least 1, got %d", ErrInvalidScope, r)
	}
	offsets := make([]Offset, 0, (2*r+1)*(2*r+1)-1)
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			offsets = append(offsets, Offset{DX: dx, DY: dy})
		}
	}
	return Scope{name: "radius:" + strconv.Itoa(r), offsets: offsets}, nil
}

// ParseScope accepts "four", "eight" or "radius:N".
func ParseScope(s string) (Scope, error) {
	switch s = strings.ToLower(strings.TrimSpace(s)); {
	case s == "four" || s == "4" || s == "":
		return FourDir, nil
	case s == "eight" || s == "8":
		return EightDir, nil
	case strings.HasPrefix(s, "radius:"):
		r, err := strconv.Atoi(strings.TrimPrefix(s, "radius:"))
		if err != nil {
			return Scope{}, fmt.Errorf("%w: %q", ErrInvalidScope, s)
		}
		return Radius(r)
	}
	return Scope{}, fmt.Errorf("%w: %q", ErrInvalidScope, s)
}

// String returns the scope in ParseScope syntax.
func (s Scope) String() string {
	return s.name
}

// Offsets returns a copy of the scan order.
func (s Scope) Offsets() []Offset {
	out := make([]Offset, len(s.offsets))
	copy(out, s.offsets)
	return out
}

// Neighbors returns the in-bounds cells around p in scope order.
func (g *Grid) Neighbors(p Position, s Scope) []Cell {
	cells := make([]Cell, 0, len(s.offsets))
	for _, d := range s.offsets {
		if c, ok := g.At(p.Add(d)); ok {
			cells = append(cells, c)
		}
	}
	return cells
}

// Nearest returns the first neighbor of p, in scope order, whose type is target.
func (g *Grid) Nearest(p Position, s Scope, target CellType) (Cell, bool) {
	for _, d := range s.offsets {
		c, ok := g.At(p.Add(d))
		if ok && c.Type == target {
			return c, true
		}
	}
	return Cell{}, false
}

// NearestStore returns the label of the first Store neighbor of p.
func (g *Grid) NearestStore(p Position, s Scope) (string, bool) {
	c, ok := g.Nearest(p, s, Store)
	if !ok {
		return "", false
	}
	return c.Label, true
}
