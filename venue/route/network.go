package route

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/wricardo/mcp-training/venuenav/venue/grid"
)

// Path is an ordered list of adjacent road cells.
type Path []grid.Position

// Len returns the number of cells in the path.
func (p Path) Len() int {
	return len(p)
}

// Network is the road subgraph of a grid. It is read-only once built.
type Network struct {
	grid  *grid.Grid
	nodes []grid.Position
	adj   map[grid.Position][]grid.Position
}

// NewNetwork builds the induced subgraph of all ROAD cells of g.
func NewNetwork(g *grid.Grid) *Network {
	n := &Network{
		grid: g,
		adj:  make(map[grid.Position][]grid.Position),
	}

	for _, c := range g.Cells() {
		if !c.IsRoad() {
			continue
		}
		n.nodes = append(n.nodes, c.Pos)

		neighbors := make([]grid.Position, 0, 4)
		for _, nb := range g.Neighbors(c.Pos, grid.FourDir) {
			if nb.IsRoad() {
				neighbors = append(neighbors, nb.Pos)
			}
		}
		n.adj[c.Pos] = neighbors
	}

	return n
}

// Grid returns the grid the network was built from.
func (n *Network) Grid() *grid.Grid {
	return n.grid
}

// Size returns the number of road cells.
func (n *Network) Size() int {
	return len(n.nodes)
}

// Contains reports whether p is a road cell of the network.
func (n *Network) Contains(p grid.Position) bool {
	_, ok := n.adj[p]
	return ok
}

// Neighbors returns the road cells adjacent to p.
func (n *Network) Neighbors(p grid.Position) []grid.Position {
	return n.adj[p]
}

// Components returns the connected groups of road cells. Components are
// ordered by their first cell in row-major order.
func (n *Network) Components() [][]grid.Position {
	visited := mapset.New[grid.Position]()
	var components [][]grid.Position

	for _, start := range n.nodes {
		if visited.Has(start) {
			continue
		}

		var component []grid.Position
		queue := []grid.Position{start}
		visited.Put(start)

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			component = append(component, current)

			for _, next := range n.adj[current] {
				if !visited.Has(next) {
					visited.Put(next)
					queue = append(queue, next)
				}
			}
		}

		components = append(components, component)
	}

	return components
}
