package route

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/wricardo/mcp-training/venuenav/venue/grid"
)

// ShortestPath returns a minimum-cell-count path from start to end. The bool
// is false when both endpoints are roads but no connection exists.
func (n *Network) ShortestPath(start, end grid.Position) (Path, bool, error) {
	if !n.Contains(start) || !n.Contains(end) {
		return nil, false, fmt.Errorf("%w: start %s, end %s",
			ErrInvalidEndpointType, n.describe(start), n.describe(end))
	}

	if start == end {
		return Path{start}, true, nil
	}

	parent := make(map[grid.Position]grid.Position)
	visited := mapset.New[grid.Position]()
	visited.Put(start)
	queue := []grid.Position{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range n.adj[current] {
			if visited.Has(next) {
				continue
			}
			visited.Put(next)
			parent[next] = current

			if next == end {
				return buildPath(parent, start, end), true, nil
			}
			queue = append(queue, next)
		}
	}

	return nil, false, nil
}

// Distance returns the number of steps between two road cells, or -1 when
// they are not connected.
func (n *Network) Distance(start, end grid.Position) (int, error) {
	path, found, err := n.ShortestPath(start, end)
	if err != nil {
		return 0, err
	}
	if !found {
		return -1, nil
	}
	return len(path) - 1, nil
}

func buildPath(parent map[grid.Position]grid.Position, start, end grid.Position) Path {
	var reversed Path
	for at := end; at != start; at = parent[at] {
		reversed = append(reversed, at)
	}
	reversed = append(reversed, start)

	path := make(Path, len(reversed))
	for i, p := range reversed {
		path[len(reversed)-1-i] = p
	}
	return path
}

func (n *Network) describe(p grid.Position) string {
	c, ok := n.grid.At(p)
	if !ok {
		return fmt.Sprintf("(%d,%d) out of bounds", p.X, p.Y)
	}
	return fmt.Sprintf("(%d,%d) %s", p.X, p.Y, c.Type)
}
