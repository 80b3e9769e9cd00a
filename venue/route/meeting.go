package route

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/wricardo/mcp-training/venuenav/venue/grid"
)

// square is the 8-neighborhood in row-major order.
var square, _ = grid.Radius(1)

// ClosestCommonRoad finds the road cell that lies in the 8-neighborhood of
// both a and b and minimizes the summed step cost to them. Orthogonal
// offsets cost one per step; diagonal offsets cost 1.5 times the summed
// magnitudes. Ties keep the first candidate in row-major order.
func ClosestCommonRoad(g *grid.Grid, a, b grid.Position) (grid.Cell, bool) {
	aNeighbors := mapset.New[grid.Position]()
	for _, c := range g.Neighbors(a, grid.EightDir) {
		aNeighbors.Put(c.Pos)
	}

	var best grid.Cell
	found := false
	bestCost := 0.0

	for _, c := range g.Neighbors(b, square) {
		if !aNeighbors.Has(c.Pos) || !c.IsRoad() {
			continue
		}
		cost := StepCost(a, c.Pos) + StepCost(b, c.Pos)
		if !found || cost < bestCost {
			best, bestCost, found = c, cost, true
		}
	}

	return best, found
}

// StepCost is the weighted distance used by ClosestCommonRoad.
func StepCost(from, to grid.Position) float64 {
	dx := abs(from.X - to.X)
	dy := abs(from.Y - to.Y)
	if dx == 0 || dy == 0 {
		return float64(dx + dy)
	}
	return 1.5 * float64(dx+dy)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
