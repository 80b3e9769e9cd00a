package route

import (
	"strings"

	"github.com/wricardo/mcp-training/venuenav/venue/grid"
)

// Format renders path as a sequence of "{label,label}" groups. A group is a
// straight run: it closes as soon as both x and y have changed since the
// group started. Road cells are named after their first FourDir store
// neighbor and are dropped when they have none; other cells use their own
// label. Consecutive repeats inside a group are collapsed.
func Format(g *grid.Grid, path Path) string {
	if len(path) == 0 {
		return ""
	}

	var b strings.Builder
	for _, group := range Groups(g, path) {
		b.WriteString("{")
		b.WriteString(strings.Join(group, ","))
		b.WriteString("}")
	}
	return b.String()
}

// Groups splits path into straight runs and returns the deduplicated labels
// of each run. Dropped road cells still take part in the run geometry.
func Groups(g *grid.Grid, path Path) [][]string {
	if len(path) == 0 {
		return nil
	}

	var groups [][]string
	var current []string
	sameX, sameY := true, true

	for i, p := range path {
		if i > 0 {
			prev := path[i-1]
			if p.X != prev.X {
				sameX = false
			}
			if p.Y != prev.Y {
				sameY = false
			}

			if !sameX && !sameY {
				groups = append(groups, removeConsecutiveDuplicates(current))
				current = nil
				sameX, sameY = true, true
			}
		}

		if label, ok := substitute(g, p); ok {
			current = append(current, label)
		}
	}

	return append(groups, removeConsecutiveDuplicates(current))
}

// Labels returns, for every cell of path, the label of its nearest store
// under scope, or "" when the cell is not a road or has no store nearby.
func Labels(g *grid.Grid, path Path, scope grid.Scope) []string {
	labels := make([]string, 0, len(path))
	for _, p := range path {
		label := ""
		if g.TypeAt(p) == grid.Road {
			label, _ = g.NearestStore(p, scope)
		}
		labels = append(labels, label)
	}
	return labels
}

func substitute(g *grid.Grid, p grid.Position) (string, bool) {
	c, ok := g.At(p)
	if !ok {
		return "", false
	}
	if c.IsRoad() {
		return g.NearestStore(p, grid.FourDir)
	}
	return c.Label, true
}

func removeConsecutiveDuplicates(group []string) []string {
	if len(group) == 0 {
		return group
	}
	filtered := []string{group[0]}
	for _, item := range group[1:] {
		if item != filtered[len(filtered)-1] {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
