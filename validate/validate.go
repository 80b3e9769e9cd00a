// Command validate provides a small CLI that validates venue grid files in a
// grid directory (../grids unless a directory is given). It checks:
//   - the size line and every cell line parse
//   - at least one road and one store exist
//   - store and road labels are unique
//   - every store has a road entrance to its west, east, south or north
//   - connectivity: every store entrance is reachable from the first one
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/wricardo/mcp-training/venuenav/venue/grid"
	"github.com/wricardo/mcp-training/venuenav/venue/route"
)

var (
	validColor   = color.New(color.FgGreen, color.Bold)
	invalidColor = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	infoColor    = color.New(color.FgCyan)
)

// ValidationResult captures the outcome of validating a single file.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Info   []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateGrid loads and validates a single grid file.
func validateGrid(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	g, err := grid.LoadFile(filePath)
	if err != nil {
		result.fail("Failed to load grid: %v", err)
		return result
	}

	roads := g.Count(grid.Road)
	stores := g.Count(grid.Store)
	if roads == 0 {
		result.fail("Must have at least 1 ROAD cell")
	}
	if stores == 0 {
		result.fail("Must have at least 1 STORE cell")
	}

	for _, label := range g.DuplicateLabels() {
		result.fail("Duplicate label %q (only the first cell in row-major order is addressable)", label)
	}

	entrances := make(map[string]grid.Position)
	var storeOrder []string
	for _, c := range g.Cells() {
		if !c.IsStore() {
			continue
		}
		road, ok := g.Nearest(c.Pos, grid.FourDir, grid.Road)
		if !ok {
			result.fail("Store %q at (%d,%d) has no adjacent road", c.Label, c.Pos.X, c.Pos.Y)
			continue
		}
		if _, seen := entrances[c.Label]; !seen {
			storeOrder = append(storeOrder, c.Label)
		}
		entrances[c.Label] = road.Pos
	}

	net := route.NewNetwork(g)
	components := net.Components()

	if result.Valid {
		conn := validateConnectivity(net, storeOrder, entrances)
		result.Valid = conn.Valid
		result.Errors = append(result.Errors, conn.Errors...)
		result.Info = append(result.Info, conn.Info...)
	}

	if result.Valid {
		result.Info = append(result.Info,
			fmt.Sprintf("Grid: %dx%d", g.Width(), g.Height()),
			fmt.Sprintf("Roads: %d", roads),
			fmt.Sprintf("Stores: %d", stores),
			fmt.Sprintf("Road components: %d", len(components)),
		)
	}

	return result
}

// validateConnectivity checks that every store entrance can reach the first
// store's entrance over roads.
func validateConnectivity(net *route.Network, order []string, entrances map[string]grid.Position) ValidationResult {
	result := ValidationResult{Valid: true}
	if len(order) < 2 {
		return result
	}

	origin := entrances[order[0]]
	var unreachable []string
	for _, label := range order[1:] {
		_, found, err := net.ShortestPath(origin, entrances[label])
		if err != nil || !found {
			unreachable = append(unreachable, label)
		}
	}

	if len(unreachable) > 0 {
		result.fail("Connectivity failure: %d/%d stores unreachable from %q", len(unreachable), len(order)-1, order[0])
		for _, label := range unreachable {
			result.fail("Unreachable: store %q", label)
		}
		return result
	}

	result.Info = append(result.Info, fmt.Sprintf("Connectivity: all %d stores reachable from %q", len(order), order[0]))
	return result
}

// validateDir validates every grid file in dir, in name order.
func validateDir(dir string) ([]ValidationResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("error finding grid files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no grid files in %s", dir)
	}

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		results = append(results, validateGrid(file))
	}
	return results, nil
}

// report prints results and returns whether all of them are valid.
func report(w io.Writer, results []ValidationResult) bool {
	allValid := true
	for _, result := range results {
		headerColor.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			validColor.Fprintln(w, "VALID")
			for _, info := range result.Info {
				infoColor.Fprintf(w, "  ✓ %s\n", info)
			}
			continue
		}

		allValid = false
		invalidColor.Fprintln(w, "INVALID")
		for _, msg := range result.Errors {
			invalidColor.Fprintf(w, "  ✗ %s\n", msg)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		validColor.Fprintln(w, "All grids are valid!")
	} else {
		invalidColor.Fprintln(w, "Some grids have errors")
	}
	return allValid
}

// main validates the grid directory given as the first argument (default
// ../grids) and exits with non-zero status if any grid is invalid.
func main() {
	gridDir := "../grids"
	if len(os.Args) > 1 {
		gridDir = os.Args[1]
	}

	results, err := validateDir(gridDir)
	if err != nil {
		invalidColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !report(os.Stdout, results) {
		os.Exit(1)
	}
}
