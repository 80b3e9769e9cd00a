package grid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load parses grid configuration text into a new Grid.
func Load(r io.Reader) (*Grid, error) {
	return Reload(nil, r)
}

// Parse is Load over an in-memory string.
func Parse(text string) (*Grid, error) {
	return Load(strings.NewReader(text))
}

// LoadFile opens, reads and parses the grid file at path.
func LoadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grid file: %w", err)
	}
	defer f.Close()

	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Reload parses configuration text on top of prev. When the declared size
// matches prev, attribute lines are applied to a copy of prev; otherwise the
// result starts from a fresh all-Empty grid. prev is never modified, and on
// error no grid is returned.
func Reload(prev *Grid, r io.Reader) (*Grid, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read grid configuration: %w", err)
		}
		return nil, fmt.Errorf("%w: line 1: missing size line", ErrConfigParse)
	}
	width, height, err := parseSizeLine(strings.TrimPrefix(scanner.Text(), "\ufeff"))
	if err != nil {
		return nil, err
	}

	var g *Grid
	if prev != nil && prev.width == width && prev.height == height {
		g = prev.clone()
	} else {
		g, err = New(width, height)
		if err != nil {
			return nil, err
		}
	}

	lineNo := 1
	for scanner.Scan() {
		lineNo++
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			continue
		}
		x, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid x coordinate %q", ErrConfigParse, lineNo, parts[0])
		}
		y, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid y coordinate %q", ErrConfigParse, lineNo, parts[1])
		}
		g.set(x, y, CellType(parts[2]), strings.Join(parts[3:], " "))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read grid configuration: %w", err)
	}

	return g, nil
}

func parseSizeLine(line string) (int, int, error) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("%w: line 1: expected \"<width> <height>\", got %q", ErrConfigParse, line)
	}
	width, err := strconv.Atoi(parts[0])
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("%w: line 1: width must be a positive integer, got %q", ErrConfigParse, parts[0])
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("%w: line 1: height must be a positive integer, got %q", ErrConfigParse, parts[1])
	}
	return width, height, nil
}

// Format renders g back into configuration text. Empty cells with no label
// are omitted.
func Format(g *Grid) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d\n", g.width, g.height)
	for _, c := range g.cells {
		if c.Type == Empty && c.Label == "" {
			continue
		}
		line := fmt.Sprintf("%d %d %s", c.Pos.X, c.Pos.Y, c.Type)
		if c.Label != "" {
			line += " " + c.Label
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
