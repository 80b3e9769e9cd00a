package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/wricardo/mcp-training/venuenav/venue/grid"
)

// Source produces a grid. prev is the currently active grid, or nil; text
// sources overlay onto it when the declared dimensions match.
type Source interface {
	Load(prev *grid.Grid) (*grid.Grid, error)
	String() string
}

// FileSource reads configuration text from a file.
type FileSource struct {
	Path string
}

func (s FileSource) Load(prev *grid.Grid) (*grid.Grid, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrGridNotFound, s.Path)
		}
		return nil, fmt.Errorf("failed to open grid file: %w", err)
	}
	defer f.Close()

	g, err := grid.Reload(prev, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return g, nil
}

func (s FileSource) String() string {
	return "file:" + s.Path
}

// TextSource parses inline configuration text.
type TextSource struct {
	Text string
}

func (s TextSource) Load(prev *grid.Grid) (*grid.Grid, error) {
	return grid.Reload(prev, strings.NewReader(s.Text))
}

func (s TextSource) String() string {
	return "text"
}

// GridSource serves a grid built in memory. Reloading it is a no-op.
type GridSource struct {
	Grid *grid.Grid
}

func (s GridSource) Load(*grid.Grid) (*grid.Grid, error) {
	if s.Grid == nil {
		return nil, ErrNoSource
	}
	return s.Grid, nil
}

func (s GridSource) String() string {
	return "grid"
}
