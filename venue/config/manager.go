package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/venuenav/venue/grid"
)

// GridExt is the file extension of grid configuration files.
const GridExt = ".txt"

var (
	ErrGridNotFound = errors.New("grid not found")
	ErrNoSource     = errors.New("no grid source configured")
)

// GridFile describes a grid configuration file in the grid directory.
type GridFile struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Status reports what the Manager currently serves.
type Status struct {
	Source     string    `json:"source"`
	LoadedAt   time.Time `json:"loaded_at"`
	Generation int       `json:"generation"`
}

// Manager holds the active grid and the source it was loaded from
type Manager struct {
	gridDir    string
	source     Source
	current    *grid.Grid
	loadedAt   time.Time
	generation int
	mu         sync.RWMutex
}

// NewManager creates a manager for gridDir and loads src when it is not nil.
// gridDir may be empty when grids are never listed or selected by name.
func NewManager(gridDir string, src Source) (*Manager, error) {
	if gridDir != "" {
		if _, err := os.Stat(gridDir); os.IsNotExist(err) {
			return nil, fmt.Errorf("grid directory does not exist: %s", gridDir)
		}
	}

	m := &Manager{gridDir: gridDir, source: src}
	if src == nil {
		return m, nil
	}

	if _, err := m.Reload(); err != nil {
		return nil, fmt.Errorf("failed to load initial grid: %w", err)
	}
	return m, nil
}

// Current returns the active grid.
func (m *Manager) Current() (*grid.Grid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil, ErrNoSource
	}
	return m.current, nil
}

// Status returns a description of the active grid's origin.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Status{LoadedAt: m.loadedAt, Generation: m.generation}
	if m.source != nil {
		s.Source = m.source.String()
	}
	return s
}

// Reload reads the configured source again. The active grid is replaced only
// when the load succeeds.
func (m *Manager) Reload() (*grid.Grid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.source == nil {
		return nil, ErrNoSource
	}

	g, err := m.source.Load(m.current)
	if err != nil {
		return nil, err
	}

	m.swap(m.source, g)
	return g, nil
}

// Select makes the named grid file in the grid directory the active source.
// The file is loaded from scratch; nothing of the previous grid carries over.
func (m *Manager) Select(name string) (*grid.Grid, error) {
	path, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	src := FileSource{Path: path}
	g, err := src.Load(nil)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.swap(src, g)
	return g, nil
}

// ListGrids returns the grid files in the grid directory, sorted by name.
// Files that fail to parse are listed with their error.
func (m *Manager) ListGrids() ([]*GridFile, error) {
	if m.gridDir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(m.gridDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid directory: %w", err)
	}

	var files []*GridFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), GridExt) {
			continue
		}

		info := &GridFile{
			Name:     strings.TrimSuffix(entry.Name(), GridExt),
			Filename: entry.Name(),
		}
		g, err := grid.LoadFile(filepath.Join(m.gridDir, entry.Name()))
		if err != nil {
			info.Error = err.Error()
		} else {
			info.Width, info.Height = g.Width(), g.Height()
		}
		files = append(files, info)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (m *Manager) swap(src Source, g *grid.Grid) {
	m.source = src
	m.current = g
	m.loadedAt = time.Now()
	m.generation++
	log.Printf("Loaded %dx%d grid from %s (generation %d)", g.Width(), g.Height(), src, m.generation)
}

func (m *Manager) resolve(name string) (string, error) {
	if m.gridDir == "" {
		return "", fmt.Errorf("%w: %s (no grid directory)", ErrGridNotFound, name)
	}

	filename := filepath.Base(name)
	if !strings.HasSuffix(filename, GridExt) {
		filename += GridExt
	}

	path := filepath.Join(m.gridDir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrGridNotFound, name)
	}
	return path, nil
}

// ResolveSource picks the source described by s: an explicit grid file
// (relative paths are tried against the grid directory too) or else the
// first grid file in the grid directory.
func ResolveSource(s *Settings) (Source, error) {
	if s.GridFile != "" {
		if _, err := os.Stat(s.GridFile); err == nil {
			return FileSource{Path: s.GridFile}, nil
		}
		if s.GridDir != "" && !filepath.IsAbs(s.GridFile) {
			candidate := filepath.Join(s.GridDir, s.GridFile)
			if _, err := os.Stat(candidate); err == nil {
				return FileSource{Path: candidate}, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrGridNotFound, s.GridFile)
	}

	if s.GridDir == "" {
		return nil, ErrNoSource
	}

	entries, err := os.ReadDir(s.GridDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), GridExt) {
			return FileSource{Path: filepath.Join(s.GridDir, entry.Name())}, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s files in %s", ErrNoSource, GridExt, s.GridDir)
}
