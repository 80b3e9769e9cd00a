package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/mcp-training/venuenav/venue/config"
	"github.com/wricardo/mcp-training/venuenav/venue/grid"
	"github.com/wricardo/mcp-training/venuenav/venue/route"
)

// navigationServiceImpl implements the NavigationService interface
type navigationServiceImpl struct {
	grids    GridProvider
	notifier Notifier
	scope    grid.Scope

	mu      sync.Mutex
	network *route.Network
}

// NewNavigationService creates a new navigation service. scope controls the
// per-cell store labels of route results and DescribeCell; route strings
// always use FourDir. notifier may be nil.
func NewNavigationService(grids GridProvider, notifier Notifier, scope grid.Scope) NavigationService {
	return &navigationServiceImpl{
		grids:    grids,
		notifier: notifier,
		scope:    scope,
	}
}

// RouteByRoadEndpoints finds the shortest route between two ROAD labels
func (s *navigationServiceImpl) RouteByRoadEndpoints(ctx context.Context, start, end string) (*RouteResult, error) {
	net, err := s.currentNetwork()
	if err != nil {
		return nil, err
	}
	g := net.Grid()

	from, err := g.ByLabel(start)
	if err != nil {
		return nil, err
	}
	to, err := g.ByLabel(end)
	if err != nil {
		return nil, err
	}

	result, err := s.route(net, from, to)
	if err != nil {
		return nil, err
	}

	s.publishRoute(start, end, result)
	return result, nil
}

// RouteByStoreEndpoints finds the shortest route between the roads adjacent
// to two stores
func (s *navigationServiceImpl) RouteByStoreEndpoints(ctx context.Context, startStore, endStore string) (*RouteResult, error) {
	net, err := s.currentNetwork()
	if err != nil {
		return nil, err
	}
	g := net.Grid()

	from, err := storeEntrance(g, startStore)
	if err != nil {
		return nil, err
	}
	to, err := storeEntrance(g, endStore)
	if err != nil {
		return nil, err
	}

	result, err := s.route(net, from, to)
	if err != nil {
		return nil, err
	}

	s.publishRoute(startStore, endStore, result)
	return result, nil
}

// ShortestPathCalculation returns the formatted route between two ROAD
// labels, or "" when either label is missing, not a road, or unreachable.
func (s *navigationServiceImpl) ShortestPathCalculation(ctx context.Context, current, destination string) string {
	result, err := s.RouteByRoadEndpoints(ctx, current, destination)
	if err != nil {
		log.Printf("shortest_path_calculation %q -> %q: %v", current, destination, err)
		return ""
	}
	if !result.Found {
		return ""
	}
	return result.Route
}

// ClosestRoadNode finds the road cell in both stores' 8-neighborhoods with
// the lowest combined step cost
func (s *navigationServiceImpl) ClosestRoadNode(ctx context.Context, storeA, storeB string) (*MeetingPoint, error) {
	g, err := s.grids.Current()
	if err != nil {
		return nil, err
	}

	a, err := store(g, storeA)
	if err != nil {
		return nil, err
	}
	b, err := store(g, storeB)
	if err != nil {
		return nil, err
	}

	cell, ok := route.ClosestCommonRoad(g, a.Pos, b.Pos)
	if !ok {
		return &MeetingPoint{Found: false}, nil
	}

	return &MeetingPoint{
		Found: true,
		Label: cell.Label,
		Cell:  &cell,
		Cost:  route.StepCost(a.Pos, cell.Pos) + route.StepCost(b.Pos, cell.Pos),
	}, nil
}

// DescribeCell returns a cell with its neighbors and nearest store
func (s *navigationServiceImpl) DescribeCell(ctx context.Context, x, y int) (*CellInfo, error) {
	g, err := s.grids.Current()
	if err != nil {
		return nil, err
	}

	pos := grid.Position{X: x, Y: y}
	cell, ok := g.At(pos)
	if !ok {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrInvalidCell, x, y, g.Width(), g.Height())
	}

	info := &CellInfo{
		Cell:      cell,
		Neighbors: g.Neighbors(pos, grid.FourDir),
		Scope:     s.scope.String(),
	}
	for _, nb := range info.Neighbors {
		if nb.IsRoad() {
			info.RoadNeighbors++
		}
	}
	if label, ok := g.NearestStore(pos, s.scope); ok {
		info.NearestStore = label
	}
	if road, ok := g.Nearest(pos, s.scope, grid.Road); ok {
		info.NearestRoad = &road
	}

	return info, nil
}

// Snapshot summarizes the active grid, optionally with the full node table
func (s *navigationServiceImpl) Snapshot(ctx context.Context, withNodes bool) (*GridInfo, error) {
	net, err := s.currentNetwork()
	if err != nil {
		return nil, err
	}
	return s.gridInfo(net, withNodes), nil
}

// ListGrids returns the grid files available for SelectGrid
func (s *navigationServiceImpl) ListGrids(ctx context.Context) ([]*config.GridFile, error) {
	return s.grids.ListGrids()
}

// Reload re-reads the configured grid source
func (s *navigationServiceImpl) Reload(ctx context.Context) (*GridInfo, error) {
	if _, err := s.grids.Reload(); err != nil {
		return nil, fmt.Errorf("failed to reload grid: %w", err)
	}
	return s.loaded()
}

// SelectGrid activates a grid file by name
func (s *navigationServiceImpl) SelectGrid(ctx context.Context, name string) (*GridInfo, error) {
	if _, err := s.grids.Select(name); err != nil {
		return nil, err
	}
	return s.loaded()
}

func (s *navigationServiceImpl) loaded() (*GridInfo, error) {
	net, err := s.currentNetwork()
	if err != nil {
		return nil, err
	}
	info := s.gridInfo(net, false)
	s.publish(EventGridLoaded, info)
	return info, nil
}

// currentNetwork returns the road network of the active grid, rebuilding it
// when the grid has been replaced since the last call.
func (s *navigationServiceImpl) currentNetwork() (*route.Network, error) {
	g, err := s.grids.Current()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.network == nil || s.network.Grid() != g {
		s.network = route.NewNetwork(g)
	}
	return s.network, nil
}

func (s *navigationServiceImpl) route(net *route.Network, from, to grid.Cell) (*RouteResult, error) {
	path, found, err := net.ShortestPath(from.Pos, to.Pos)
	if err != nil {
		return nil, err
	}

	result := &RouteResult{Found: found, From: &from, To: &to}
	if !found {
		return result, nil
	}

	g := net.Grid()
	result.Route = route.Format(g, path)
	result.Path = path
	result.Length = path.Len()
	result.Labels = route.Labels(g, path, s.scope)
	return result, nil
}

func (s *navigationServiceImpl) gridInfo(net *route.Network, withNodes bool) *GridInfo {
	g := net.Grid()
	status := s.grids.Status()

	info := &GridInfo{
		Width:      g.Width(),
		Height:     g.Height(),
		Roads:      net.Size(),
		Stores:     g.Count(grid.Store),
		Components: len(net.Components()),
		Source:     status.Source,
		Generation: status.Generation,
		LoadedAt:   status.LoadedAt,
	}
	if withNodes {
		info.Nodes = g.Nodes()
	}
	return info
}

func (s *navigationServiceImpl) publishRoute(from, to string, result *RouteResult) {
	s.publish(EventRouteComputed, map[string]interface{}{
		"from":   from,
		"to":     to,
		"found":  result.Found,
		"route":  result.Route,
		"length": result.Length,
	})
}

func (s *navigationServiceImpl) publish(eventType string, data interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(&Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	})
}

// store resolves label to a STORE cell.
func store(g *grid.Grid, label string) (grid.Cell, error) {
	c, err := g.ByLabel(label)
	if err != nil {
		return grid.Cell{}, err
	}
	if !c.IsStore() {
		return grid.Cell{}, fmt.Errorf("%w: %q is %s", ErrNotStore, label, c.Type)
	}
	return c, nil
}

// storeEntrance resolves a store label to the road cell a route to or from
// the store starts at.
func storeEntrance(g *grid.Grid, label string) (grid.Cell, error) {
	c, err := store(g, label)
	if err != nil {
		return grid.Cell{}, err
	}
	road, ok := g.Nearest(c.Pos, grid.FourDir, grid.Road)
	if !ok {
		return grid.Cell{}, fmt.Errorf("%w: %q", ErrNoAdjacentRoad, label)
	}
	return road, nil
}
