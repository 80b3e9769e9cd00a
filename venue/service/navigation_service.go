package service

import (
	"context"
	"errors"

	"github.com/wricardo/mcp-training/venuenav/venue/config"
	"github.com/wricardo/mcp-training/venuenav/venue/grid"
)

var (
	// ErrNoAdjacentRoad indicates a store with no ROAD cell west, east, south or north of it.
	ErrNoAdjacentRoad = errors.New("store has no adjacent road")
	// ErrNotStore indicates a store operation given a label of another cell type.
	ErrNotStore = errors.New("label does not name a store")
	// ErrInvalidCell indicates coordinates outside the grid.
	ErrInvalidCell = errors.New("cell out of bounds")
)

// NavigationService defines all navigation operations
type NavigationService interface {
	// Routing
	RouteByRoadEndpoints(ctx context.Context, start, end string) (*RouteResult, error)
	RouteByStoreEndpoints(ctx context.Context, startStore, endStore string) (*RouteResult, error)
	ShortestPathCalculation(ctx context.Context, current, destination string) string
	ClosestRoadNode(ctx context.Context, storeA, storeB string) (*MeetingPoint, error)

	// Grid views
	DescribeCell(ctx context.Context, x, y int) (*CellInfo, error)
	Snapshot(ctx context.Context, withNodes bool) (*GridInfo, error)
	ListGrids(ctx context.Context) ([]*config.GridFile, error)

	// Grid lifecycle
	Reload(ctx context.Context) (*GridInfo, error)
	SelectGrid(ctx context.Context, name string) (*GridInfo, error)
}

// GridProvider supplies the active grid. *config.Manager implements it.
type GridProvider interface {
	Current() (*grid.Grid, error)
	Reload() (*grid.Grid, error)
	Select(name string) (*grid.Grid, error)
	ListGrids() ([]*config.GridFile, error)
	Status() config.Status
}

// Notifier receives service events. The websocket hub implements it.
type Notifier interface {
	Notify(event *Event)
}
