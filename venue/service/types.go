package service

import (
	"time"

	"github.com/wricardo/mcp-training/venuenav/venue/grid"
)

// Event types sent to the Notifier
const (
	EventGridLoaded    = "grid_loaded"
	EventRouteComputed = "route_computed"
)

// RouteResult contains the outcome of a route query
type RouteResult struct {
	Found  bool            `json:"found"`
	Route  string          `json:"route"`
	Path   []grid.Position `json:"path,omitempty"`
	Length int             `json:"length"`
	From   *grid.Cell      `json:"from,omitempty"` // resolved start road cell
	To     *grid.Cell      `json:"to,omitempty"`   // resolved end road cell
	Labels []string        `json:"labels,omitempty"`
}

// MeetingPoint is the result of ClosestRoadNode
type MeetingPoint struct {
	Found bool       `json:"found"`
	Label string     `json:"label,omitempty"`
	Cell  *grid.Cell `json:"cell,omitempty"`
	Cost  float64    `json:"cost,omitempty"`
}

// CellInfo describes a single cell and its surroundings
type CellInfo struct {
	Cell          grid.Cell   `json:"cell"`
	NearestStore  string      `json:"nearest_store,omitempty"`
	NearestRoad   *grid.Cell  `json:"nearest_road,omitempty"`
	RoadNeighbors int         `json:"road_neighbors"`
	Neighbors     []grid.Cell `json:"neighbors"`
	Scope         string      `json:"scope"`
}

// GridInfo summarizes the active grid
type GridInfo struct {
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Roads      int         `json:"roads"`
	Stores     int         `json:"stores"`
	Components int         `json:"components"`
	Source     string      `json:"source"`
	Generation int         `json:"generation"`
	LoadedAt   time.Time   `json:"loaded_at"`
	Nodes      []grid.Node `json:"nodes,omitempty"`
}

// Event is published when the grid changes or a route is computed
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}
