// Package service implements the navigation use cases on top of the active
// venue grid.
//
// NavigationService is the only entry point the transports use. Each query
// takes the active grid from the GridProvider once, so a concurrent reload
// never changes the grid in the middle of a computation. The road network of
// a grid is built on first use and reused until the grid is replaced.
//
// Operations:
//   - RouteByRoadEndpoints: shortest route between two ROAD labels
//   - RouteByStoreEndpoints: shortest route between the roads adjacent to two stores
//   - ShortestPathCalculation: the agent-facing query, "" when there is no route
//   - ClosestRoadNode: the road cell both stores can reach most cheaply
//   - DescribeCell, Snapshot, ListGrids: read-only views
//   - Reload, SelectGrid: replace the active grid
//
// A route that does not exist is reported with Found set to false, never as
// an error. Errors wrap the sentinels of this package and of the grid and
// route packages so callers can use errors.Is.
package service
