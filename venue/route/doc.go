// Package route computes and renders walking routes over a venue grid.
//
// The route package implements:
//   - The road network: ROAD cells joined by 4-neighbor adjacency
//   - Unweighted shortest paths (breadth-first search)
//   - Connected components of the road network
//   - Route formatting that groups straight runs by nearby store names
//   - Meeting points between two stores
//
// Usage:
//
//	net := route.NewNetwork(g)
//	path, found, err := net.ShortestPath(from.Pos, to.Pos)
//	if err != nil {
//		return err
//	}
//	if !found {
//		// the two road cells are not connected
//	}
//	fmt.Println(route.Format(g, path)) // {Coffee Shop,Book Store}{Pharmacy}
//
// Store and empty cells are never part of a path. Any shortest path may be
// returned when several exist; only the length is guaranteed.
package route
