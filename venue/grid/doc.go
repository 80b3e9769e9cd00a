// Package grid provides the venue grid model for the navigator.
//
// The grid package implements:
//   - Typed, labeled cells (EMPTY, ROAD, STORE)
//   - Parsing of the plain-text grid configuration format
//   - Label lookup in a fixed row-major order
//   - Neighbor scans that resolve the nearest cell of a given type
//
// Configuration Format:
//
//	<width> <height>
//	<x> <y> <TYPE> <label tokens...>
//
// Lines after the first with fewer than three tokens are ignored. The label is
// every token after the type, joined with single spaces.
//
// Enumeration Order:
//
// Cells are stored and visited with x in the outer loop and y in the inner
// loop. Every first-match rule in this package (ByLabel, Nearest) follows that
// order, so results are reproducible for grids with duplicate labels.
//
// Usage:
//
//	g, err := grid.LoadFile("grids/mall.txt")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	cell, err := g.ByLabel("Coffee Shop")
//	store, ok := g.NearestStore(cell.Pos, grid.FourDir)
//
// Immutability:
//
// A Grid is never modified after it is built. Reload returns a new Grid and
// leaves the previous one untouched, so a Grid may be shared between
// goroutines without locking.
package grid
