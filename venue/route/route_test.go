package route_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/venuenav/venue/grid"
	"github.com/wricardo/mcp-training/venuenav/venue/route"
)

// fromArt builds a grid where art[y][x] is 'R' for road, 'S' for store and
// anything else for empty. Road and store labels are "x,y".
func fromArt(t *testing.T, art []string) *grid.Grid {
	t.Helper()
	b, err := grid.NewBuilder(len(art[0]), len(art))
	require.NoError(t, err)
	for y, row := range art {
		for x, ch := range row {
			label := fmt.Sprintf("%d,%d", x, y)
			switch ch {
			case 'R':
				b.Road(x, y, label)
			case 'S':
				b.Store(x, y, label)
			}
		}
	}
	return b.Build()
}

var maze = []string{
	"RRRRR.RR",
	"R.S.R.R.",
	"R.RRR.RR",
	"RRR.S..R",
	"..RRRRRR",
}

func TestNewNetwork_OnlyRoads(t *testing.T) {
	g := fromArt(t, maze)
	net := route.NewNetwork(g)

	assert.Equal(t, g.Count(grid.Road), net.Size())
	assert.True(t, net.Contains(grid.Position{X: 0, Y: 0}))
	assert.False(t, net.Contains(grid.Position{X: 2, Y: 1}), "stores are not nodes")
	assert.False(t, net.Contains(grid.Position{X: 1, Y: 1}), "empty cells are not nodes")
	assert.ElementsMatch(t,
		[]grid.Position{{X: 1, Y: 0}, {X: 0, Y: 1}},
		net.Neighbors(grid.Position{X: 0, Y: 0}))
}

func TestShortestPath_SameCell(t *testing.T) {
	net := route.NewNetwork(fromArt(t, maze))

	path, found, err := net.ShortestPath(grid.Position{X: 2, Y: 2}, grid.Position{X: 2, Y: 2})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, route.Path{{X: 2, Y: 2}}, path)
}

func TestShortestPath_Optimal(t *testing.T) {
	net := route.NewNetwork(fromArt(t, maze))

	path, found, err := net.ShortestPath(grid.Position{X: 0, Y: 0}, grid.Position{X: 7, Y: 4})
	require.NoError(t, err)
	require.True(t, found)
	// down the left side, across the bottom: 3 + 2 + ... = 11 steps
	assert.Equal(t, 12, path.Len())
	assertValidPath(t, net, path)
}

func TestShortestPath_Symmetric(t *testing.T) {
	g := fromArt(t, maze)
	net := route.NewNetwork(g)

	for _, component := range net.Components() {
		for _, a := range component {
			for _, b := range component {
				ab, foundAB, err := net.ShortestPath(a, b)
				require.NoError(t, err)
				ba, foundBA, err := net.ShortestPath(b, a)
				require.NoError(t, err)
				require.True(t, foundAB && foundBA)
				assert.Equal(t, ab.Len(), ba.Len(), "%v <-> %v", a, b)
			}
		}
	}
}

func TestShortestPath_Disconnected(t *testing.T) {
	g := fromArt(t, []string{
		"RR.RR",
		"RRSRR",
	})
	net := route.NewNetwork(g)

	path, found, err := net.ShortestPath(grid.Position{X: 0, Y: 0}, grid.Position{X: 4, Y: 1})
	require.NoError(t, err, "no route is a result, not an error")
	assert.False(t, found)
	assert.Nil(t, path)

	assert.Len(t, net.Components(), 2)
}

func TestShortestPath_InvalidEndpoint(t *testing.T) {
	net := route.NewNetwork(fromArt(t, maze))

	cases := []struct {
		name       string
		start, end grid.Position
	}{
		{"StoreStart", grid.Position{X: 2, Y: 1}, grid.Position{X: 0, Y: 0}},
		{"EmptyEnd", grid.Position{X: 0, Y: 0}, grid.Position{X: 1, Y: 1}},
		{"OutOfBounds", grid.Position{X: -1, Y: 0}, grid.Position{X: 0, Y: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := net.ShortestPath(tc.start, tc.end)
			assert.True(t, errors.Is(err, route.ErrInvalidEndpointType), "got %v", err)
		})
	}
}

func TestShortestPath_StoresBlockTransit(t *testing.T) {
	g := fromArt(t, []string{
		"RSR",
		"RRR",
	})
	net := route.NewNetwork(g)

	path, found, err := net.ShortestPath(grid.Position{X: 0, Y: 0}, grid.Position{X: 2, Y: 0})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 5, path.Len(), "the store between the endpoints cannot be crossed")
}

func TestDistance(t *testing.T) {
	net := route.NewNetwork(fromArt(t, []string{"RRR.R"}))

	d, err := net.Distance(grid.Position{X: 0, Y: 0}, grid.Position{X: 2, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, 2, d)

	d, err = net.Distance(grid.Position{X: 0, Y: 0}, grid.Position{X: 4, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, -1, d)
}

func TestComponents_RowMajorOrder(t *testing.T) {
	g := fromArt(t, []string{
		"R.R",
		"R.R",
	})
	components := route.NewNetwork(g).Components()

	require.Len(t, components, 2)
	assert.Equal(t, grid.Position{X: 0, Y: 0}, components[0][0])
	assert.Equal(t, grid.Position{X: 2, Y: 0}, components[1][0])
}

func assertValidPath(t *testing.T, net *route.Network, path route.Path) {
	t.Helper()
	for i, p := range path {
		require.True(t, net.Contains(p), "cell %v is not a road", p)
		if i == 0 {
			continue
		}
		prev := path[i-1]
		dx, dy := p.X-prev.X, p.Y-prev.Y
		assert.Equal(t, 1, dx*dx+dy*dy, "cells %v and %v are not adjacent", prev, p)
	}
}
