package grid_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/venuenav/venue/grid"
)

const mallConfig = `5 4
0 0 STORE Coffee Shop
1 0 ROAD r1
2 0 ROAD r2
3 0 STORE Book Store
1 1 ROAD r3
2 1 EMPTY
4 3 KIOSK info desk
`

func TestNew_AllCellsEmpty(t *testing.T) {
	g, err := grid.New(3, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())

	cells := g.Cells()
	require.Len(t, cells, 6)
	for _, c := range cells {
		assert.Equal(t, grid.Empty, c.Type)
		assert.Empty(t, c.Label)
	}
}

func TestNew_InvalidDimensions(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
	}{
		{"ZeroWidth", 0, 3},
		{"NegativeHeight", 3, -1},
		{"TooWide", grid.MaxDimension + 1, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.New(tc.width, tc.height)
			assert.True(t, errors.Is(err, grid.ErrConfigParse), "got %v", err)
		})
	}
}

func TestCells_RowMajorOrder(t *testing.T) {
	g, err := grid.New(2, 3)
	require.NoError(t, err)

	want := []grid.Position{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	var got []grid.Position
	for _, c := range g.Cells() {
		got = append(got, c.Pos)
	}
	assert.Equal(t, want, got)
}

func TestParse_Attributes(t *testing.T) {
	g, err := grid.Parse(mallConfig)
	require.NoError(t, err)

	c, ok := g.At(grid.Position{X: 0, Y: 0})
	require.True(t, ok)
	assert.Equal(t, grid.Store, c.Type)
	assert.Equal(t, "Coffee Shop", c.Label)

	c, _ = g.At(grid.Position{X: 2, Y: 1})
	assert.Equal(t, grid.Empty, c.Type)
	assert.Empty(t, c.Label, "a type without label tokens has an empty label")

	c, _ = g.At(grid.Position{X: 4, Y: 3})
	assert.Equal(t, grid.CellType("KIOSK"), c.Type, "unknown types are kept verbatim")
	assert.False(t, c.IsRoad())
	assert.False(t, c.IsStore())

	assert.Equal(t, 3, g.Count(grid.Road))
	assert.Equal(t, 2, g.Count(grid.Store))
}

func TestParse_SkipsShortLinesAndOutOfBounds(t *testing.T) {
	g, err := grid.Parse("2 2\n\n0 0\n1 1 ROAD\n7 7 STORE far away\n-1 0 STORE negative\n")
	require.NoError(t, err)

	assert.Equal(t, 1, g.Count(grid.Road))
	assert.Equal(t, 0, g.Count(grid.Store))
}

func TestParse_LabelWhitespaceCollapsed(t *testing.T) {
	g, err := grid.Parse("1 1\n0 0   STORE   Big\t  Shoe   Outlet  \n")
	require.NoError(t, err)

	c, _ := g.At(grid.Position{})
	assert.Equal(t, "Big Shoe Outlet", c.Label)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"Empty", ""},
		{"OneNumber", "5\n"},
		{"NotNumbers", "five five\n"},
		{"ZeroWidth", "0 5\n"},
		{"NegativeHeight", "5 -2\n"},
		{"BadX", "3 3\nx 1 ROAD\n"},
		{"BadY", "3 3\n1 y ROAD\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := grid.Parse(tc.text)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, grid.ErrConfigParse), "got %v", err)
		})
	}
}

func TestParse_IgnoresExtraSizeTokensAndBOM(t *testing.T) {
	g, err := grid.Parse("\ufeff4 2 trailing words\n0 0 ROAD a\n")
	require.NoError(t, err)
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 2, g.Height())
}

func TestReload_SameSizeOverlays(t *testing.T) {
	prev, err := grid.Parse("3 3\n0 0 STORE A\n1 1 ROAD hub\n")
	require.NoError(t, err)

	next, err := grid.Reload(prev, strings.NewReader("3 3\n2 2 STORE C\n"))
	require.NoError(t, err)

	a, _ := next.At(grid.Position{X: 0, Y: 0})
	assert.Equal(t, "A", a.Label, "same-size reload keeps earlier attributes")
	c, _ := next.At(grid.Position{X: 2, Y: 2})
	assert.Equal(t, "C", c.Label)

	old, _ := prev.At(grid.Position{X: 2, Y: 2})
	assert.Equal(t, grid.Empty, old.Type, "previous grid must not be modified")
}

func TestReload_ResizeDiscardsCells(t *testing.T) {
	prev, err := grid.Parse("3 3\n0 0 STORE A\n1 1 ROAD hub\n")
	require.NoError(t, err)

	next, err := grid.Reload(prev, strings.NewReader("4 3\n3 2 ROAD east\n"))
	require.NoError(t, err)

	_, err = next.ByLabel("A")
	assert.True(t, errors.Is(err, grid.ErrUnknownLabel), "no stale label survives a resize")
	_, err = next.ByLabel("hub")
	assert.True(t, errors.Is(err, grid.ErrUnknownLabel))
	assert.Equal(t, 1, next.Count(grid.Road))
}

func TestReload_FailureLeavesPreviousIntact(t *testing.T) {
	prev, err := grid.Parse("2 2\n0 0 ROAD a\n")
	require.NoError(t, err)

	next, err := grid.Reload(prev, strings.NewReader("2 2\n1 1 ROAD b\nq 0 ROAD c\n"))
	require.Error(t, err)
	assert.Nil(t, next)

	_, err = prev.ByLabel("b")
	assert.True(t, errors.Is(err, grid.ErrUnknownLabel))
}

func TestByLabel_FirstMatchRowMajor(t *testing.T) {
	g, err := grid.Parse("3 3\n2 0 STORE dup\n0 2 STORE dup\n1 1 ROAD dup\n")
	require.NoError(t, err)

	c, err := g.ByLabel("dup")
	require.NoError(t, err)
	assert.Equal(t, grid.Position{X: 0, Y: 2}, c.Pos, "x is the outer loop")

	assert.Equal(t, []string{"dup"}, g.DuplicateLabels())
}

func TestByLabel_Unknown(t *testing.T) {
	g, err := grid.Parse(mallConfig)
	require.NoError(t, err)

	_, err = g.ByLabel("Nowhere")
	assert.True(t, errors.Is(err, grid.ErrUnknownLabel))
}

func TestFormat_RoundTrip(t *testing.T) {
	g, err := grid.Parse(mallConfig)
	require.NoError(t, err)

	again, err := grid.Parse(grid.Format(g))
	require.NoError(t, err)
	assert.Equal(t, g.Nodes(), again.Nodes())
}

func TestBuilder_Independent(t *testing.T) {
	b, err := grid.NewBuilder(2, 1)
	require.NoError(t, err)

	first := b.Road(0, 0, "a").Build()
	b.Store(1, 0, "s")

	assert.Equal(t, 0, first.Count(grid.Store))
	assert.Equal(t, 1, b.Build().Count(grid.Store))
}
