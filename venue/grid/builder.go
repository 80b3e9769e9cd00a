package grid

// Builder assembles a Grid in code. It is used for preloaded grids and tests;
// the built Grid is independent of the Builder.
type Builder struct {
	g *Grid
}

// NewBuilder starts an all-Empty grid of the given size.
func NewBuilder(width, height int) (*Builder, error) {
	g, err := New(width, height)
	if err != nil {
		return nil, err
	}
	return &Builder{g: g}, nil
}

// Set assigns a type and label. Out-of-bounds coordinates are ignored.
func (b *Builder) Set(x, y int, t CellType, label string) *Builder {
	b.g.set(x, y, t, label)
	return b
}

// Road marks (x, y) as a road cell.
func (b *Builder) Road(x, y int, label string) *Builder {
	return b.Set(x, y, Road, label)
}

// Store marks (x, y) as a store cell.
func (b *Builder) Store(x, y int, label string) *Builder {
	return b.Set(x, y, Store, label)
}

// Build returns a snapshot of the current state.
func (b *Builder) Build() *Grid {
	return b.g.clone()
}
