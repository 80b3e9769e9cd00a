package grid

import "errors"

var (
	// ErrConfigParse indicates malformed grid configuration text.
	ErrConfigParse = errors.New("grid: malformed configuration")
	// ErrUnknownLabel indicates that no cell carries the requested label.
	ErrUnknownLabel = errors.New("grid: no cell with the specified label")
	// ErrInvalidScope indicates an unparseable or non-positive neighbor scope.
	ErrInvalidScope = errors.New("grid: invalid neighbor scope")
)
