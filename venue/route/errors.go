package route

import "errors"

// ErrInvalidEndpointType is returned when a path endpoint is not a ROAD cell.
var ErrInvalidEndpointType = errors.New("route: start or end node is not of type ROAD")
