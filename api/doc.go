// Package api provides the HTTP REST API over the navigation service.
//
// Endpoints:
//
// Grid:
//   - GET /api/grid - Dimensions, counts and source of the active grid (?nodes=true adds the node table)
//   - GET /api/grid/cell?x=&y= - Describe one cell and its neighbors
//   - POST /api/grid/reload - Re-read the configured grid source
//   - POST /api/grid/select - Activate a grid file by name: {"name": "mall"}
//   - GET /api/grids - Grid files in the grid directory
//
// Routing:
//   - GET /api/route?from=&to= - Shortest route between two ROAD labels
//   - GET /api/route/stores?from=&to= - Shortest route between two stores
//   - GET /api/closest-road?a=&b= - Road cell shared by two stores' neighborhoods
//
// Events:
//   - GET /ws - WebSocket stream of grid_loaded and route_computed events
//
// Errors are returned as {"error": "message"}. Unknown labels, grid files
// and cells map to 404; endpoints of the wrong type, stores without road
// access and unparseable grid files map to 422; a missing grid source maps
// to 503. A route that does not exist is not an error: the response is 200
// with "found": false.
package api
