package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/venuenav/venue/config"
	"github.com/wricardo/mcp-training/venuenav/venue/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// APIError is a non-2xx answer from the REST API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Venue Navigator",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Venue Navigator - MCP Interface

Routes visitors through a venue laid out as a grid of roads and stores.
Roads are walkable; stores are destinations reached from an adjacent road.

AVAILABLE TOOLS:
- shortest_path_calculation: Route between two road labels, returned as {store,store}{store} groups
- store_route: Route between two stores, starting and ending at the road next to each
- closest_road_node: Road cell where visitors coming from two stores should meet
- describe_cell: Details of a single grid cell
- grid_info: Size and contents of the active venue grid
- list_grids: Venue grids available on the server

Each {...} group of a route is one straight stretch; the labels are the
stores passed along that stretch, in order. An empty result means there is
no route between the two points.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "shortest_path_calculation",
		Description: "Shortest route between two road cells given by label. Returns the formatted route, or an empty string when there is no route or a label does not name a road.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"current": map[string]interface{}{
					"type":        "string",
					"description": "Label of the road cell the visitor is on",
				},
				"destination": map[string]interface{}{
					"type":        "string",
					"description": "Label of the road cell to reach",
				},
			},
			Required: []string{"current", "destination"},
		},
	}, c.handleShortestPath)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "store_route",
		Description: "Shortest route between two stores. Each store is entered from its adjacent road.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"start_store": map[string]interface{}{
					"type":        "string",
					"description": "Label of the store to start from",
				},
				"end_store": map[string]interface{}{
					"type":        "string",
					"description": "Label of the destination store",
				},
			},
			Required: []string{"start_store", "end_store"},
		},
	}, c.handleStoreRoute)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "closest_road_node",
		Description: "Label of the road cell next to both stores with the lowest combined distance, or null when the stores share no neighboring road.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"store_a": map[string]interface{}{
					"type":        "string",
					"description": "Label of the first store",
				},
				"store_b": map[string]interface{}{
					"type":        "string",
					"description": "Label of the second store",
				},
			},
			Required: []string{"store_a", "store_b"},
		},
	}, c.handleClosestRoadNode)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get type, label, neighbors and nearest store of a grid cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"x": map[string]interface{}{
					"type":        "number",
					"description": "X coordinate",
				},
				"y": map[string]interface{}{
					"type":        "number",
					"description": "Y coordinate",
				},
			},
			Required: []string{"x", "y"},
		},
	}, c.handleDescribeCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "grid_info",
		Description: "Size, road and store counts of the active venue grid",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGridInfo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_grids",
		Description: "List the venue grid files available on the server",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListGrids)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	endpoint := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, endpoint, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return &APIError{Status: resp.StatusCode, Message: msg}
		}
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("API error: %d", resp.StatusCode)}
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// isLookupError reports whether err is the API rejecting the arguments
// (unknown label, wrong cell type) rather than a transport failure.
func isLookupError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusNotFound || apiErr.Status == http.StatusUnprocessableEntity
}

func stringArgs(request mcp.CallToolRequest, names ...string) []string {
	args, _ := request.Params.Arguments.(map[string]interface{})
	values := make([]string, len(names))
	for i, name := range names {
		values[i], _ = args[name].(string)
	}
	return values
}

func pairQuery(path, k1, v1, k2, v2 string) string {
	q := url.Values{}
	q.Set(k1, v1)
	q.Set(k2, v2)
	return path + "?" + q.Encode()
}

// Tool handlers

func (c *Client) handleShortestPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := stringArgs(request, "current", "destination")
	if args[0] == "" || args[1] == "" {
		return mcp.NewToolResultText(""), nil
	}

	var result service.RouteResult
	err := c.apiCall("GET", pairQuery("/api/route", "from", args[0], "to", args[1]), nil, &result)
	if err != nil {
		if isLookupError(err) {
			return mcp.NewToolResultText(""), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !result.Found {
		return mcp.NewToolResultText(""), nil
	}
	return mcp.NewToolResultText(result.Route), nil
}

func (c *Client) handleStoreRoute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := stringArgs(request, "start_store", "end_store")
	if args[0] == "" || args[1] == "" {
		return mcp.NewToolResultError("start_store and end_store are required"), nil
	}

	var result service.RouteResult
	err := c.apiCall("GET", pairQuery("/api/route/stores", "from", args[0], "to", args[1]), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !result.Found {
		return mcp.NewToolResultText(""), nil
	}
	return mcp.NewToolResultText(result.Route), nil
}

func (c *Client) handleClosestRoadNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := stringArgs(request, "store_a", "store_b")
	if args[0] == "" || args[1] == "" {
		return mcp.NewToolResultError("store_a and store_b are required"), nil
	}

	var meeting service.MeetingPoint
	err := c.apiCall("GET", pairQuery("/api/closest-road", "a", args[0], "b", args[1]), nil, &meeting)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMeetingPoint(&meeting)), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	x, okX := args["x"].(float64)
	y, okY := args["y"].(float64)
	if !okX || !okY {
		return mcp.NewToolResultError("x and y must be numbers"), nil
	}

	var info service.CellInfo
	path := fmt.Sprintf("/api/grid/cell?x=%d&y=%d", int(x), int(y))
	if err := c.apiCall("GET", path, nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCellInfo(&info)), nil
}

func (c *Client) handleGridInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var info service.GridInfo
	if err := c.apiCall("GET", "/api/grid", nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGridInfo(&info)), nil
}

func (c *Client) handleListGrids(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var grids []*config.GridFile
	if err := c.apiCall("GET", "/api/grids", nil, &grids); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(grids) == 0 {
		return mcp.NewToolResultText("No grid files available"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available Grids (%d):\n\n", len(grids))
	for _, g := range grids {
		if g.Error != "" {
			fmt.Fprintf(&b, "- %s (invalid: %s)\n", g.Name, g.Error)
			continue
		}
		fmt.Fprintf(&b, "- %s (%dx%d)\n", g.Name, g.Width, g.Height)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// Formatting helpers

// formatMeetingPoint renders a meeting point as the road's label, its
// coordinates when the road is unlabeled, or "null".
func formatMeetingPoint(m *service.MeetingPoint) string {
	if !m.Found {
		return "null"
	}
	if m.Label != "" {
		return m.Label
	}
	if m.Cell != nil {
		return fmt.Sprintf("(%d,%d)", m.Cell.Pos.X, m.Cell.Pos.Y)
	}
	return "null"
}

func formatCellInfo(info *service.CellInfo) string {
	var b strings.Builder
	c := info.Cell
	fmt.Fprintf(&b, "Cell (%d,%d): %s", c.Pos.X, c.Pos.Y, c.Type)
	if c.Label != "" {
		fmt.Fprintf(&b, " %q", c.Label)
	}
	b.WriteString("\n")

	if info.NearestStore != "" {
		fmt.Fprintf(&b, "Nearest store (%s): %s\n", info.Scope, info.NearestStore)
	}
	if info.NearestRoad != nil {
		fmt.Fprintf(&b, "Nearest road (%s): (%d,%d)\n", info.Scope, info.NearestRoad.Pos.X, info.NearestRoad.Pos.Y)
	}
	fmt.Fprintf(&b, "Road neighbors: %d\n", info.RoadNeighbors)

	for _, nb := range info.Neighbors {
		fmt.Fprintf(&b, "  (%d,%d) %s", nb.Pos.X, nb.Pos.Y, nb.Type)
		if nb.Label != "" {
			fmt.Fprintf(&b, " %q", nb.Label)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatGridInfo(info *service.GridInfo) string {
	return fmt.Sprintf("Grid: %dx%d\nRoads: %d in %d connected area(s)\nStores: %d\nSource: %s (generation %d)\n",
		info.Width, info.Height, info.Roads, info.Components, info.Stores, info.Source, info.Generation)
}
