// Package mcp exposes the venue navigator to agents as MCP tools.
//
// The Client is a thin proxy: every tool call becomes a request to the REST
// API, so the same tools work against an external server or the internal
// one started for stdio mode.
//
// Tools:
//   - shortest_path_calculation(current, destination): formatted route between two road labels, "" when there is none
//   - store_route(start_store, end_store): formatted route between two stores
//   - closest_road_node(store_a, store_b): label of the meeting road cell, or "null"
//   - describe_cell(x, y), grid_info, list_grids: read-only views
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
