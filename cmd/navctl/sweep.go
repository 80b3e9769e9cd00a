package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/venuenav/venue/grid"
	"github.com/wricardo/mcp-training/venuenav/venue/service"
)

// apiClient talks to a running venuenav server.
type apiClient struct {
	baseURL string
	client  *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// statusError is a non-2xx API response.
type statusError struct {
	Status  int
	Message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (c *apiClient) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		msg := string(body)
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return &statusError{Status: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}

// Grid fetches the active grid including every node.
func (c *apiClient) Grid(ctx context.Context) (*service.GridInfo, error) {
	var info service.GridInfo
	if err := c.get(ctx, "/api/grid", url.Values{"nodes": {"true"}}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// StoreRoute asks the server for the route between two stores.
func (c *apiClient) StoreRoute(ctx context.Context, from, to string) (*service.RouteResult, error) {
	var result service.RouteResult
	if err := c.get(ctx, "/api/route/stores", url.Values{"from": {from}, "to": {to}}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// sweepResult tallies the outcome of routing every pair of stores.
type sweepResult struct {
	Pairs       int      `json:"pairs"`
	Routed      int      `json:"routed"`
	Unreachable []string `json:"unreachable,omitempty"`
	Rejected    []string `json:"rejected,omitempty"`
	Longest     string   `json:"longest,omitempty"`
	LongestLen  int      `json:"longest_length,omitempty"`
}

// sweepStores requests a route for each unordered pair of distinct store
// labels. Rejected pairs (4xx) are recorded; transport failures abort.
func sweepStores(ctx context.Context, c *apiClient) (*sweepResult, error) {
	info, err := c.Grid(ctx)
	if err != nil {
		return nil, err
	}

	var stores []string
	seen := make(map[string]bool)
	for _, n := range info.Nodes {
		if n.Type == grid.Store && !seen[n.Label] {
			seen[n.Label] = true
			stores = append(stores, n.Label)
		}
	}

	result := &sweepResult{}
	for i := 0; i < len(stores); i++ {
		for j := i + 1; j < len(stores); j++ {
			pair := stores[i] + " -> " + stores[j]
			result.Pairs++

			route, err := c.StoreRoute(ctx, stores[i], stores[j])
			if err != nil {
				var se *statusError
				if errors.As(err, &se) && se.Status < 500 {
					result.Rejected = append(result.Rejected, pair+": "+se.Message)
					continue
				}
				return nil, err
			}
			if !route.Found {
				result.Unreachable = append(result.Unreachable, pair)
				continue
			}

			result.Routed++
			if route.Length > result.LongestLen {
				result.LongestLen = route.Length
				result.Longest = pair + " " + route.Route
			}
		}
	}
	return result, nil
}

func (a *app) sweep(ctx context.Context, cmd *cli.Command) error {
	result, err := sweepStores(ctx, newAPIClient(cmd.String("url")))
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return a.printJSON(result)
	}

	headerColor.Fprintf(a.out, "▸ %d store pairs at %s\n", result.Pairs, cmd.String("url"))
	successColor.Fprintf(a.out, "✓ routed: %d\n", result.Routed)
	for _, pair := range result.Unreachable {
		warningColor.Fprintf(a.out, "⚠ unreachable: %s\n", pair)
	}
	for _, pair := range result.Rejected {
		warningColor.Fprintf(a.out, "⚠ rejected: %s\n", pair)
	}
	if result.Longest != "" {
		a.printValue("Longest", fmt.Sprintf("%s (%d cells)", result.Longest, result.LongestLen))
	}
	return nil
}
