package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/venuenav/venue/config"
	"github.com/wricardo/mcp-training/venuenav/venue/grid"
	"github.com/wricardo/mcp-training/venuenav/venue/service"
)

var (
	headerColor  = color.New(color.FgBlue, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

var (
	errNoGrid  = errors.New("no grid file given (use --grid or NAV_GRID)")
	errNoRoute = errors.New("no route")
)

// app holds the output stream shared by every command.
type app struct {
	out io.Writer
}

// newApp builds the navctl command tree writing results to out.
func newApp(out io.Writer) *cli.Command {
	a := &app{out: out}

	return &cli.Command{
		Name:      "navctl",
		Usage:     "Query routes and meeting points on a venue grid",
		Version:   "1.0.0",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "grid",
				Aliases: []string{"g"},
				Usage:   "grid configuration file",
				Sources: cli.EnvVars("NAV_GRID"),
			},
			&cli.StringFlag{
				Name:    "scope",
				Value:   "four",
				Usage:   "neighbor scope for per-cell store labels: four, eight or radius:N",
				Sources: cli.EnvVars("NAV_SCOPE"),
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print results as JSON",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "route",
				Usage:     "Shortest route between two labeled road cells",
				ArgsUsage: "FROM TO",
				Action:    a.route,
			},
			{
				Name:      "store-route",
				Usage:     "Shortest route between the road entrances of two stores",
				ArgsUsage: "FROM_STORE TO_STORE",
				Action:    a.storeRoute,
			},
			{
				Name:      "closest",
				Usage:     "Road cell adjacent to both stores with the lowest combined step cost",
				ArgsUsage: "STORE_A STORE_B",
				Action:    a.closest,
			},
			{
				Name:   "analyze",
				Usage:  "Summarize the grid and check which stores are reachable",
				Action: a.analyze,
			},
			{
				Name:  "export",
				Usage: "Write every cell as CSV (x,y,type,label)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output file (default stdout)",
					},
				},
				Action: a.export,
			},
			{
				Name:  "sweep",
				Usage: "Route every pair of stores through a running server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "url",
						Value:   "http://localhost:8080",
						Usage:   "server base URL",
						Sources: cli.EnvVars("NAV_URL"),
					},
				},
				Action: a.sweep,
			},
		},
	}
}

// navigation loads the grid named by --grid into a fresh service.
func navigation(cmd *cli.Command) (service.NavigationService, error) {
	path := cmd.String("grid")
	if path == "" {
		return nil, errNoGrid
	}

	scope, err := grid.ParseScope(cmd.String("scope"))
	if err != nil {
		return nil, err
	}

	manager, err := config.NewManager("", config.FileSource{Path: path})
	if err != nil {
		return nil, err
	}
	return service.NewNavigationService(manager, nil, scope), nil
}

// pair returns the two positional arguments of cmd.
func pair(cmd *cli.Command) (string, string, error) {
	if cmd.Args().Len() != 2 {
		return "", "", fmt.Errorf("%s expects 2 arguments: %s", cmd.Name, cmd.ArgsUsage)
	}
	return cmd.Args().Get(0), cmd.Args().Get(1), nil
}

func (a *app) route(ctx context.Context, cmd *cli.Command) error {
	from, to, err := pair(cmd)
	if err != nil {
		return err
	}
	nav, err := navigation(cmd)
	if err != nil {
		return err
	}

	result, err := nav.RouteByRoadEndpoints(ctx, from, to)
	if err != nil {
		return err
	}
	return a.printRoute(cmd, from, to, result)
}

func (a *app) storeRoute(ctx context.Context, cmd *cli.Command) error {
	from, to, err := pair(cmd)
	if err != nil {
		return err
	}
	nav, err := navigation(cmd)
	if err != nil {
		return err
	}

	result, err := nav.RouteByStoreEndpoints(ctx, from, to)
	if err != nil {
		return err
	}
	return a.printRoute(cmd, from, to, result)
}

func (a *app) printRoute(cmd *cli.Command, from, to string, result *service.RouteResult) error {
	if cmd.Bool("json") {
		return a.printJSON(result)
	}
	if !result.Found {
		return fmt.Errorf("%w between %q and %q", errNoRoute, from, to)
	}

	fmt.Fprintln(a.out, result.Route)
	dimColor.Fprintf(a.out, "%d cells from (%d,%d) to (%d,%d)\n",
		result.Length, result.From.Pos.X, result.From.Pos.Y, result.To.Pos.X, result.To.Pos.Y)
	return nil
}

func (a *app) closest(ctx context.Context, cmd *cli.Command) error {
	storeA, storeB, err := pair(cmd)
	if err != nil {
		return err
	}
	nav, err := navigation(cmd)
	if err != nil {
		return err
	}

	meeting, err := nav.ClosestRoadNode(ctx, storeA, storeB)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return a.printJSON(meeting)
	}
	if !meeting.Found {
		warningColor.Fprintf(a.out, "⚠ no road cell touches both %q and %q\n", storeA, storeB)
		return nil
	}

	name := meeting.Label
	if name == "" {
		name = fmt.Sprintf("(%d,%d)", meeting.Cell.Pos.X, meeting.Cell.Pos.Y)
	}
	fmt.Fprintln(a.out, name)
	dimColor.Fprintf(a.out, "at (%d,%d), combined cost %.3f\n", meeting.Cell.Pos.X, meeting.Cell.Pos.Y, meeting.Cost)
	return nil
}

// storeReach is one line of the analyze report.
type storeReach struct {
	Store    string `json:"store"`
	Distance int    `json:"distance,omitempty"`
	Problem  string `json:"problem,omitempty"`
}

type analysis struct {
	*service.GridInfo
	Origin string       `json:"origin,omitempty"`
	Reach  []storeReach `json:"reach"`
}

func (a *app) analyze(ctx context.Context, cmd *cli.Command) error {
	nav, err := navigation(cmd)
	if err != nil {
		return err
	}

	info, err := nav.Snapshot(ctx, true)
	if err != nil {
		return err
	}

	var stores []string
	seen := make(map[string]bool)
	for _, n := range info.Nodes {
		if n.Type == grid.Store && !seen[n.Label] {
			seen[n.Label] = true
			stores = append(stores, n.Label)
		}
	}

	result := analysis{GridInfo: info}
	for _, store := range stores {
		if result.Origin == "" {
			if _, err := nav.RouteByStoreEndpoints(ctx, store, store); err == nil {
				result.Origin = store
				continue
			}
		}
		reach := storeReach{Store: store}
		if result.Origin == "" {
			reach.Problem = "no adjacent road"
			result.Reach = append(result.Reach, reach)
			continue
		}

		route, err := nav.RouteByStoreEndpoints(ctx, result.Origin, store)
		switch {
		case errors.Is(err, service.ErrNoAdjacentRoad):
			reach.Problem = "no adjacent road"
		case err != nil:
			return err
		case !route.Found:
			reach.Problem = "unreachable"
		default:
			reach.Distance = route.Length - 1
		}
		result.Reach = append(result.Reach, reach)
	}

	if cmd.Bool("json") {
		info.Nodes = nil
		return a.printJSON(result)
	}

	headerColor.Fprintf(a.out, "▸ %s\n", info.Source)
	a.printValue("Grid", fmt.Sprintf("%dx%d", info.Width, info.Height))
	a.printValue("Roads", strconv.Itoa(info.Roads))
	a.printValue("Stores", strconv.Itoa(info.Stores))
	a.printValue("Road components", strconv.Itoa(info.Components))

	if result.Origin == "" {
		warningColor.Fprintln(a.out, "⚠ no store has an adjacent road")
		return nil
	}

	headerColor.Fprintf(a.out, "▸ Reachability from %s\n", result.Origin)
	for _, r := range result.Reach {
		if r.Problem != "" {
			warningColor.Fprintf(a.out, "⚠ %s: %s\n", r.Store, r.Problem)
			continue
		}
		successColor.Fprintf(a.out, "✓ %s: %d steps\n", r.Store, r.Distance)
	}
	return nil
}

func (a *app) export(ctx context.Context, cmd *cli.Command) error {
	nav, err := navigation(cmd)
	if err != nil {
		return err
	}

	info, err := nav.Snapshot(ctx, true)
	if err != nil {
		return err
	}

	out := a.out
	if path := cmd.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}

	if err := writeNodesCSV(out, info.Nodes); err != nil {
		return err
	}
	if out != a.out {
		successColor.Fprintf(a.out, "✓ wrote %d cells to %s\n", len(info.Nodes), cmd.String("output"))
	}
	return nil
}

// writeNodesCSV writes a header row followed by one row per node.
func writeNodesCSV(w io.Writer, nodes []grid.Node) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "type", "label"}); err != nil {
		return err
	}
	for _, n := range nodes {
		row := []string{strconv.Itoa(n.X), strconv.Itoa(n.Y), string(n.Type), n.Label}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (a *app) printValue(label, value string) {
	labelColor.Fprintf(a.out, "  %s: ", label)
	fmt.Fprintln(a.out, value)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
