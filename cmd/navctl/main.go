// Command navctl answers venue navigation queries against a grid file from
// the command line. It shares the navigation service with the server, so a
// route printed here is the route the API returns.
//
// Usage:
//
//	navctl --grid grids/mall.txt route r0 r4
//	navctl --grid grids/mall.txt store-route A C
//	navctl --grid grids/mall.txt closest A B
//	navctl --grid grids/mall.txt analyze
//	navctl --grid grids/mall.txt export --output nodes.csv
//	navctl sweep --url http://localhost:8080
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(os.Stdout).Run(ctx, os.Args); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}
