// Package config manages where the venue grid comes from and which grid is
// active.
//
// A Source produces a grid: FileSource reads a configuration file, TextSource
// parses inline text and GridSource hands over a grid that was built in
// memory. The Manager owns the active grid and swaps it atomically on Reload
// or Select. A failed load never replaces the active grid.
//
// Usage:
//
//	manager, err := config.NewManager("grids", config.FileSource{Path: "grids/mall.txt"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	g, err := manager.Current()
//
//	// Pick up edits to the file
//	g, err = manager.Reload()
//
//	// Switch to another grid in the directory
//	g, err = manager.Select("food_court")
//
// Settings are read from an optional HCL file and then overridden by
// environment variables. See LoadSettings.
package config
