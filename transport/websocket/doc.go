// Package websocket streams navigation events to dashboard subscribers.
//
// The Hub implements service.Notifier. Every grid_loaded and route_computed
// event the navigation service publishes is JSON-encoded once and fanned out
// to the connected clients, one event per text frame:
//
//	{"id":"...","type":"route_computed","timestamp":"...","data":{...}}
//
// Clients may narrow the stream with a comma-separated "events" query
// parameter, for example /ws?events=grid_loaded. Messages sent by clients
// are read and discarded.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	svc := service.NewNavigationService(manager, hub, grid.FourDir)
//	http.HandleFunc("/ws", hub.ServeWS)
//
// The hub owns its client set; registration, removal and broadcast all run
// on the Run goroutine.
package websocket
