// Command venuenav starts the venue navigation server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Settings come from an optional HCL file (-settings or NAV_SETTINGS), then
// environment variables, then flags. ngrok tunneling is available for easy
// external access during development.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/mcp-training/venuenav/api"
	"github.com/wricardo/mcp-training/venuenav/transport/mcp"
	"github.com/wricardo/mcp-training/venuenav/transport/websocket"
	"github.com/wricardo/mcp-training/venuenav/venue/config"
	"github.com/wricardo/mcp-training/venuenav/venue/grid"
	"github.com/wricardo/mcp-training/venuenav/venue/service"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Venue Navigator Server"
)

// Flags override the settings file and environment when set explicitly.
var (
	settingsFile = flag.String("settings", os.Getenv("NAV_SETTINGS"), "HCL settings file (or NAV_SETTINGS env var)")
	port         = flag.Int("port", 8080, "HTTP server port")
	host         = flag.String("host", "localhost", "HTTP server host")
	gridDir      = flag.String("grid-dir", "grids", "Directory containing grid files (or GRID_DIR env var)")
	gridFile     = flag.String("grid", "", "Grid file to load (or GRID_FILE env var); defaults to the first file in -grid-dir")
	scope        = flag.String("scope", "four", "Neighbor scope for per-cell store labels: four, eight or radius:N")
	debug        = flag.Bool("debug", false, "Enable debug logging")
	version      = flag.Bool("version", false, "Show version information")
	ngrokEnabled = flag.Bool("ngrok", false, "Enable ngrok tunnel")
	ngrokAuth    = flag.String("ngrok-auth", "", "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain  = flag.String("ngrok-domain", "", "Custom ngrok domain (optional)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  server, http     Run HTTP server with API, WebSocket, and MCP endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp        Run MCP stdio server with internal HTTP server\n")
		fmt.Fprintf(os.Stderr, "  mcp-stdio        Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "  mcp              Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                          # Serve the first grid in ./grids on port 8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -grid mall.txt -port 9090 # Serve grids/mall.txt on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -settings nav.hcl         # Read settings from nav.hcl\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s stdio-mcp                # Run MCP stdio server\n", os.Args[0])
	}
}

// main parses flags, initializes services, and starts the selected mode.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	settings, err := loadSettings()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	if settings.Debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	// Determine mode from command
	args := flag.Args()
	mode := "server"
	if len(args) > 0 {
		mode = args[0]
	}

	log.Printf("Starting %s v%s (mode: %s)", AppName, Version, mode)

	hub := websocket.NewHub()
	go hub.Run()

	navService, err := initializeServices(settings, hub)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		runStdioMCPWithInternalServer(settings, navService, hub)
		return

	case "server", "http":
		runHTTPServer(settings, navService, hub)

	default:
		log.Fatalf("Unknown mode: %s. Use 'server' (default) or 'stdio-mcp'", mode)
	}
}

// loadSettings layers the settings file, the environment and explicitly set
// flags, in that order.
func loadSettings() (*config.Settings, error) {
	settings, err := config.LoadSettings(*settingsFile)
	if err != nil {
		return nil, err
	}
	if err := settings.ApplyEnv(); err != nil {
		return nil, err
	}
	applyFlags(settings)
	return settings, nil
}

// applyFlags copies flags given on the command line into settings.
func applyFlags(s *config.Settings) {
	if s.Ngrok == nil {
		s.Ngrok = &config.NgrokSettings{}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			s.Port = *port
		case "host":
			s.Host = *host
		case "grid-dir":
			s.GridDir = *gridDir
		case "grid":
			s.GridFile = *gridFile
		case "scope":
			s.Scope = *scope
		case "debug":
			s.Debug = *debug
		case "ngrok":
			s.Ngrok.Enabled = *ngrokEnabled
		case "ngrok-auth":
			s.Ngrok.AuthToken = *ngrokAuth
		case "ngrok-domain":
			s.Ngrok.Domain = *ngrokDomain
		}
	})
}

// initializeServices wires the grid manager and the navigation service.
// notifier may be nil.
func initializeServices(settings *config.Settings, notifier service.Notifier) (service.NavigationService, error) {
	scope, err := grid.ParseScope(settings.Scope)
	if err != nil {
		return nil, err
	}

	source, err := config.ResolveSource(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve grid source: %w", err)
	}

	dir := settings.GridDir
	if _, err := os.Stat(dir); err != nil {
		// A grid file outside the grid directory still works; listing does not.
		dir = ""
	}

	manager, err := config.NewManager(dir, source)
	if err != nil {
		return nil, fmt.Errorf("failed to create grid manager: %w", err)
	}

	return service.NewNavigationService(manager, notifier, scope), nil
}

// newMCPHandler serves MCP JSON-RPC messages posted to /mcp.
func newMCPHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled, it also provisions a public tunnel.
func runHTTPServer(settings *config.Settings, navService service.NavigationService, hub *websocket.Hub) {
	apiServer := api.NewServer(navService, hub)

	addr := fmt.Sprintf("%s:%d", settings.Host, settings.Port)

	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", newMCPHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if settings.Ngrok != nil && settings.Ngrok.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, settings.Ngrok, mainRouter)
		}()
	}

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
}

// runNgrokTunnel serves handler through an ngrok tunnel until ctx is done.
func runNgrokTunnel(ctx context.Context, settings *config.NgrokSettings, handler http.Handler) {
	if settings.AuthToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if settings.Domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(settings.Domain))
		log.Printf("Using custom ngrok domain: %s", settings.Domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(settings.AuthToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at the configured address; if unavailable, it
// starts an internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(settings *config.Settings, navService service.NavigationService, hub *websocket.Hub) {
	baseURL, err := resolveAPIBaseURL(fmt.Sprintf("http://%s:%d", settings.Host, settings.Port), navService, hub)
	if err != nil {
		log.Fatalf("Failed to start internal HTTP server: %v", err)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Printf("MCP stdio server ready (API at %s)", baseURL)

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		log.Fatalf("MCP stdio server error: %v", err)
	}
}

// resolveAPIBaseURL returns externalURL when an API answers there, otherwise
// the address of a freshly started internal API server.
func resolveAPIBaseURL(externalURL string, navService service.NavigationService, hub *websocket.Hub) (string, error) {
	log.Printf("Checking for external API server at %s...", externalURL)

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api")
	if err == nil {
		resp.Body.Close()
		if resp.StatusCode < 500 {
			log.Printf("External API server found at %s, using it for MCP", externalURL)
			return externalURL, nil
		}
	}

	log.Printf("No external API server found, starting internal HTTP server")

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("failed to get available port: %w", err)
	}

	internalAddr := listener.Addr().String()
	log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

	httpServer := &http.Server{Handler: api.NewServer(navService, hub)}
	go func() {
		if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Internal HTTP server error: %v", err)
		}
	}()

	return "http://" + internalAddr, nil
}
