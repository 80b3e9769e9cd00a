package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wricardo/mcp-training/venuenav/transport/websocket"
	"github.com/wricardo/mcp-training/venuenav/venue/config"
	"github.com/wricardo/mcp-training/venuenav/venue/grid"
	"github.com/wricardo/mcp-training/venuenav/venue/route"
	"github.com/wricardo/mcp-training/venuenav/venue/service"
)

// Server represents the REST API server
type Server struct {
	service service.NavigationService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil, in which case /ws
// answers 503.
func NewServer(navService service.NavigationService, hub *websocket.Hub) *Server {
	s := &Server{
		service: navService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api", s.handleIndex).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Grid
	api.HandleFunc("/grid", s.handleGetGrid).Methods("GET")
	api.HandleFunc("/grid/cell", s.handleDescribeCell).Methods("GET")
	api.HandleFunc("/grid/reload", s.handleReload).Methods("POST")
	api.HandleFunc("/grid/select", s.handleSelectGrid).Methods("POST")
	api.HandleFunc("/grids", s.handleListGrids).Methods("GET")

	// Routing
	api.HandleFunc("/route", s.handleRoute).Methods("GET")
	api.HandleFunc("/route/stores", s.handleStoreRoute).Methods("GET")
	api.HandleFunc("/closest-road", s.handleClosestRoad).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service errors to HTTP status codes
func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, grid.ErrUnknownLabel),
		errors.Is(err, config.ErrGridNotFound),
		errors.Is(err, service.ErrInvalidCell):
		return http.StatusNotFound
	case errors.Is(err, route.ErrInvalidEndpointType),
		errors.Is(err, service.ErrNoAdjacentRoad),
		errors.Is(err, service.ErrNotStore),
		errors.Is(err, grid.ErrConfigParse):
		return http.StatusUnprocessableEntity
	case errors.Is(err, config.ErrNoSource):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// requireParams reads the named query parameters, answering 400 when one is missing
func requireParams(w http.ResponseWriter, r *http.Request, names ...string) ([]string, bool) {
	query := r.URL.Query()
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = query.Get(name)
		if values[i] == "" {
			respondError(w, http.StatusBadRequest, name+" parameter required")
			return nil, false
		}
	}
	return values, true
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "venuenav",
		"endpoints": []string{
			"GET /api/health",
			"GET /api/grid",
			"GET /api/grid/cell?x=&y=",
			"POST /api/grid/reload",
			"POST /api/grid/select",
			"GET /api/grids",
			"GET /api/route?from=&to=",
			"GET /api/route/stores?from=&to=",
			"GET /api/closest-road?a=&b=",
			"GET /ws",
		},
	})
}

// Grid Handlers

func (s *Server) handleGetGrid(w http.ResponseWriter, r *http.Request) {
	withNodes, _ := strconv.ParseBool(r.URL.Query().Get("nodes"))

	info, err := s.service.Snapshot(r.Context(), withNodes)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDescribeCell(w http.ResponseWriter, r *http.Request) {
	params, ok := requireParams(w, r, "x", "y")
	if !ok {
		return
	}

	x, errX := strconv.Atoi(params[0])
	y, errY := strconv.Atoi(params[1])
	if errX != nil || errY != nil {
		respondError(w, http.StatusBadRequest, "x and y must be integers")
		return
	}

	info, err := s.service.DescribeCell(r.Context(), x, y)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.Reload(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleSelectGrid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	info, err := s.service.SelectGrid(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleListGrids(w http.ResponseWriter, r *http.Request) {
	grids, err := s.service.ListGrids(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if grids == nil {
		grids = []*config.GridFile{}
	}
	respondJSON(w, http.StatusOK, grids)
}

// Routing Handlers

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	params, ok := requireParams(w, r, "from", "to")
	if !ok {
		return
	}

	result, err := s.service.RouteByRoadEndpoints(r.Context(), params[0], params[1])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleStoreRoute(w http.ResponseWriter, r *http.Request) {
	params, ok := requireParams(w, r, "from", "to")
	if !ok {
		return
	}

	result, err := s.service.RouteByStoreEndpoints(r.Context(), params[0], params[1])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleClosestRoad(w http.ResponseWriter, r *http.Request) {
	params, ok := requireParams(w, r, "a", "b")
	if !ok {
		return
	}

	meeting, err := s.service.ClosestRoadNode(r.Context(), params[0], params[1])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, meeting)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "event stream not available", http.StatusServiceUnavailable)
		return
	}
	s.hub.ServeWS(w, r)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if _, err := s.service.Snapshot(r.Context(), false); err != nil {
		status = "no grid loaded"
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status": status,
	})
}
