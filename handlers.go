package main

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"

	"tile-navigation/config"
	"tile-navigation/navgraph"
	"tile-navigation/obstacle"
)

type RouteRequest struct {
	Tile     string            `json:"tile"`
	From     navgraph.Position `json:"from"`
	To       navgraph.Position `json:"to"`
	Relative bool              `json:"relative,omitempty"` // From/To are offsets from the tile anchor
}

type RouteResponse struct {
	Path    []navgraph.Position `json:"path"`
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Cost    float64             `json:"cost,omitempty"`
	BakeID  string              `json:"bakeId,omitempty"`
}

type BakeRequest struct {
	Tile string `json:"tile"` // Empty rebakes every tile
}

type ToggleRequest struct {
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
}

// server holds the obstacle world and one navigator per configured tile.
type server struct {
	world *obstacle.World
	tiles map[string]*navgraph.TileNavigator
	order []string
}

func newServer(cfg *config.Config, world *obstacle.World) *server {
	s := &server{
		world: world,
		tiles: make(map[string]*navgraph.TileNavigator, len(cfg.Tiles)),
	}
	filter := cfg.Navigation.Filter()
	for _, t := range cfg.Tiles {
		region := navgraph.NewRegion(t.X, t.Y, cfg.Navigation.TileWidth)
		nav := navgraph.NewTileNavigator(t.Name, region, cfg.Navigation.AgentRadius, world, filter)
		nav.SetLogger(log.Default())
		s.tiles[t.Name] = nav
		s.order = append(s.order, t.Name)
	}
	return s
}

// bakeAll rebakes every tile in configuration order.
func (s *server) bakeAll() {
	for _, name := range s.order {
		s.tiles[name].Bake()
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/bake", corsMiddleware(s.bakeHandler))
	mux.HandleFunc("/route", corsMiddleware(s.routeHandler))
	mux.HandleFunc("/graph/lines", corsMiddleware(s.graphLinesHandler))
	mux.HandleFunc("/graph/edges.csv", corsMiddleware(s.graphEdgesCSVHandler))
	mux.HandleFunc("/obstacles/toggle", corsMiddleware(s.toggleHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	return mux
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v\n", err)
	}
}

// tile resolves a tile by name, writing a 404 when missing.
func (s *server) tile(w http.ResponseWriter, name string) (*navgraph.TileNavigator, bool) {
	nav, ok := s.tiles[name]
	if !ok {
		log.Printf("❌ Unknown tile: %q\n", name)
		http.Error(w, "Unknown tile", http.StatusNotFound)
	}
	return nav, ok
}

// POST /route - Compute a route inside one tile
func (s *server) routeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	nav, ok := s.tile(w, req.Tile)
	if !ok {
		return
	}

	log.Printf("📍 Route request on %s: %v -> %v (relative=%t)\n", req.Tile, req.From, req.To, req.Relative)

	var path []navgraph.Position
	var found bool
	if req.Relative {
		path, found = nav.FindPathRelative(req.From, req.To)
	} else {
		path, found = nav.FindPath(req.From, req.To)
	}

	response := RouteResponse{Path: path, Success: found}
	if g := nav.Graph(); g != nil {
		response.BakeID = g.BakeID.String()
	}
	if !found {
		log.Println("   ❌ No path found")
		response.Path = []navgraph.Position{}
		response.Message = "No path found (endpoint not navigable or unreachable)"
	} else {
		response.Cost = navgraph.PathCost(path)
		log.Printf("   ✅ Path found with %d waypoints, cost %.3f\n", len(path), response.Cost)
	}

	writeJSON(w, http.StatusOK, response)
}

// POST /bake - Rebake one tile, or every tile when none is named
func (s *server) bakeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	names := s.order
	if req.Tile != "" {
		if _, ok := s.tile(w, req.Tile); !ok {
			return
		}
		names = []string{req.Tile}
	}

	baked := make(map[string]any, len(names))
	for _, name := range names {
		g, stats := s.tiles[name].Bake()
		baked[name] = map[string]any{
			"bakeId": g.BakeID.String(),
			"stats":  stats,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"tiles":   baked,
	})
}

// GET /graph/lines - Graph edges as line segments for visualization
func (s *server) graphLinesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	nav, ok := s.tile(w, r.URL.Query().Get("tile"))
	if !ok {
		return
	}
	g := nav.Graph()
	if g == nil {
		http.Error(w, "Tile not baked. Call /bake first", http.StatusConflict)
		return
	}

	lines := navgraph.Lines(g)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"bakeId":   g.BakeID.String(),
		"lines":    lines,
		"numNodes": g.NodeCount(),
		"numEdges": g.EdgeCount(),
	})
}

// GET /graph/edges.csv - Directed edges as CSV
func (s *server) graphEdgesCSVHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	nav, ok := s.tile(w, r.URL.Query().Get("tile"))
	if !ok {
		return
	}
	g := nav.Graph()
	if g == nil {
		http.Error(w, "Tile not baked. Call /bake first", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	if err := navgraph.WriteEdgesCSV(g, w); err != nil {
		log.Printf("❌ %v\n", err)
	}
}

// POST /obstacles/toggle - Enable or disable an obstacle, then rebake every tile
func (s *server) toggleHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.world.SetEnabled(req.ID, req.Enabled); err != nil {
		log.Printf("❌ %v\n", err)
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	log.Printf("🔄 Obstacle %s enabled=%t, rebaking %d tiles\n", req.ID, req.Enabled, len(s.order))
	s.bakeAll()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"id":      req.ID,
		"enabled": req.Enabled,
	})
}

// GET /health - Health check endpoint
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	tiles := make(map[string]any, len(s.order))
	ready := true
	for _, name := range s.order {
		g := s.tiles[name].Graph()
		if g == nil {
			ready = false
			tiles[name] = map[string]any{"baked": false}
			continue
		}
		tiles[name] = map[string]any{
			"baked":    true,
			"bakeId":   g.BakeID.String(),
			"numNodes": g.NodeCount(),
		}
	}

	status := "ready"
	if !ready {
		status = "waiting for bake"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       status,
		"numObstacles": s.world.Len(),
		"tiles":        tiles,
	})
}

func snapshotPath(dir, tile string) string {
	return filepath.Join(dir, tile+".json")
}
