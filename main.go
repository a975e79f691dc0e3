package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"

	"tile-navigation/config"
	"tile-navigation/navgraph"
	"tile-navigation/obstacle"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	addr := flag.String("addr", "", "Listen address (overrides server.addr)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory to write a JSON graph snapshot per tile after startup")
	flag.Parse()

	log.Println("========================================")
	log.Println("🚀 Tile Navigation Server")
	log.Println("========================================")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	world, err := loadWorld(cfg)
	if err != nil {
		log.Fatal(err)
	}

	srv := newServer(cfg, world)
	srv.bakeAll()

	if *snapshotDir != "" {
		if err := os.MkdirAll(*snapshotDir, 0755); err != nil {
			log.Fatal(err)
		}
		for _, name := range srv.order {
			tile := srv.tiles[name]
			if err := navgraph.SaveSnapshot(tile.Graph(), snapshotPath(*snapshotDir, name)); err != nil {
				log.Printf("⚠️  Failed to save graph for tile %s: %v\n", name, err)
			}
		}
	}

	log.Printf("Server starting on %s\n", cfg.Server.Addr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /bake               - Rebake one tile (or all)")
	log.Println("  POST /route              - Compute a route inside a tile")
	log.Println("  GET  /graph/lines        - Graph edges as line segments for visualization")
	log.Println("  GET  /graph/edges.csv    - Graph edges as CSV")
	log.Println("  POST /obstacles/toggle   - Enable or disable an obstacle and rebake")
	log.Println("  GET  /health             - Check server status")
	log.Println("========================================")

	if err := http.ListenAndServe(cfg.Server.Addr, srv.routes()); err != nil {
		log.Fatal(err)
	}
}

// loadWorld collects obstacles from GeoJSON files and the optional scatter field.
func loadWorld(cfg *config.Config) (*obstacle.World, error) {
	defaultLayer := obstacle.Layer(cfg.Obstacles.DefaultLayer)

	var obstacles []obstacle.Obstacle
	if dir := cfg.Obstacles.Dir; dir != "" {
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			log.Printf("ℹ️  Obstacle directory %s not found, starting without GeoJSON obstacles\n", dir)
		} else {
			loaded, err := obstacle.LoadDir(dir, defaultLayer)
			if err != nil {
				return nil, err
			}
			obstacles = append(obstacles, loaded...)
		}
	}

	if sc := cfg.Obstacles.Scatter; sc.Enabled {
		// Neighbouring tiles can share border cells.
		seen := make(map[string]bool)
		for _, t := range cfg.Tiles {
			region := navgraph.NewRegion(t.X, t.Y, cfg.Navigation.TileWidth)
			rocks := obstacle.Scatter(sc.Seed, region.Bound(), sc.Cell, sc.Threshold, defaultLayer)
			added := 0
			for _, r := range rocks {
				if seen[r.ID] {
					continue
				}
				seen[r.ID] = true
				obstacles = append(obstacles, r)
				added++
			}
			log.Printf("   🪨 Scattered %d rocks over tile %s\n", added, t.Name)
		}
	}

	return obstacle.NewWorld(obstacle.Prepare(obstacles, cfg.Obstacles.SimplifyEpsilon)...)
}
