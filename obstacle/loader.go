package obstacle

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadDir loads every *.geojson file in dir. Unreadable files are logged and skipped.
func LoadDir(dir string, defaultLayer Layer) ([]Obstacle, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	log.Printf("Loading obstacles from %d GeoJSON files...\n", len(files))

	var all []Obstacle
	for _, file := range files {
		obstacles, err := LoadFile(file, defaultLayer)
		if err != nil {
			log.Printf("⚠️  %v\n", err)
			continue
		}
		all = append(all, obstacles...)
		log.Printf("   ✅ Loaded %d obstacles from %s\n", len(obstacles), filepath.Base(file))
	}

	log.Printf("Total obstacles loaded: %d\n", len(all))
	return all, nil
}

// LoadFile reads a GeoJSON FeatureCollection. Each Polygon feature becomes one obstacle and each
// MultiPolygon one obstacle per member. The optional "id" and "layer" properties name and tag them.
func LoadFile(path string, defaultLayer Layer) ([]Obstacle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	base := filepath.Base(path)
	var obstacles []Obstacle
	for i, feature := range fc.Features {
		id := feature.Properties.MustString("id", fmt.Sprintf("%s#%d", base, i))
		layer := Layer(feature.Properties.MustString("layer", string(defaultLayer)))

		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			obstacles = append(obstacles, Obstacle{ID: id, Layer: layer, Shape: g})
		case orb.MultiPolygon:
			for j, poly := range g {
				obstacles = append(obstacles, Obstacle{ID: fmt.Sprintf("%s.%d", id, j), Layer: layer, Shape: poly})
			}
		case nil:
			log.Printf("⚠️  %s: skipping feature %q without geometry\n", base, id)
		default:
			log.Printf("⚠️  %s: skipping feature %q with geometry %s\n", base, id, feature.Geometry.GeoJSONType())
		}
	}
	return obstacles, nil
}
