package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/stanrw/enerwiseuk-sub000/pkg/geo"
)

// Source returns building insights for a location. Implementations may call
// a remote API; the engine itself never does.
type Source interface {
	FindClosest(ctx context.Context, loc geo.LatLng) (*BuildingInsights, error)
}

// Parse decodes a buildingInsights JSON document.
func Parse(data []byte) (*BuildingInsights, error) {
	var bi BuildingInsights
	if err := json.Unmarshal(data, &bi); err != nil {
		return nil, fmt.Errorf("parsing building insights JSON: %w", err)
	}
	if bi.SolarPotential == nil {
		return &bi, ErrNoSolarPotential
	}
	return &bi, nil
}

// Load reads a buildingInsights JSON document from a file.
func Load(path string) (*BuildingInsights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading insights file: %w", err)
	}
	return Parse(data)
}

// ValidLocation reports whether loc is a usable WGS84 coordinate.
func ValidLocation(loc geo.LatLng) bool {
	return loc.Latitude >= -90 && loc.Latitude <= 90 &&
		loc.Longitude >= -180 && loc.Longitude <= 180
}

// FileSource serves insights from JSON files in a directory. Each file is
// named by its rounded coordinate, e.g. "51.50010_-0.12760.json", and
// FindClosest returns the nearest one.
type FileSource struct {
	Dir string
}

// NewFileSource returns a FileSource reading from dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

// FindClosest loads the cached insights file nearest to loc.
func (s *FileSource) FindClosest(ctx context.Context, loc geo.LatLng) (*BuildingInsights, error) {
	if !ValidLocation(loc) {
		return nil, ErrInvalidLocation
	}
	matches, err := filepath.Glob(filepath.Join(s.Dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing insights directory: %w", err)
	}

	best := ""
	bestDist := 0.0
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		at, ok := parseFileName(filepath.Base(m))
		if !ok {
			continue
		}
		d := geo.NewProjection(loc).ToLocal(at).Length()
		if best == "" || d < bestDist {
			best, bestDist = m, d
		}
	}
	if best == "" {
		return nil, fmt.Errorf("no insights file in %s: %w", s.Dir, os.ErrNotExist)
	}
	return Load(best)
}

// FileName returns the FileSource file name for loc.
func FileName(loc geo.LatLng) string {
	return fmt.Sprintf("%.5f_%.5f.json", loc.Latitude, loc.Longitude)
}

func parseFileName(name string) (geo.LatLng, bool) {
	latStr, lngStr, ok := strings.Cut(strings.TrimSuffix(name, ".json"), "_")
	if !ok {
		return geo.LatLng{}, false
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return geo.LatLng{}, false
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return geo.LatLng{}, false
	}
	return geo.LatLng{Latitude: lat, Longitude: lng}, true
}
