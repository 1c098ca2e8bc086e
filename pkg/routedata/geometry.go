package routedata

import (
	"errors"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// ErrNoGeometry is returned when the primary path has fewer than two
// nodes with known coordinates.
var ErrNoGeometry = errors.New("primary path has no drawable geometry")

// PrimaryLineString builds a WGS-84 line through the primary path's nodes
// in visiting order. Nodes without a coordinate entry are skipped.
func (d *RouteData) PrimaryLineString() (*geom.LineString, error) {
	primary := d.PrimaryPath()
	if primary == nil {
		return nil, ErrNoGeometry
	}

	located := make(map[string]Coordinate, len(primary.Coordinates))
	for _, c := range primary.Coordinates {
		located[c.Node] = c
	}

	coords := make([]geom.Coord, 0, len(primary.Path))
	for _, node := range primary.Path {
		c, ok := located[node]
		if !ok {
			continue
		}
		coords = append(coords, geom.Coord{c.Longitude, c.Latitude})
	}
	// Fall back to the coordinate list when path labels are absent.
	if len(primary.Path) == 0 {
		for _, c := range primary.Coordinates {
			coords = append(coords, geom.Coord{c.Longitude, c.Latitude})
		}
	}
	if len(coords) < 2 {
		return nil, ErrNoGeometry
	}

	return geom.NewLineString(geom.XY).SetCoords(coords)
}

// PrimaryFeature wraps the primary line in a GeoJSON feature with the
// path totals attached as properties.
func (d *RouteData) PrimaryFeature(id string, props map[string]interface{}) (*geojson.Feature, error) {
	line, err := d.PrimaryLineString()
	if err != nil {
		return nil, err
	}

	primary := d.PrimaryPath()
	properties := map[string]interface{}{
		"time_sum":     primary.TimeSum,
		"price_sum":    primary.PriceSum,
		"distance_sum": primary.DistanceSum,
		"CO2_sum":      primary.CO2Sum,
		"modes":        d.TransportModes(),
	}
	for k, v := range props {
		properties[k] = v
	}

	return &geojson.Feature{
		ID:         id,
		Geometry:   line,
		Properties: properties,
	}, nil
}
