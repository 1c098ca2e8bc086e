package routedata

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestPrimaryLineString_FollowsPathOrder(t *testing.T) {
	data, err := Parse([]byte(nycToLA))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	line, err := data.PrimaryLineString()
	if err != nil {
		t.Fatalf("PrimaryLineString: %v", err)
	}
	if line.NumCoords() != 4 {
		t.Fatalf("NumCoords = %d, want 4", line.NumCoords())
	}
	first := line.Coord(0)
	if first.X() != -74.0060 || first.Y() != 40.7128 {
		t.Errorf("first coord = %v, want New York lon/lat", first)
	}
	last := line.Coord(3)
	if last.X() != -118.2437 || last.Y() != 34.0522 {
		t.Errorf("last coord = %v, want Los Angeles lon/lat", last)
	}
}

func TestPrimaryLineString_NotEnoughPoints(t *testing.T) {
	for _, raw := range []string{
		`{"paths": []}`,
		`{"paths": [{"path": ["a", "b"], "coordinates": [{"node": "a", "latitude": 1, "longitude": 1}]}]}`,
	} {
		data, err := Parse([]byte(raw))
		if err != nil {
			t.Fatalf("Parse(%s): %v", raw, err)
		}
		if _, err := data.PrimaryLineString(); !errors.Is(err, ErrNoGeometry) {
			t.Errorf("PrimaryLineString(%s) err = %v, want ErrNoGeometry", raw, err)
		}
	}
}

func TestPrimaryFeature_MarshalsGeoJSON(t *testing.T) {
	data, err := Parse([]byte(nycToLA))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	feature, err := data.PrimaryFeature("route-1", map[string]interface{}{"name": "NYC to LA Route"})
	if err != nil {
		t.Fatalf("PrimaryFeature: %v", err)
	}
	b, err := json.Marshal(feature)
	if err != nil {
		t.Fatalf("marshal feature: %v", err)
	}

	var decoded struct {
		Type     string `json:"type"`
		Geometry struct {
			Type        string      `json:"type"`
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]interface{} `json:"properties"`
	}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal feature: %v", err)
	}
	if decoded.Type != "Feature" {
		t.Errorf("type = %q, want Feature", decoded.Type)
	}
	if decoded.Geometry.Type != "LineString" {
		t.Errorf("geometry type = %q, want LineString", decoded.Geometry.Type)
	}
	if len(decoded.Geometry.Coordinates) != 4 {
		t.Errorf("coordinates = %d, want 4", len(decoded.Geometry.Coordinates))
	}
	if decoded.Properties["name"] != "NYC to LA Route" {
		t.Errorf("name property = %v", decoded.Properties["name"])
	}
	if decoded.Properties["time_sum"] != float64(62) {
		t.Errorf("time_sum property = %v, want 62", decoded.Properties["time_sum"])
	}
}
