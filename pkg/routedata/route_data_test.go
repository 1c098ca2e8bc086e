package routedata

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

const nycToLA = `{
  "avoided_countries": ["CUBA", "VENEZUELA"],
  "penalty_countries": [],
  "paths": [{
    "path": ["New York", "Chicago", "Denver", "Los Angeles"],
    "coordinates": [
      {"node": "New York", "latitude": 40.7128, "longitude": -74.0060},
      {"node": "Chicago", "latitude": 41.8781, "longitude": -87.6298},
      {"node": "Denver", "latitude": 39.7392, "longitude": -104.9903},
      {"node": "Los Angeles", "latitude": 34.0522, "longitude": -118.2437}
    ],
    "edges": [
      {"from": "New York", "to": "Chicago", "mode": "land", "time": 24, "price": 1200, "distance": 1300},
      {"from": "Chicago", "to": "Denver", "mode": "land", "time": 20, "price": 900, "distance": 1000},
      {"from": "Denver", "to": "Los Angeles", "mode": "land", "time": 18, "price": 1000, "distance": 1100}
    ],
    "time_sum": 62,
    "price_sum": 3100,
    "distance_sum": 3400,
    "CO2_sum": 340
  }]
}`

func TestParse_ValidDocument(t *testing.T) {
	data, err := Parse([]byte(nycToLA))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	primary := data.PrimaryPath()
	if primary == nil {
		t.Fatal("PrimaryPath() = nil")
	}
	if primary.TimeSum != 62 {
		t.Errorf("TimeSum = %v, want 62", primary.TimeSum)
	}
	if primary.PriceSum != 3100 {
		t.Errorf("PriceSum = %v, want 3100", primary.PriceSum)
	}
	if len(primary.Edges) != 3 {
		t.Errorf("len(Edges) = %d, want 3", len(primary.Edges))
	}
	if got := data.AvoidedCountries; !reflect.DeepEqual(got, []string{"CUBA", "VENEZUELA"}) {
		t.Errorf("AvoidedCountries = %v", got)
	}
}

func TestParse_RejectsMalformed(t *testing.T) {
	for _, tc := range []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"null", "null"},
		{"string", `"{\"paths\":[]}"`},
		{"array", `[]`},
		{"missing paths", `{"avoided_countries": []}`},
		{"null paths", `{"paths": null}`},
		{"paths not array", `{"paths": {}}`},
		{"edge time not number", `{"paths": [{"edges": [{"from": "a", "to": "b", "time": "fast"}]}]}`},
		{"edge missing endpoint", `{"paths": [{"edges": [{"from": "a", "mode": "air"}]}]}`},
		{"latitude out of range", `{"paths": [{"coordinates": [{"node": "a", "latitude": 91, "longitude": 0}]}]}`},
		{"longitude out of range", `{"paths": [{"coordinates": [{"node": "a", "latitude": 0, "longitude": -181}]}]}`},
		{"blank node label", `{"paths": [{"path": ["a", ""]}]}`},
		{"blank country", `{"paths": [], "avoided_countries": [""]}`},
		{"truncated", `{"paths": [`},
	} {
		_, err := Parse([]byte(tc.raw))
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: error %v does not wrap ErrMalformed", tc.name, err)
		}
	}
}

func TestParse_EmptyPathsAllowed(t *testing.T) {
	data, err := Parse([]byte(`{"paths": []}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if data.PrimaryPath() != nil {
		t.Error("PrimaryPath() should be nil for empty paths")
	}
	if modes := data.TransportModes(); len(modes) != 0 {
		t.Errorf("TransportModes() = %v, want empty", modes)
	}
}

func TestParse_ToleratesUnknownMode(t *testing.T) {
	raw := `{"paths": [{"edges": [{"from": "a", "to": "b", "mode": "rail"}, {"from": "b", "to": "c", "mode": "air"}]}]}`
	data, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Mode{"rail", ModeAir}
	if got := data.TransportModes(); !reflect.DeepEqual(got, want) {
		t.Errorf("TransportModes() = %v, want %v", got, want)
	}
}

func TestTransportModes_CollapsesDuplicates(t *testing.T) {
	data, err := Parse([]byte(nycToLA))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := data.TransportModes(); !reflect.DeepEqual(got, []Mode{ModeLand}) {
		t.Errorf("TransportModes() = %v, want [land]", got)
	}
}

func TestTransportModes_OnlyPrimaryPathAndSkipsEmpty(t *testing.T) {
	raw := `{"paths": [
	  {"edges": [{"from": "a", "to": "b", "mode": "sea"}, {"from": "b", "to": "c", "mode": ""}, {"from": "c", "to": "d", "mode": "sea"}]},
	  {"edges": [{"from": "a", "to": "d", "mode": "air"}]}
	]}`
	data, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := data.TransportModes(); !reflect.DeepEqual(got, []Mode{ModeSea}) {
		t.Errorf("TransportModes() = %v, want [sea]", got)
	}
}

func TestCanonical_RoundTripIsLossless(t *testing.T) {
	raw := `{"engine_version": "2.1", ` + nycToLA[1:]
	stored, _, err := Canonical([]byte(raw))
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}

	var in, out interface{}
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		t.Fatalf("unmarshal input: %v", err)
	}
	if err := json.Unmarshal(stored, &out); err != nil {
		t.Fatalf("unmarshal stored: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip changed the document:\n in=%v\nout=%v", in, out)
	}
}
