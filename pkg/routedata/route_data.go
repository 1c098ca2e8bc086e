// Package routedata models the routeData document produced by the route
// computation engine and stored alongside every saved route.
package routedata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Mode classifies an edge. The set is open: values other than the
// constants below are kept as-is.
type Mode string

const (
	ModeAir  Mode = "air"
	ModeSea  Mode = "sea"
	ModeLand Mode = "land"
)

// ErrMalformed is wrapped by every error Parse returns.
var ErrMalformed = errors.New("malformed route data")

type RouteData struct {
	AvoidedCountries []string `json:"avoided_countries"`
	PenaltyCountries []string `json:"penalty_countries"`
	Paths            []Path   `json:"paths"`
}

// Path is one candidate path. The *Sum fields are the totals of the
// matching edge fields; they are trusted, not recomputed.
type Path struct {
	Path        []string     `json:"path"`
	Coordinates []Coordinate `json:"coordinates"`
	Edges       []Edge       `json:"edges"`
	TimeSum     float64      `json:"time_sum"`
	PriceSum    float64      `json:"price_sum"`
	DistanceSum float64      `json:"distance_sum"`
	CO2Sum      float64      `json:"CO2_sum"`
}

type Coordinate struct {
	Node      string  `json:"node"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Edge struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Mode     Mode    `json:"mode"`
	Time     float64 `json:"time"`
	Price    float64 `json:"price"`
	Distance float64 `json:"distance"`
}

// Parse validates raw against the routeData shape and returns the typed
// document. Keys the model does not name are ignored, not rejected.
func Parse(raw []byte) (*RouteData, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: document is empty", ErrMalformed)
	}
	if raw[0] != '{' {
		return nil, fmt.Errorf("%w: document must be a JSON object", ErrMalformed)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	paths, ok := probe["paths"]
	if !ok || bytes.Equal(bytes.TrimSpace(paths), []byte("null")) {
		return nil, fmt.Errorf("%w: paths is required", ErrMalformed)
	}

	var data RouteData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := data.validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// Canonical validates raw and returns it compacted. The caller's bytes are
// kept rather than a re-encoding of the typed model so that storing and
// reading back is lossless.
func Canonical(raw []byte) ([]byte, *RouteData, error) {
	data, err := Parse(raw)
	if err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return buf.Bytes(), data, nil
}

func (d *RouteData) validate() error {
	for i, c := range d.AvoidedCountries {
		if c == "" {
			return fmt.Errorf("%w: avoided_countries[%d] is empty", ErrMalformed, i)
		}
	}
	for i, c := range d.PenaltyCountries {
		if c == "" {
			return fmt.Errorf("%w: penalty_countries[%d] is empty", ErrMalformed, i)
		}
	}
	for i := range d.Paths {
		if err := d.Paths[i].validate(); err != nil {
			return fmt.Errorf("%w: paths[%d]: %v", ErrMalformed, i, err)
		}
	}
	return nil
}

func (p *Path) validate() error {
	for i, node := range p.Path {
		if node == "" {
			return fmt.Errorf("path[%d] is empty", i)
		}
	}
	for i, c := range p.Coordinates {
		if c.Node == "" {
			return fmt.Errorf("coordinates[%d].node is empty", i)
		}
		if c.Latitude < -90 || c.Latitude > 90 {
			return fmt.Errorf("coordinates[%d].latitude %v out of range", i, c.Latitude)
		}
		if c.Longitude < -180 || c.Longitude > 180 {
			return fmt.Errorf("coordinates[%d].longitude %v out of range", i, c.Longitude)
		}
	}
	for i, e := range p.Edges {
		if e.From == "" || e.To == "" {
			return fmt.Errorf("edges[%d] needs both from and to", i)
		}
	}
	return nil
}

// PrimaryPath returns the first path, or nil when there is none.
func (d *RouteData) PrimaryPath() *Path {
	if d == nil || len(d.Paths) == 0 {
		return nil
	}
	return &d.Paths[0]
}

// TransportModes returns the distinct non-empty modes used by the primary
// path's edges in first-seen order.
func (d *RouteData) TransportModes() []Mode {
	primary := d.PrimaryPath()
	if primary == nil {
		return []Mode{}
	}
	seen := make(map[Mode]struct{}, len(primary.Edges))
	modes := make([]Mode, 0, 3)
	for _, e := range primary.Edges {
		if e.Mode == "" {
			continue
		}
		if _, ok := seen[e.Mode]; ok {
			continue
		}
		seen[e.Mode] = struct{}{}
		modes = append(modes, e.Mode)
	}
	return modes
}
