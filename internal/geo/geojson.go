// Package geo provides GeoJSON data structures for map export.
// It follows the standard GeoJSON structure (RFC 7946).
package geo

import "encoding/json"

// Geometry represents the geometry of a feature.
// Coordinates are kept as raw JSON so Point ([lon, lat]) and Polygon
// (nested rings) both round-trip without a dedicated type per shape.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Feature represents a single geographic feature with geometry and properties.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   *Geometry      `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// FeatureCollection represents a collection of geographic features.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Point builds a Point geometry from longitude and latitude.
func Point(lon, lat float64) *Geometry {
	coords, _ := json.Marshal([2]float64{lon, lat})
	return &Geometry{Type: "Point", Coordinates: coords}
}

// Valid reports whether the geometry can be exported as GeoJSON.
func (g *Geometry) Valid() bool {
	if g == nil || len(g.Coordinates) == 0 {
		return false
	}
	return g.Type == "Point" || g.Type == "Polygon"
}

// NewFeature wraps a geometry and its properties as a GeoJSON Feature.
func NewFeature(geom *Geometry, props map[string]any) Feature {
	return Feature{Type: "Feature", Geometry: geom, Properties: props}
}

// NewFeatureCollection wraps features as a GeoJSON FeatureCollection.
// A nil slice is normalized to an empty one so the JSON output is always
// a valid collection with a "features" array.
func NewFeatureCollection(features []Feature) *FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return &FeatureCollection{Type: "FeatureCollection", Features: features}
}
