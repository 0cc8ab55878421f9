package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoint(t *testing.T) {
	g := Point(-78.9, -0.67)
	assert.Equal(t, "Point", g.Type)

	var coords [2]float64
	require.NoError(t, json.Unmarshal(g.Coordinates, &coords))
	assert.Equal(t, -78.9, coords[0])
	assert.Equal(t, -0.67, coords[1])
}

func TestGeometryValid(t *testing.T) {
	assert.True(t, Point(1, 2).Valid())

	var nilGeom *Geometry
	assert.False(t, nilGeom.Valid())

	assert.False(t, (&Geometry{Type: "Point"}).Valid())
	assert.False(t, (&Geometry{Type: "LineString", Coordinates: json.RawMessage(`[]`)}).Valid())

	polygon := &Geometry{Type: "Polygon", Coordinates: json.RawMessage(`[[[0,0],[1,0],[1,1],[0,0]]]`)}
	assert.True(t, polygon.Valid())
}

func TestNewFeatureCollectionNormalizesNil(t *testing.T) {
	fc := NewFeatureCollection(nil)
	require.NotNil(t, fc.Features)

	raw, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(raw))
}

func TestNewFeature(t *testing.T) {
	f := NewFeature(Point(3, 4), map[string]any{"id": "x"})
	assert.Equal(t, "Feature", f.Type)
	assert.Equal(t, "x", f.Properties["id"])
}
