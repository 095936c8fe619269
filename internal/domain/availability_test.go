package domain

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAvailable(t *testing.T) {
	t.Run("no features", func(t *testing.T) {
		fc, err := ParseFeatureCollection(CategoryCategorical, []byte(`{"features": []}`))
		require.NoError(t, err)
		assert.False(t, IsAvailable(fc))
	})

	t.Run("polygon without rings", func(t *testing.T) {
		fc, err := ParseFeatureCollection(CategoryCategorical, []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{"LABEL":"TSTM"},"geometry":{"type":"Polygon","coordinates":[]}}
		]}`))
		require.NoError(t, err)
		require.Len(t, fc.Features, 1)
		assert.False(t, IsAvailable(fc))
	})

	t.Run("null geometry", func(t *testing.T) {
		fc, err := ParseFeatureCollection(CategoryCategorical, []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{"LABEL":"TSTM"},"geometry":null}
		]}`))
		require.NoError(t, err)
		assert.False(t, IsAvailable(fc))
	})

	t.Run("degenerate ring", func(t *testing.T) {
		fc, err := ParseFeatureCollection(CategoryCategorical, []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{"LABEL":"TSTM"},"geometry":{"type":"Polygon","coordinates":[[[-100,35],[-95,35]]]}}
		]}`))
		require.NoError(t, err)
		assert.False(t, IsAvailable(fc))
	})

	t.Run("one ring", func(t *testing.T) {
		fc, err := ParseFeatureCollection(CategoryCategorical, []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{"LABEL":"TSTM"},"geometry":{"type":"Polygon","coordinates":[[[-100,35],[-95,35],[-95,40],[-100,35]]]}}
		]}`))
		require.NoError(t, err)
		assert.True(t, IsAvailable(fc))
	})
}

func TestParseFeatureCollection(t *testing.T) {
	body := []byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"LABEL":"0.15","stroke":"#FFFF00"},"geometry":{"type":"MultiPolygon","coordinates":[[[[-100,35],[-95,35],[-95,40],[-100,35]]],[[[-90,30],[-88,30],[-88,32],[-90,30]]]]}},
		{"type":"Feature","properties":{"LABEL":0.3},"geometry":{"type":"Polygon","coordinates":[[[-99,36],[-96,36],[-96,39],[-99,36]]]}},
		{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[-99,36],[-96,36],[-96,39],[-99,36]]]}}
	]}`)

	fc, err := ParseFeatureCollection(CategoryHail, body)
	require.NoError(t, err)

	assert.Equal(t, CategoryHail, fc.Category)
	assert.Equal(t, []string{"0.15", "0.30", ""}, fc.Labels())
	assert.IsType(t, orb.MultiPolygon{}, fc.Features[0].Geometry)
	assert.IsType(t, orb.Polygon{}, fc.Features[1].Geometry)
	assert.Len(t, NormalizeGeometry(fc.Features[0].Geometry), 2)
}

func TestParseFeatureCollection_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"html", `<html>not json</html>`},
		{"unknown geometry", `{"features":[{"geometry":{"type":"Blob","coordinates":[]}}]}`},
		{"null body", `null`},
		{"empty object", `{}`},
		{"error payload", `{"error":"upstream maintenance"}`},
		{"null features", `{"type":"FeatureCollection","features":null}`},
		{"bare feature", `{"type":"Feature","properties":{"LABEL":"TSTM"},"geometry":{"type":"Polygon","coordinates":[[[-100,35],[-95,35],[-95,40],[-100,35]]]}}`},
		{"wrong type with features", `{"type":"GeometryCollection","features":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFeatureCollection(CategoryCategorical, []byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestParseFeatureCollection_EmptyIsValid(t *testing.T) {
	for _, body := range []string{`{"features": []}`, `{"type":"FeatureCollection","features":[]}`} {
		fc, err := ParseFeatureCollection(CategoryTornado, []byte(body))
		require.NoError(t, err, body)
		assert.Empty(t, fc.Features)
		assert.False(t, IsAvailable(fc))
	}
}

func TestSummarize(t *testing.T) {
	ring := orb.Polygon{{{-100, 35}, {-95, 35}, {-95, 40}, {-100, 35}}}
	fc := FeatureCollection{
		Category: CategoryCategorical,
		Features: []Feature{
			{Label: "TSTM", Geometry: ring},
			{Label: "XYZ", Geometry: ring},
			{Label: "XYZ", Geometry: ring},
			{Label: "ENH", Geometry: orb.MultiPolygon{ring}},
		},
	}
	req := OutlookRequest{CategoryCategorical, 1}

	s, err := Summarize(req, fc)
	require.NoError(t, err)
	assert.True(t, s.Available)
	assert.Equal(t, "ENH", s.Highest.Label)
	assert.Equal(t, 4, s.Features)
	assert.Equal(t, []string{"XYZ"}, s.Unrecognized)
	assert.Equal(t, "1", s.Day)

	allUnknown, err := Summarize(req, FeatureCollection{Category: CategoryCategorical, Features: []Feature{{Label: "XYZ", Geometry: ring}}})
	require.NoError(t, err)
	assert.Equal(t, NoRisk, allUnknown.Highest)
	assert.Equal(t, []string{"XYZ"}, allUnknown.Unrecognized)

	_, err = Summarize(OutlookRequest{Category: "fire"}, fc)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
