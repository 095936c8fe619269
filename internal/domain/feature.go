package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature is one outlook area: a risk label and its geometry.
type Feature struct {
	Label    string
	Geometry orb.Geometry
}

// FeatureCollection is a fetched outlook. Feature order is preserved.
type FeatureCollection struct {
	Category Category
	Features []Feature
}

// rawCollection is a permissive envelope. SPC payloads always carry "type",
// but collections are accepted without it. A missing "features" key is not
// an empty outlook: the body is something other than a collection.
type rawCollection struct {
	Type     string        `json:"type"`
	Features *[]rawFeature `json:"features"`
}

type rawFeature struct {
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// ParseFeatureCollection decodes an outlook GeoJSON body. Features with a null
// geometry are kept with a nil Geometry so availability can reject them.
func ParseFeatureCollection(c Category, data []byte) (FeatureCollection, error) {
	var raw rawCollection
	if err := json.Unmarshal(data, &raw); err != nil {
		return FeatureCollection{}, fmt.Errorf("decode feature collection: %w", err)
	}
	if raw.Type != "" && raw.Type != "FeatureCollection" {
		return FeatureCollection{}, fmt.Errorf("decode feature collection: unexpected type %q", raw.Type)
	}
	if raw.Features == nil {
		return FeatureCollection{}, errors.New("decode feature collection: missing features")
	}

	fc := FeatureCollection{Category: c, Features: make([]Feature, 0, len(*raw.Features))}
	for i, rf := range *raw.Features {
		f := Feature{Label: labelOf(rf.Properties)}
		if g := strings.TrimSpace(string(rf.Geometry)); g != "" && g != "null" {
			geom, err := geojson.UnmarshalGeometry(rf.Geometry)
			if err != nil {
				return FeatureCollection{}, fmt.Errorf("decode feature %d geometry: %w", i, err)
			}
			f.Geometry = geom.Geometry()
		}
		fc.Features = append(fc.Features, f)
	}
	return fc, nil
}

// labelOf reads the LABEL property. Some products emit numeric labels, which
// are formatted to match the two-decimal string vocabulary.
func labelOf(props map[string]any) string {
	switch v := props["LABEL"].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', 2, 64)
	default:
		return ""
	}
}

// Labels returns every feature label in collection order.
func (fc FeatureCollection) Labels() []string {
	out := make([]string, 0, len(fc.Features))
	for _, f := range fc.Features {
		out = append(out, f.Label)
	}
	return out
}
