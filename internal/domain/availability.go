package domain

// IsAvailable reports whether any feature normalizes to at least one
// drawable ring. Callers must check it before compositing; an empty outlook
// is a normal state and is surfaced as ErrOutlookUnavailable rather than drawn.
func IsAvailable(fc FeatureCollection) bool {
	for _, f := range fc.Features {
		for _, r := range NormalizeGeometry(f.Geometry) {
			if r.Drawable() {
				return true
			}
		}
	}
	return false
}

// Summary is the caller-facing description of an outlook without the raster.
type Summary struct {
	Request      OutlookRequest `json:"-"`
	Category     Category       `json:"category"`
	Day          string         `json:"day"`
	Available    bool           `json:"available"`
	Highest      RiskLevel      `json:"highest"`
	Features     int            `json:"features"`
	Unrecognized []string       `json:"unrecognized,omitempty"`
}

// Summarize classifies a collection. Highest stays "None" both when nothing
// is forecast and when every label is unrecognized; Unrecognized lists the
// labels that were skipped so the two cases can be told apart downstream.
func Summarize(req OutlookRequest, fc FeatureCollection) (Summary, error) {
	scale, err := ScaleFor(req.Category)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{
		Request:   req,
		Category:  req.Category,
		Day:       req.Day.String(),
		Available: IsAvailable(fc),
		Highest:   scale.Highest(fc.Features),
		Features:  len(fc.Features),
	}
	seen := make(map[string]bool)
	for _, f := range fc.Features {
		if _, ok := scale.Rank(f.Label); ok || IsSignificant(f.Label) || seen[f.Label] {
			continue
		}
		seen[f.Label] = true
		s.Unrecognized = append(s.Unrecognized, f.Label)
	}
	return s, nil
}
