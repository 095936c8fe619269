package domain

import (
	"fmt"
	"image/color"
	"strings"
)

// Color is a named fill color.
type Color struct {
	Name string
	RGBA color.RGBA
}

var (
	ColorUnknown     = Color{"blue", color.RGBA{0, 0, 255, 255}}
	ColorSignificant = Color{"black", color.RGBA{0, 0, 0, 255}}
)

// Style is how a single feature is painted.
type Style struct {
	Fill    Color
	Alpha   float64
	Hatched bool
}

const (
	fillAlpha        = 0.5
	significantAlpha = 0.2
)

// RiskTier is one entry in a category's ordered vocabulary.
type RiskTier struct {
	Label   string
	Display string
	Color   Color
}

// RiskLevel is the outcome of folding a collection onto its scale.
type RiskLevel struct {
	Label   string `json:"label"`
	Display string `json:"display"`
	Rank    int    `json:"rank"`
}

// NoRisk is returned when no feature carries a recognized label.
var NoRisk = RiskLevel{Label: "None", Display: "None", Rank: -1}

// RiskScale is the read-only total order over one category's labels.
type RiskScale struct {
	category Category
	tiers    []RiskTier
	index    map[string]int
}

func newScale(c Category, tiers ...RiskTier) *RiskScale {
	s := &RiskScale{category: c, tiers: tiers, index: make(map[string]int, len(tiers))}
	for i, t := range tiers {
		s.index[t.Label] = i
	}
	return s
}

var (
	cLightGreen  = Color{"lightgreen", color.RGBA{144, 238, 144, 255}}
	cGreen       = Color{"green", color.RGBA{0, 128, 0, 255}}
	cYellow      = Color{"yellow", color.RGBA{255, 255, 0, 255}}
	cOrange      = Color{"orange", color.RGBA{255, 165, 0, 255}}
	cRed         = Color{"red", color.RGBA{255, 0, 0, 255}}
	cMagenta     = Color{"magenta", color.RGBA{255, 0, 255, 255}}
	cBrown       = Color{"brown", color.RGBA{165, 42, 42, 255}}
	cPink        = Color{"pink", color.RGBA{255, 192, 203, 255}}
	cPurple      = Color{"purple", color.RGBA{128, 0, 128, 255}}
	cBlue        = Color{"blue", color.RGBA{0, 0, 255, 255}}
	cSaddleBrown = Color{"saddlebrown", color.RGBA{139, 69, 19, 255}}
	cGold        = Color{"gold", color.RGBA{255, 215, 0, 255}}
	cFuchsia     = Color{"fuchsia", color.RGBA{255, 0, 255, 255}}
	cBlueViolet  = Color{"blueviolet", color.RGBA{138, 43, 226, 255}}
	cSandyBrown  = Color{"sandybrown", color.RGBA{244, 164, 96, 255}}
)

func severeTiers() []RiskTier {
	return []RiskTier{
		{"0.05", "5%", cSaddleBrown},
		{"0.15", "15%", cGold},
		{"0.30", "30%", cRed},
		{"0.45", "45%", cFuchsia},
		{"0.60", "60%", cBlueViolet},
	}
}

var scales = map[Category]*RiskScale{
	CategoryCategorical: newScale(CategoryCategorical,
		RiskTier{"TSTM", "Thunderstorm", cLightGreen},
		RiskTier{"MRGL", "Marginal", cGreen},
		RiskTier{"SLGT", "Slight", cYellow},
		RiskTier{"ENH", "Enhanced", cOrange},
		RiskTier{"MDT", "Moderate", cRed},
		RiskTier{"HIGH", "High", cMagenta},
	),
	CategoryTornado: newScale(CategoryTornado,
		RiskTier{"0.02", "2%", cGreen},
		RiskTier{"0.05", "5%", cBrown},
		RiskTier{"0.10", "10%", cYellow},
		RiskTier{"0.15", "15%", cRed},
		RiskTier{"0.30", "30%", cPink},
		RiskTier{"0.45", "45%", cPurple},
		RiskTier{"0.60", "60%", cBlue},
	),
	CategoryWind:          newScale(CategoryWind, severeTiers()...),
	CategoryHail:          newScale(CategoryHail, severeTiers()...),
	CategoryProbabilistic: newScale(CategoryProbabilistic, severeTiers()...),
	CategoryDay4to8: newScale(CategoryDay4to8,
		RiskTier{"0.15", "15%", cGold},
		RiskTier{"0.30", "30%", cSandyBrown},
	),
}

// ScaleFor returns the scale for c, or ErrUnknownCategory.
func ScaleFor(c Category) (*RiskScale, error) {
	s, ok := scales[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return s, nil
}

// IsSignificant reports whether label is the hatched significant modifier.
func IsSignificant(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), "SIGN") || strings.EqualFold(strings.TrimSpace(label), "sig")
}

// Category returns the category the scale orders.
func (s *RiskScale) Category() Category { return s.category }

// Tiers returns a copy of the ordered vocabulary, lowest first.
func (s *RiskScale) Tiers() []RiskTier {
	return append([]RiskTier(nil), s.tiers...)
}

// Rank returns the ordinal of label. Unrecognized labels and the significant
// modifier report false.
func (s *RiskScale) Rank(label string) (int, bool) {
	i, ok := s.index[strings.TrimSpace(label)]
	return i, ok
}

// Color resolves the fill color of label, falling back to ColorUnknown.
func (s *RiskScale) Color(label string) Color {
	if IsSignificant(label) {
		return ColorSignificant
	}
	if i, ok := s.Rank(label); ok {
		return s.tiers[i].Color
	}
	return ColorUnknown
}

// Style returns the paint for label.
func (s *RiskScale) Style(label string) Style {
	if IsSignificant(label) {
		return Style{Fill: ColorSignificant, Alpha: significantAlpha, Hatched: true}
	}
	return Style{Fill: s.Color(label), Alpha: fillAlpha}
}

// Highest folds features to the maximum recognized tier. The result depends
// only on the multiset of labels, never on feature order.
func (s *RiskScale) Highest(features []Feature) RiskLevel {
	best := -1
	for _, f := range features {
		if i, ok := s.Rank(f.Label); ok && i > best {
			best = i
		}
	}
	if best < 0 {
		return NoRisk
	}
	t := s.tiers[best]
	return RiskLevel{Label: t.Label, Display: t.Display, Rank: best}
}

// HighestRank is the free-function form of RiskScale.Highest.
func HighestRank(fc FeatureCollection) (RiskLevel, error) {
	s, err := ScaleFor(fc.Category)
	if err != nil {
		return NoRisk, err
	}
	return s.Highest(fc.Features), nil
}
