package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Category identifies one SPC outlook product family.
type Category string

const (
	CategoryCategorical   Category = "cat"
	CategoryTornado       Category = "tor"
	CategoryWind          Category = "wind"
	CategoryHail          Category = "hail"
	CategoryProbabilistic Category = "prob"
	CategoryDay4to8       Category = "d4-8"
)

// Categories lists every supported category in display order.
var Categories = []Category{
	CategoryCategorical,
	CategoryTornado,
	CategoryWind,
	CategoryHail,
	CategoryProbabilistic,
	CategoryDay4to8,
}

var categoryAliases = map[string]Category{
	"cat":           CategoryCategorical,
	"categorical":   CategoryCategorical,
	"tor":           CategoryTornado,
	"torn":          CategoryTornado,
	"tornado":       CategoryTornado,
	"wind":          CategoryWind,
	"hail":          CategoryHail,
	"prob":          CategoryProbabilistic,
	"probabilistic": CategoryProbabilistic,
	"d4-8":          CategoryDay4to8,
	"d48":           CategoryDay4to8,
	"day4-8":        CategoryDay4to8,
	"day4to8":       CategoryDay4to8,
}

// ParseCategory accepts the short product codes and their long names.
func ParseCategory(s string) (Category, error) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := products[c]
	return ok
}

// Title is the human-readable product name used in headers.
func (c Category) Title() string {
	if p, ok := products[c]; ok {
		return p.title
	}
	return string(c)
}

// Day is a forecast day. DayTest selects the archived demo snapshot.
type Day int

// DayTest is the sentinel for the archived "test" outlook.
const DayTest Day = 0

// ParseDay accepts "1".."8" or "test".
func ParseDay(s string) (Day, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "test" {
		return DayTest, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 8 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return Day(n), nil
}

func (d Day) String() string {
	if d == DayTest {
		return "test"
	}
	return strconv.Itoa(int(d))
}

// product describes where a category is published and for which days.
type product struct {
	title    string
	firstDay Day
	lastDay  Day
	livePath string // fmt template taking the day number
	archive  string // empty when no archived snapshot exists
}

var products = map[Category]product{
	CategoryCategorical: {
		title: "Categorical", firstDay: 1, lastDay: 3,
		livePath: "/products/outlook/day%dotlk_cat.nolyr.geojson",
		archive:  "/products/outlook/archive/2021/day1otlk_20210526_1630_cat.lyr.geojson",
	},
	CategoryTornado: {
		title: "Tornado", firstDay: 1, lastDay: 2,
		livePath: "/products/outlook/day%dotlk_torn.nolyr.geojson",
		archive:  "/products/outlook/archive/2021/day1otlk_20210317_1630_torn.lyr.geojson",
	},
	CategoryWind: {
		title: "Wind", firstDay: 1, lastDay: 2,
		livePath: "/products/outlook/day%dotlk_wind.nolyr.geojson",
		archive:  "/products/outlook/archive/2021/day1otlk_20210325_1630_wind.lyr.geojson",
	},
	CategoryHail: {
		title: "Hail", firstDay: 1, lastDay: 2,
		livePath: "/products/outlook/day%dotlk_hail.nolyr.geojson",
		archive:  "/products/outlook/archive/2021/day1otlk_20210526_1630_hail.lyr.geojson",
	},
	CategoryProbabilistic: {
		title: "Probabilistic", firstDay: 3, lastDay: 3,
		livePath: "/products/outlook/day%dotlk_prob.lyr.geojson",
	},
	CategoryDay4to8: {
		title: "Day 4-8", firstDay: 4, lastDay: 8,
		livePath: "/products/exper/day4-8/day%dprob.lyr.geojson",
		archive:  "/products/outlook/archive/2021/day1otlk_20210526_1630_48hr.lyr.geojson",
	},
}

// OutlookRequest names one outlook product. Construct with NewOutlookRequest.
type OutlookRequest struct {
	Category Category
	Day      Day
}

// NewOutlookRequest validates the day against the category's published range.
func NewOutlookRequest(c Category, d Day) (OutlookRequest, error) {
	r := OutlookRequest{Category: c, Day: d}
	if err := r.Validate(); err != nil {
		return OutlookRequest{}, err
	}
	return r, nil
}

// Validate checks the (category, day) pair against the product table.
func (r OutlookRequest) Validate() error {
	p, ok := products[r.Category]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, r.Category)
	}
	if r.Day == DayTest {
		if p.archive == "" {
			return fmt.Errorf("%w: no archived %s outlook", ErrInvalidDay, r.Category)
		}
		return nil
	}
	if r.Day < p.firstDay || r.Day > p.lastDay {
		return fmt.Errorf("%w: %s outlook is published for days %d-%d, got %d",
			ErrInvalidDay, r.Category, p.firstDay, p.lastDay, r.Day)
	}
	return nil
}

// URL returns the retrieval URL for the request under baseURL.
func (r OutlookRequest) URL(baseURL string) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	p := products[r.Category]
	baseURL = strings.TrimRight(baseURL, "/")
	if r.Day == DayTest {
		return baseURL + p.archive, nil
	}
	return baseURL + fmt.Sprintf(p.livePath, int(r.Day)), nil
}

// ArtifactName is the deterministic file name of the rendered map.
func (r OutlookRequest) ArtifactName() string {
	return fmt.Sprintf("spc_day_%s_%s_outlook.png", r.Day, r.Category)
}

func (r OutlookRequest) String() string {
	return fmt.Sprintf("%s day %s", r.Category, r.Day)
}

// RenderedArtifact is a composited outlook map written to disk.
type RenderedArtifact struct {
	Request    OutlookRequest
	Path       string
	RenderedAt time.Time
}

// NewRenderedArtifact stamps an artifact with the package clock.
func NewRenderedArtifact(req OutlookRequest, path string) RenderedArtifact {
	return RenderedArtifact{Request: req, Path: path, RenderedAt: clock.Now()}
}
