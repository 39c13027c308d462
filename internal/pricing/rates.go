package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Thickness is the aluminium section gauge shared by every product family.
type Thickness int

const (
	Thickness12 Thickness = iota
	Thickness16
	Thickness12Hindalco

	// ThicknessCount sizes the per-thickness rate arrays.
	ThicknessCount
)

// Thicknesses lists every thickness in display order.
var Thicknesses = [ThicknessCount]Thickness{Thickness12, Thickness16, Thickness12Hindalco}

// Label returns the upper-case label used by the door and 2-track calculators.
func (t Thickness) Label() string {
	switch t {
	case Thickness12:
		return "1.2 MM"
	case Thickness16:
		return "1.6 MM"
	case Thickness12Hindalco:
		return "1.2 MM Hindalco"
	}
	return fmt.Sprintf("Thickness(%d)", int(t))
}

// LowerLabel returns the label used by the 3-track calculator.
func (t Thickness) LowerLabel() string {
	return strings.Replace(t.Label(), "MM", "mm", 1)
}

// Slug returns the URL/form value for t.
func (t Thickness) Slug() string {
	switch t {
	case Thickness12:
		return "1.2mm"
	case Thickness16:
		return "1.6mm"
	case Thickness12Hindalco:
		return "1.2mm-hindalco"
	}
	return ""
}

// ParseThickness accepts a slug or either family label, case-insensitively.
func ParseThickness(s string) (Thickness, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range Thicknesses {
		if s == t.Slug() || s == strings.ToLower(t.Label()) {
			return t, true
		}
	}
	return 0, false
}

// GlassType selects the glazing of a window.
type GlassType int

const (
	GlassClear GlassType = iota
	GlassReflective
)

func (g GlassType) String() string {
	if g == GlassReflective {
		return "reflective"
	}
	return "clear"
}

// ParseGlassType accepts "clear" or "reflective".
func ParseGlassType(s string) (GlassType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clear":
		return GlassClear, true
	case "reflective":
		return GlassReflective, true
	}
	return 0, false
}

// DoorRates are the per-unit rates for one door thickness.
type DoorRates struct {
	Door        float64 `json:"door"`
	Chaukhat    float64 `json:"chaukhat"`
	Accessories float64 `json:"accessories"`
	DecorFilm   float64 `json:"decorFilm"`
	BrownCoated float64 `json:"brownCoated"`
}

// DoorTable maps every thickness to its door rates. It encodes as a JSON
// object keyed by thickness slug.
type DoorTable [ThicknessCount]DoorRates

func (d DoorTable) MarshalJSON() ([]byte, error) {
	return marshalByThickness([ThicknessCount]DoorRates(d))
}

func (d *DoorTable) UnmarshalJSON(data []byte) error {
	return unmarshalByThickness(data, (*[ThicknessCount]DoorRates)(d))
}

// WindowRates are the glass deltas over the band base rate and the frame rate
// for one window thickness.
type WindowRates struct {
	Clear      float64 `json:"clear"`
	Reflective float64 `json:"reflective"`
	Chaukhat   float64 `json:"chaukhat"`
}

// WindowThicknessTable maps every thickness to its window rates. It encodes
// like DoorTable.
type WindowThicknessTable [ThicknessCount]WindowRates

func (w WindowThicknessTable) MarshalJSON() ([]byte, error) {
	return marshalByThickness([ThicknessCount]WindowRates(w))
}

func (w *WindowThicknessTable) UnmarshalJSON(data []byte) error {
	return unmarshalByThickness(data, (*[ThicknessCount]WindowRates)(w))
}

func marshalByThickness[R any](rates [ThicknessCount]R) ([]byte, error) {
	m := make(map[string]R, ThicknessCount)
	for _, t := range Thicknesses {
		m[t.Slug()] = rates[t]
	}
	return json.Marshal(m)
}

func unmarshalByThickness[R any](data []byte, out *[ThicknessCount]R) error {
	var m map[string]R
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for key, r := range m {
		t, ok := ParseThickness(key)
		if !ok {
			return fmt.Errorf("unknown thickness %q", key)
		}
		out[t] = r
	}
	return nil
}

// Band is one row of an area-banded base-rate table.
type Band struct {
	Area float64 `json:"area"`
	Rate float64 `json:"rate"`
}

// BandTable is an area-banded base-rate table. Order is not significant.
type BandTable []Band

// BaseRate returns the rate of the largest threshold not exceeding area.
// Below every threshold the smallest threshold's rate is returned. An empty
// table yields 0.
func (b BandTable) BaseRate(area float64) float64 {
	if len(b) == 0 {
		return 0
	}
	sorted := slices.Clone(b)
	slices.SortStableFunc(sorted, func(x, y Band) int {
		switch {
		case x.Area > y.Area:
			return -1
		case x.Area < y.Area:
			return 1
		}
		return 0
	})
	for _, band := range sorted {
		if area >= band.Area {
			return band.Rate
		}
	}
	return sorted[len(sorted)-1].Rate
}

// WindowTable holds everything a sliding-window calculator needs.
// Decor film, net and brown coat rates do not vary by thickness or glass.
type WindowTable struct {
	Thickness   WindowThicknessTable `json:"thickness"`
	Bands       BandTable            `json:"bands"`
	DecorFilm   float64              `json:"decorFilm"`
	Net         float64              `json:"net"`
	BrownCoated float64              `json:"brownCoated"`
}

// RateBook is one immutable version of all product rate tables.
type RateBook struct {
	Version      string      `json:"version"`
	Door         DoorTable   `json:"door"`
	Window2Track WindowTable `json:"window2Track"`
	Window3Track WindowTable `json:"window3Track"`
}

// DefaultVersion names the compiled-in rate book.
const DefaultVersion = "2024-default"

var defaultWindowThickness = WindowThicknessTable{
	Thickness12:         {Clear: 0, Reflective: 20, Chaukhat: 75},
	Thickness16:         {Clear: 50, Reflective: 50, Chaukhat: 85},
	Thickness12Hindalco: {Clear: 40, Reflective: 40, Chaukhat: 85},
}

// DefaultRateBook returns a fresh copy of the compiled-in rates.
func DefaultRateBook() RateBook {
	return RateBook{
		Version: DefaultVersion,
		Door: DoorTable{
			Thickness12:         {Door: 130, Chaukhat: 75, Accessories: 160, DecorFilm: 30, BrownCoated: 60},
			Thickness16:         {Door: 180, Chaukhat: 95, Accessories: 160, DecorFilm: 30, BrownCoated: 60},
			Thickness12Hindalco: {Door: 150, Chaukhat: 85, Accessories: 160, DecorFilm: 30, BrownCoated: 60},
		},
		Window2Track: WindowTable{
			Thickness: defaultWindowThickness,
			Bands: BandTable{
				{Area: 6, Rate: 240},
				{Area: 7.5, Rate: 260},
				{Area: 9, Rate: 230},
				{Area: 12, Rate: 210},
				{Area: 16, Rate: 190},
				{Area: 20, Rate: 180},
				{Area: 24, Rate: 170},
			},
			DecorFilm:   30,
			Net:         50,
			BrownCoated: 40,
		},
		Window3Track: WindowTable{
			Thickness: defaultWindowThickness,
			Bands: BandTable{
				{Area: 6, Rate: 360},
				{Area: 7.5, Rate: 320},
				{Area: 9, Rate: 300},
				{Area: 12, Rate: 280},
				{Area: 16, Rate: 250},
				{Area: 20, Rate: 240},
				{Area: 24, Rate: 230},
			},
			DecorFilm:   30,
			Net:         50,
			BrownCoated: 40,
		},
	}
}

// Validate reports rate books that cannot produce a sensible quote.
func (b RateBook) Validate() error {
	var errs []error
	if strings.TrimSpace(b.Version) == "" {
		errs = append(errs, errors.New("version is required"))
	}
	for _, t := range Thicknesses {
		r := b.Door[t]
		if r.Door < 0 || r.Chaukhat < 0 || r.Accessories < 0 || r.DecorFilm < 0 || r.BrownCoated < 0 {
			errs = append(errs, fmt.Errorf("door %s: negative rate", t.Label()))
		}
	}
	errs = append(errs, b.Window2Track.validate("2 track")...)
	errs = append(errs, b.Window3Track.validate("3 track")...)
	return errors.Join(errs...)
}

func (w WindowTable) validate(name string) []error {
	var errs []error
	if len(w.Bands) == 0 {
		errs = append(errs, fmt.Errorf("%s: band table is empty", name))
	}
	for _, band := range w.Bands {
		if band.Area < 0 || band.Rate < 0 {
			errs = append(errs, fmt.Errorf("%s: negative band %v", name, band))
		}
	}
	for _, t := range Thicknesses {
		r := w.Thickness[t]
		if r.Clear < 0 || r.Reflective < 0 || r.Chaukhat < 0 {
			errs = append(errs, fmt.Errorf("%s %s: negative rate", name, t.Label()))
		}
	}
	if w.DecorFilm < 0 || w.Net < 0 || w.BrownCoated < 0 {
		errs = append(errs, fmt.Errorf("%s: negative add-on rate", name))
	}
	return errs
}
