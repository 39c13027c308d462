// Package quotedoc assembles priced quotes for display and renders them as
// printable PDFs and batch workbooks.
package quotedoc

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/hardwarehub/alucalc/internal/money"
	"github.com/hardwarehub/alucalc/internal/pricing"
	"github.com/hardwarehub/alucalc/internal/validate"
)

// Line is one itemized row of a quote.
type Line struct {
	Label    string  `json:"label"`
	Detail   string  `json:"detail"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
	Selected bool    `json:"selected"`
	Addon    bool    `json:"addon"`
	// Compare is the line's rate under every thickness, in display order.
	// Empty when the rate does not depend on thickness.
	Compare []ThicknessRate `json:"compare,omitempty"`
}

// ThicknessRate is a line's unit rate under one thickness.
type ThicknessRate struct {
	Thickness string  `json:"thickness"`
	Rate      float64 `json:"rate"`
	Current   bool    `json:"current"`
}

// Totals are the customer-facing, whole-rupee totals.
type Totals struct {
	Base       int64  `json:"base"`
	Addons     int64  `json:"addons"`
	Grand      int64  `json:"grand"`
	BaseText   string `json:"baseText"`
	AddonsText string `json:"addonsText"`
	GrandText  string `json:"grandText"`
}

// Quote is a priced calculator request ready for display.
type Quote struct {
	Reference    string           `json:"reference,omitempty"`
	Product      validate.Product `json:"product"`
	Title        string           `json:"title"`
	RatesVersion string           `json:"ratesVersion"`
	Thickness    string           `json:"thickness"`
	Glass        string           `json:"glass,omitempty"`
	pricing.Display
	Area        float64  `json:"area"`
	ChaukhatRft float64  `json:"chaukhatRft"`
	Lines       []Line   `json:"lines"`
	Total       float64  `json:"total"`
	AddonsTotal float64  `json:"addonsTotal"`
	Totals      Totals   `json:"totals"`
	Warnings    []string `json:"warnings,omitempty"`
	// ThicknessLabels head the comparison columns of Line.Compare.
	ThicknessLabels []string `json:"thicknessLabels"`
	// Result is the unrounded engine output.
	Result any `json:"result"`
}

// NewReference returns a short printable quote reference.
func NewReference() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// Build validates v for product p and prices it against book.
func Build(book pricing.RateBook, p validate.Product, v validate.Values) (Quote, error) {
	switch p {
	case validate.ProductDoor:
		in, warnings, err := validate.Door(v)
		if err != nil {
			return Quote{}, err
		}
		q := FromDoor(in, pricing.ComputeDoorQuote(in, book.Door), book.Door)
		q.RatesVersion, q.Warnings = book.Version, warnings
		return q, nil
	case validate.ProductWindow2Track:
		in, warnings, err := validate.Window2Track(v)
		if err != nil {
			return Quote{}, err
		}
		q := FromWindow2Track(in, pricing.ComputeWindow2TrackQuote(in, book.Window2Track), book.Window2Track)
		q.RatesVersion, q.Warnings = book.Version, warnings
		return q, nil
	case validate.ProductWindow3Track:
		in, warnings, err := validate.Window3Track(v)
		if err != nil {
			return Quote{}, err
		}
		q := FromWindow3Track(in, pricing.ComputeWindow3TrackQuote(in, book.Window3Track), book.Window3Track)
		q.RatesVersion, q.Warnings = book.Version, warnings
		return q, nil
	}
	_, err := validate.ParseProduct(string(p))
	return Quote{}, err
}

// FromDoor builds the display quote of a door result priced from table.
func FromDoor(in pricing.DoorInput, res pricing.DoorResult, table pricing.DoorTable) Quote {
	rates := table[in.Thickness]
	compare := func(rate func(pricing.DoorRates) float64) []ThicknessRate {
		return compareRates(in.Thickness, pricing.Thickness.Label, func(t pricing.Thickness) float64 {
			return rate(table[t])
		})
	}

	q := Quote{
		Product:     validate.ProductDoor,
		Title:       validate.ProductDoor.Title(),
		Thickness:   in.Thickness.Label(),
		Display:     res.Display,
		Area:        res.Area,
		ChaukhatRft: res.ChaukhatRft,
		Lines: []Line{
			{
				Label: "Door", Detail: sqftDetail(res.Area), Rate: rates.Door, Amount: res.DoorCost, Selected: true,
				Compare: compare(func(r pricing.DoorRates) float64 { return r.Door }),
			},
			{
				Label: "Chaukhat", Detail: rftDetail(res.ChaukhatRft), Rate: rates.Chaukhat, Amount: res.ChaukhatCost, Selected: in.Chaukhat,
				Compare: compare(func(r pricing.DoorRates) float64 { return r.Chaukhat }),
			},
			{
				Label: "Accessories", Detail: "fixed", Rate: rates.Accessories, Amount: res.AccessoriesCost, Selected: in.Accessories,
				Compare: compare(func(r pricing.DoorRates) float64 { return r.Accessories }),
			},
			{
				Label: "Decor Film", Detail: sqftDetail(res.Area), Rate: rates.DecorFilm, Amount: res.DecorFilmCost, Selected: in.DecorFilm, Addon: true,
				Compare: compare(func(r pricing.DoorRates) float64 { return r.DecorFilm }),
			},
			{
				Label: "Brown Coated", Detail: sqftDetail(res.Area), Rate: rates.BrownCoated, Amount: res.BrownCoatedCost, Selected: in.BrownCoated, Addon: true,
				Compare: compare(func(r pricing.DoorRates) float64 { return r.BrownCoated }),
			},
		},
		ThicknessLabels: thicknessLabels(pricing.Thickness.Label),
		Result:          res,
	}
	q.setTotals(res.Total, res.AddonsTotal)
	return q
}

// FromWindow2Track builds the display quote of a 2-track window result priced
// from table.
func FromWindow2Track(in pricing.Window2TrackInput, res pricing.WindowResult, table pricing.WindowTable) Quote {
	return fromWindow(validate.ProductWindow2Track, in.WindowOptions, pricing.Thickness.Label, "Full SS Net", in.FullSSNet, res, table)
}

// FromWindow3Track builds the display quote of a 3-track window result priced
// from table.
func FromWindow3Track(in pricing.Window3TrackInput, res pricing.WindowResult, table pricing.WindowTable) Quote {
	return fromWindow(validate.ProductWindow3Track, in.WindowOptions, pricing.Thickness.LowerLabel, "Half SS Net", in.HalfSSNet, res, table)
}

func fromWindow(p validate.Product, in pricing.WindowOptions, label func(pricing.Thickness) string, netLabel string, net bool, res pricing.WindowResult, table pricing.WindowTable) Quote {
	glassRate := func(t pricing.Thickness) float64 {
		if in.Glass == pricing.GlassReflective {
			return res.BaseRate + table.Thickness[t].Reflective
		}
		return res.BaseRate + table.Thickness[t].Clear
	}
	chaukhatRate := func(t pricing.Thickness) float64 {
		return table.Thickness[t].Chaukhat
	}

	q := Quote{
		Product:     p,
		Title:       p.Title(),
		Thickness:   label(in.Thickness),
		Glass:       in.Glass.String(),
		Display:     res.Display,
		Area:        res.Area,
		ChaukhatRft: res.ChaukhatRft,
		Lines: []Line{
			{
				Label: "Glass (" + in.Glass.String() + ")", Detail: sqftDetail(res.Area), Rate: res.GlassRate, Amount: res.GlassCost, Selected: true,
				Compare: compareRates(in.Thickness, label, glassRate),
			},
			{
				Label: "Chaukhat", Detail: rftDetail(res.ChaukhatRft), Rate: chaukhatRate(in.Thickness), Amount: res.ChaukhatCost, Selected: in.Chaukhat,
				Compare: compareRates(in.Thickness, label, chaukhatRate),
			},
			{Label: "Decor Film", Detail: sqftDetail(res.Area), Rate: table.DecorFilm, Amount: res.DecorFilmCost, Selected: in.DecorFilm, Addon: true},
			{Label: netLabel, Detail: sqftDetail(res.Area), Rate: table.Net, Amount: res.NetCost, Selected: net, Addon: true},
			{Label: "Brown Coated", Detail: sqftDetail(res.Area), Rate: table.BrownCoated, Amount: res.BrownCoatedCost, Selected: in.BrownCoated, Addon: true},
		},
		ThicknessLabels: thicknessLabels(label),
		Result:          res,
	}
	q.setTotals(res.Total, res.AddonsTotal)
	return q
}

func compareRates(current pricing.Thickness, label func(pricing.Thickness) string, rate func(pricing.Thickness) float64) []ThicknessRate {
	out := make([]ThicknessRate, 0, len(pricing.Thicknesses))
	for _, t := range pricing.Thicknesses {
		out = append(out, ThicknessRate{Thickness: label(t), Rate: rate(t), Current: t == current})
	}
	return out
}

func thicknessLabels(label func(pricing.Thickness) string) []string {
	labels := make([]string, 0, len(pricing.Thicknesses))
	for _, t := range pricing.Thicknesses {
		labels = append(labels, label(t))
	}
	return labels
}

func (q *Quote) setTotals(total, addons float64) {
	q.Total, q.AddonsTotal = total, addons
	q.Totals = Totals{
		Base:       money.Round(total),
		Addons:     money.Round(addons),
		Grand:      money.Round(total + addons),
		BaseText:   money.Format(total),
		AddonsText: money.Format(addons),
		GrandText:  money.Format(total + addons),
	}
}

// AmountText renders a line amount, or "Not Selected".
func (l Line) AmountText() string {
	if !l.Selected {
		return "Not Selected"
	}
	return money.Format(l.Amount)
}

// RateText renders the unit rate as "@130".
func (l Line) RateText() string {
	return rateText(l.Rate)
}

// CompareCells renders one cell per thickness: the line amount under the
// quoted thickness, the unit rate under the others.
func (l Line) CompareCells() []string {
	cells := make([]string, 0, len(l.Compare))
	for _, c := range l.Compare {
		if c.Current {
			cells = append(cells, l.AmountText())
			continue
		}
		cells = append(cells, rateText(c.Rate))
	}
	return cells
}

func rateText(rate float64) string {
	return "@" + strconv.FormatFloat(rate, 'f', -1, 64)
}

func sqftDetail(area float64) string {
	return strconv.FormatFloat(area, 'f', 2, 64) + " sqft"
}

func rftDetail(rft float64) string {
	return strconv.FormatFloat(rft, 'f', 2, 64) + " rft"
}
