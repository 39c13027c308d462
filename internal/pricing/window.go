package pricing

// WindowOptions are the selections shared by both sliding-window calculators.
type WindowOptions struct {
	Dimensions
	Thickness   Thickness `json:"thickness"`
	Glass       GlassType `json:"glass"`
	Chaukhat    bool      `json:"chaukhat"`
	DecorFilm   bool      `json:"decorFilm"`
	BrownCoated bool      `json:"brownCoated"`
}

// Window2TrackInput is the option set of the 2-track window calculator.
type Window2TrackInput struct {
	WindowOptions
	FullSSNet bool `json:"fullSSNet"`
}

// Window3TrackInput is the option set of the 3-track window calculator.
type Window3TrackInput struct {
	WindowOptions
	HalfSSNet bool `json:"halfSSNet"`
}

// WindowResult is the itemized window quote. Costs are unrounded.
type WindowResult struct {
	HeightInch      float64 `json:"heightInch"`
	WidthInch       float64 `json:"widthInch"`
	Area            float64 `json:"area"`
	ChaukhatRft     float64 `json:"chaukhatRft"`
	BaseRate        float64 `json:"baseRate"`
	GlassRate       float64 `json:"glassRate"`
	GlassCost       float64 `json:"glassCost"`
	ChaukhatCost    float64 `json:"chaukhatCost"`
	DecorFilmCost   float64 `json:"decorFilmCost"`
	NetCost         float64 `json:"netCost"`
	BrownCoatedCost float64 `json:"brownCoatedCost"`
	// Total is the structural subtotal: glass and chaukhat.
	Total float64 `json:"total"`
	// AddonsTotal is decor film, net and brown coat.
	AddonsTotal float64 `json:"addonsTotal"`
	Display
}

// GrandTotal is the structural subtotal plus add-ons.
func (r WindowResult) GrandTotal() float64 {
	return r.Total + r.AddonsTotal
}

const (
	Window2TrackProductName = "  2 Track Aluminium Window"
	Window3TrackProductName = "  3 Track Aluminium Window"
)

// ComputeWindow2TrackQuote prices a 2-track sliding window with an optional
// full stainless-steel net.
func ComputeWindow2TrackQuote(in Window2TrackInput, table WindowTable) WindowResult {
	return computeWindow(in.WindowOptions, in.FullSSNet, table, Window2TrackProductName)
}

// ComputeWindow3TrackQuote prices a 3-track sliding window with an optional
// half stainless-steel net.
func ComputeWindow3TrackQuote(in Window3TrackInput, table WindowTable) WindowResult {
	return computeWindow(in.WindowOptions, in.HalfSSNet, table, Window3TrackProductName)
}

func computeWindow(in WindowOptions, net bool, table WindowTable, product string) WindowResult {
	heightInch := in.HeightInch()
	widthInch := in.WidthInch()
	area := AreaSqft(heightInch, widthInch)
	rft := FrameRft(heightInch, widthInch)

	baseRate := table.Bands.BaseRate(area)
	rates := table.Thickness[in.Thickness]
	glassRate := baseRate + rates.Clear
	if in.Glass == GlassReflective {
		glassRate = baseRate + rates.Reflective
	}

	res := WindowResult{
		HeightInch:  heightInch,
		WidthInch:   widthInch,
		Area:        area,
		ChaukhatRft: rft,
		BaseRate:    baseRate,
		GlassRate:   glassRate,
		GlassCost:   area * glassRate,
		Display:     newDisplay(in.Dimensions, product),
	}
	if in.Chaukhat {
		res.ChaukhatCost = rft * rates.Chaukhat
	}
	if in.DecorFilm {
		res.DecorFilmCost = area * table.DecorFilm
	}
	if net {
		res.NetCost = area * table.Net
	}
	if in.BrownCoated {
		res.BrownCoatedCost = area * table.BrownCoated
	}

	res.Total = res.GlassCost + res.ChaukhatCost
	res.AddonsTotal = res.DecorFilmCost + res.NetCost + res.BrownCoatedCost
	return res
}
