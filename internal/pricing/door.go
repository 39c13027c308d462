package pricing

// DoorInput is the option set of the aluminium door calculator.
type DoorInput struct {
	Dimensions
	Thickness   Thickness `json:"thickness"`
	Chaukhat    bool      `json:"chaukhat"`
	Accessories bool      `json:"accessories"`
	DecorFilm   bool      `json:"decorFilm"`
	BrownCoated bool      `json:"brownCoated"`
}

// DoorResult is the itemized door quote. Costs are unrounded.
type DoorResult struct {
	HeightInch      float64 `json:"heightInch"`
	WidthInch       float64 `json:"widthInch"`
	Area            float64 `json:"area"`
	ChaukhatRft     float64 `json:"chaukhatRft"`
	DoorCost        float64 `json:"doorCost"`
	ChaukhatCost    float64 `json:"chaukhatCost"`
	AccessoriesCost float64 `json:"accessoriesCost"`
	DecorFilmCost   float64 `json:"decorFilmCost"`
	BrownCoatedCost float64 `json:"brownCoatedCost"`
	// Total is the structural subtotal: door, chaukhat and accessories.
	Total float64 `json:"total"`
	// AddonsTotal is decor film plus brown coat.
	AddonsTotal float64 `json:"addonsTotal"`
	Display
}

// GrandTotal is the structural subtotal plus add-ons.
func (r DoorResult) GrandTotal() float64 {
	return r.Total + r.AddonsTotal
}

// DoorProductName is appended to the approved name of a door quote.
const DoorProductName = " Aluminium Door"

// ComputeDoorQuote prices an aluminium door.
func ComputeDoorQuote(in DoorInput, table DoorTable) DoorResult {
	heightInch := in.HeightInch()
	widthInch := in.WidthInch()
	area := AreaSqft(heightInch, widthInch)
	rft := max(FrameRft(heightInch, widthInch), DoorMinChaukhatRft)

	rates := table[in.Thickness]

	res := DoorResult{
		HeightInch:  heightInch,
		WidthInch:   widthInch,
		Area:        area,
		ChaukhatRft: rft,
		DoorCost:    area * rates.Door,
		Display:     newDisplay(in.Dimensions, DoorProductName),
	}
	if in.Chaukhat {
		res.ChaukhatCost = rft * rates.Chaukhat
	}
	if in.Accessories {
		res.AccessoriesCost = rates.Accessories
	}
	if in.DecorFilm {
		res.DecorFilmCost = area * rates.DecorFilm
	}
	if in.BrownCoated {
		res.BrownCoatedCost = area * rates.BrownCoated
	}

	res.Total = res.DoorCost + res.ChaukhatCost + res.AccessoriesCost
	res.AddonsTotal = res.DecorFilmCost + res.BrownCoatedCost
	return res
}
