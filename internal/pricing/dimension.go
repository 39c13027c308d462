package pricing

import (
	"math"
	"strconv"
)

// SootDenominator is the fixed denominator of a soot fraction.
const SootDenominator = 8

// DoorMinChaukhatRft is the minimum running feet charged for a door frame.
const DoorMinChaukhatRft = 14.5

// Dimensions is a height and width in whole inches plus soot (eighths of an
// inch). The engine is defined for Height, Width > 0 and soot in 0..7.
type Dimensions struct {
	Height     float64 `json:"height"`
	Width      float64 `json:"width"`
	HeightSoot int     `json:"heightSoot"`
	WidthSoot  int     `json:"widthSoot"`
}

// HeightInch is the effective height in inches.
func (d Dimensions) HeightInch() float64 {
	return withSoot(d.Height, d.HeightSoot)
}

// WidthInch is the effective width in inches.
func (d Dimensions) WidthInch() float64 {
	return withSoot(d.Width, d.WidthSoot)
}

func withSoot(inches float64, soot int) float64 {
	if soot > 0 {
		return inches + float64(soot)/SootDenominator
	}
	return inches
}

// AreaSqft returns the area in square feet rounded to 2 decimals.
func AreaSqft(heightInch, widthInch float64) float64 {
	return round2((heightInch * widthInch) / 144)
}

// FrameRft returns the running feet of a three-sided frame (two stiles and the
// head) rounded to 2 decimals.
func FrameRft(heightInch, widthInch float64) float64 {
	return round2((heightInch*2 + widthInch) / 12)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Display holds the printable dimension strings of a quote.
type Display struct {
	HeightDisplay string `json:"heightDisplay"`
	WidthDisplay  string `json:"widthDisplay"`
	SizeDisplay   string `json:"sizeDisplay"`
	ApprovedName  string `json:"approvedName"`
}

func newDisplay(d Dimensions, product string) Display {
	h := formatInches(d.Height, d.HeightSoot)
	w := formatInches(d.Width, d.WidthSoot)
	return Display{
		HeightDisplay: h,
		WidthDisplay:  w,
		SizeDisplay:   h + "  X  " + w,
		ApprovedName:  h + " X  " + w + product,
	}
}

// formatInches renders 65'' or 65 3/8''.
func formatInches(inches float64, soot int) string {
	whole := strconv.FormatFloat(inches, 'f', -1, 64)
	if soot > 0 {
		return whole + " " + strconv.Itoa(soot) + "/8''"
	}
	return whole + "''"
}
