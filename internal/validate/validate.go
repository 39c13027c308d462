// Package validate converts untyped calculator input (form values, JSON
// objects, spreadsheet rows) into typed pricing inputs. The pricing engine
// trusts its input; every external caller goes through here first.
package validate

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/hardwarehub/alucalc/internal/pricing"
)

// ValidationError reports a single rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Values is the read side of url.Values.
type Values interface {
	Get(key string) string
}

// Form field names shared by every input source.
const (
	FieldHeight      = "height"
	FieldWidth       = "width"
	FieldHeightSoot  = "heightSoot"
	FieldWidthSoot   = "widthSoot"
	FieldThickness   = "thickness"
	FieldGlassType   = "glassType"
	FieldChaukhat    = "chaukhat"
	FieldAccessories = "accessories"
	FieldDecorFilm   = "decorFilm"
	FieldBrownCoated = "brownCoated"
	FieldFullSSNet   = "fullSSNet"
	FieldHalfSSNet   = "halfSSNet"
)

// Product identifies one calculator.
type Product string

const (
	ProductDoor         Product = "aluminium-door"
	ProductWindow2Track Product = "window-2track"
	ProductWindow3Track Product = "window-3track"
)

// Products lists every calculator in menu order.
var Products = []Product{ProductDoor, ProductWindow2Track, ProductWindow3Track}

// ParseProduct accepts a product slug.
func ParseProduct(s string) (Product, error) {
	p := Product(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Products {
		if p == known {
			return p, nil
		}
	}
	return "", invalid("product", "unknown product %q", s)
}

// Title is the human readable product name.
func (p Product) Title() string {
	switch p {
	case ProductDoor:
		return "Aluminium Door"
	case ProductWindow2Track:
		return "2 Track Aluminium Window"
	case ProductWindow3Track:
		return "3 Track Aluminium Window"
	}
	return string(p)
}

// Limits are the largest whole-inch dimensions a product is sold in, and the
// dimensions used when a field is left empty.
type Limits struct {
	MaxHeight     float64
	MaxWidth      float64
	DefaultHeight float64
	DefaultWidth  float64
}

// LimitsFor returns the dimension limits of p.
func LimitsFor(p Product) Limits {
	if p == ProductDoor {
		return Limits{MaxHeight: 84, MaxWidth: 36, DefaultHeight: 65, DefaultWidth: 30}
	}
	return Limits{MaxHeight: 84, MaxWidth: 72, DefaultHeight: 60, DefaultWidth: 48}
}

// Defaults returns the form values a calculator page starts with.
func Defaults(p Product) url.Values {
	l := LimitsFor(p)
	v := url.Values{}
	v.Set(FieldHeight, strconv.FormatFloat(l.DefaultHeight, 'f', -1, 64))
	v.Set(FieldWidth, strconv.FormatFloat(l.DefaultWidth, 'f', -1, 64))
	v.Set(FieldHeightSoot, "0")
	v.Set(FieldWidthSoot, "0")
	v.Set(FieldThickness, pricing.Thickness12.Slug())
	v.Set(FieldChaukhat, "1")
	if p == ProductDoor {
		v.Set(FieldAccessories, "1")
		v.Set(FieldDecorFilm, "1")
		v.Set(FieldBrownCoated, "1")
	} else {
		v.Set(FieldGlassType, pricing.GlassClear.String())
	}
	return v
}

// Door validates an aluminium door request.
func Door(v Values) (pricing.DoorInput, []string, error) {
	dims, warnings, err := dimensions(v, LimitsFor(ProductDoor))
	if err != nil {
		return pricing.DoorInput{}, nil, err
	}

	in := pricing.DoorInput{Dimensions: dims}
	if in.Thickness, err = thickness(v); err != nil {
		return pricing.DoorInput{}, nil, err
	}
	if in.Chaukhat, err = flag(v, FieldChaukhat); err != nil {
		return pricing.DoorInput{}, nil, err
	}
	if in.Accessories, err = flag(v, FieldAccessories); err != nil {
		return pricing.DoorInput{}, nil, err
	}
	if in.DecorFilm, err = flag(v, FieldDecorFilm); err != nil {
		return pricing.DoorInput{}, nil, err
	}
	if in.BrownCoated, err = flag(v, FieldBrownCoated); err != nil {
		return pricing.DoorInput{}, nil, err
	}
	return in, warnings, nil
}

// Window2Track validates a 2-track window request.
func Window2Track(v Values) (pricing.Window2TrackInput, []string, error) {
	opts, warnings, err := windowOptions(v, LimitsFor(ProductWindow2Track))
	if err != nil {
		return pricing.Window2TrackInput{}, nil, err
	}
	net, err := flag(v, FieldFullSSNet)
	if err != nil {
		return pricing.Window2TrackInput{}, nil, err
	}
	return pricing.Window2TrackInput{WindowOptions: opts, FullSSNet: net}, warnings, nil
}

// Window3Track validates a 3-track window request.
func Window3Track(v Values) (pricing.Window3TrackInput, []string, error) {
	opts, warnings, err := windowOptions(v, LimitsFor(ProductWindow3Track))
	if err != nil {
		return pricing.Window3TrackInput{}, nil, err
	}
	net, err := flag(v, FieldHalfSSNet)
	if err != nil {
		return pricing.Window3TrackInput{}, nil, err
	}
	return pricing.Window3TrackInput{WindowOptions: opts, HalfSSNet: net}, warnings, nil
}

func windowOptions(v Values, limits Limits) (pricing.WindowOptions, []string, error) {
	dims, warnings, err := dimensions(v, limits)
	if err != nil {
		return pricing.WindowOptions{}, nil, err
	}

	opts := pricing.WindowOptions{Dimensions: dims}
	if opts.Thickness, err = thickness(v); err != nil {
		return pricing.WindowOptions{}, nil, err
	}
	if opts.Glass, err = glass(v); err != nil {
		return pricing.WindowOptions{}, nil, err
	}
	if opts.Chaukhat, err = flag(v, FieldChaukhat); err != nil {
		return pricing.WindowOptions{}, nil, err
	}
	if opts.DecorFilm, err = flag(v, FieldDecorFilm); err != nil {
		return pricing.WindowOptions{}, nil, err
	}
	if opts.BrownCoated, err = flag(v, FieldBrownCoated); err != nil {
		return pricing.WindowOptions{}, nil, err
	}
	return opts, warnings, nil
}

func dimensions(v Values, limits Limits) (pricing.Dimensions, []string, error) {
	var (
		d        pricing.Dimensions
		warnings []string
		err      error
	)

	if d.HeightSoot, err = soot(v, FieldHeightSoot); err != nil {
		return d, nil, err
	}
	if d.WidthSoot, err = soot(v, FieldWidthSoot); err != nil {
		return d, nil, err
	}
	if d.Height, err = inches(v, FieldHeight, limits.DefaultHeight); err != nil {
		return d, nil, err
	}
	if d.Width, err = inches(v, FieldWidth, limits.DefaultWidth); err != nil {
		return d, nil, err
	}

	d.Height, warnings = clamp("height", d.Height, d.HeightSoot, limits.MaxHeight, warnings)
	d.Width, warnings = clamp("width", d.Width, d.WidthSoot, limits.MaxWidth, warnings)
	return d, warnings, nil
}

func clamp(name string, whole float64, soot int, limit float64, warnings []string) (float64, []string) {
	if whole > limit {
		return limit, append(warnings, fmt.Sprintf("Maximum %s is %g\". Value clamped to %g\".", name, limit, limit))
	}
	if total := whole + float64(soot)/pricing.SootDenominator; total > limit {
		warnings = append(warnings, fmt.Sprintf("Total %s (%g\" + %d/8) exceeds maximum of %g\".", name, whole, soot, limit))
	}
	return whole, warnings
}

func inches(v Values, field string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(v.Get(field))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, invalid(field, "must be a number")
	}
	if value <= 0 {
		return 0, invalid(field, "must be greater than 0")
	}
	return value, nil
}

func soot(v Values, field string) (int, error) {
	raw := strings.TrimSpace(v.Get(field))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(field, "must be a whole number of eighths")
	}
	if value < 0 || value >= pricing.SootDenominator {
		return 0, invalid(field, "must be between 0 and %d", pricing.SootDenominator-1)
	}
	return value, nil
}

func thickness(v Values) (pricing.Thickness, error) {
	raw := v.Get(FieldThickness)
	if strings.TrimSpace(raw) == "" {
		return pricing.Thickness12, nil
	}
	t, ok := pricing.ParseThickness(raw)
	if !ok {
		return 0, invalid(FieldThickness, "unknown thickness %q", raw)
	}
	return t, nil
}

func glass(v Values) (pricing.GlassType, error) {
	raw := v.Get(FieldGlassType)
	if strings.TrimSpace(raw) == "" {
		return pricing.GlassClear, nil
	}
	g, ok := pricing.ParseGlassType(raw)
	if !ok {
		return 0, invalid(FieldGlassType, "must be clear or reflective")
	}
	return g, nil
}

func flag(v Values, field string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v.Get(field))) {
	case "", "0", "false", "off", "no":
		return false, nil
	case "1", "true", "on", "yes":
		return true, nil
	}
	return false, invalid(field, "must be a boolean")
}

// Checked reports whether a boolean field is set; malformed values read as
// unchecked.
func Checked(v Values, field string) bool {
	b, _ := flag(v, field)
	return b
}
