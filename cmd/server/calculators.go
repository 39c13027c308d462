package main

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hardwarehub/alucalc/internal/pricing"
	"github.com/hardwarehub/alucalc/internal/quotedoc"
	"github.com/hardwarehub/alucalc/internal/validate"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

type productLink struct {
	Slug  validate.Product
	Title string
}

type homeViewData struct {
	baseViewData
	Products     []productLink
	Collections  []string
	RatesVersion string
}

type calculatorViewData struct {
	baseViewData
	Product      validate.Product
	Title        string
	IsDoor       bool
	NetField     string
	NetLabel     string
	Height       string
	Width        string
	HeightSoots  []option
	WidthSoots   []option
	Thicknesses  []option
	Glass        string
	Checked      map[string]bool
	MaxHeight    float64
	MaxWidth     float64
	Quote        *quotedoc.Quote
	PrintURL     string
	RatesVersion string
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	collections, err := s.catalog.Collections()
	if err != nil {
		slog.Warn("list collections", "error", err)
	}

	products := make([]productLink, 0, len(validate.Products))
	for _, p := range validate.Products {
		products = append(products, productLink{Slug: p, Title: p.Title()})
	}

	s.renderTemplate(w, http.StatusOK, "home.html", homeViewData{
		Products:     products,
		Collections:  collections,
		RatesVersion: s.rates.Version,
	})
}

// calculatorForm returns the submitted query, or the product defaults on a
// first visit.
func calculatorForm(p validate.Product, r *http.Request) url.Values {
	form := r.URL.Query()
	if len(form) == 0 {
		return validate.Defaults(p)
	}
	return form
}

func (s *server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	product, err := validate.ParseProduct(chi.URLParam(r, "product"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	form := calculatorForm(product, r)
	view := newCalculatorView(product, form)
	view.RatesVersion = s.rates.Version

	status := http.StatusOK
	quote, err := quotedoc.Build(s.rates, product, form)
	var verr *validate.ValidationError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		view.ErrorMessage = verr.Error()
	case err != nil:
		http.Error(w, "failed to price quote", http.StatusInternalServerError)
		return
	default:
		view.Quote = &quote
		view.PrintURL = "/calculators/" + string(product) + "/print.pdf?" + form.Encode()
	}

	s.renderTemplate(w, status, "calculator.html", view)
}

func (s *server) handleCalculatorPDF(w http.ResponseWriter, r *http.Request) {
	product, err := validate.ParseProduct(chi.URLParam(r, "product"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	quote, err := quotedoc.Build(s.rates, product, calculatorForm(product, r))
	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		http.Error(w, verr.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "failed to price quote", http.StatusInternalServerError)
		return
	}
	quote.Reference = quotedoc.NewReference()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="quote-`+quote.Reference+`.pdf"`)
	if err := quotedoc.PDF(w, quote, s.now()); err != nil {
		slog.Error("render quote pdf", "product", product, "error", err)
		http.Error(w, "failed to render quote", http.StatusInternalServerError)
	}
}

func newCalculatorView(p validate.Product, form url.Values) calculatorViewData {
	limits := validate.LimitsFor(p)
	view := calculatorViewData{
		Product:   p,
		Title:     p.Title(),
		IsDoor:    p == validate.ProductDoor,
		Height:    form.Get(validate.FieldHeight),
		Width:     form.Get(validate.FieldWidth),
		Glass:     form.Get(validate.FieldGlassType),
		Checked:   map[string]bool{},
		MaxHeight: limits.MaxHeight,
		MaxWidth:  limits.MaxWidth,
	}
	view.HeightSoots = sootOptions(form.Get(validate.FieldHeightSoot))
	view.WidthSoots = sootOptions(form.Get(validate.FieldWidthSoot))

	switch p {
	case validate.ProductWindow2Track:
		view.NetField, view.NetLabel = validate.FieldFullSSNet, "Full SS Net"
	case validate.ProductWindow3Track:
		view.NetField, view.NetLabel = validate.FieldHalfSSNet, "Half SS Net"
	}

	selected, ok := pricing.ParseThickness(form.Get(validate.FieldThickness))
	if !ok {
		selected = pricing.Thickness12
	}
	for _, t := range pricing.Thicknesses {
		label := t.Label()
		if p == validate.ProductWindow3Track {
			label = t.LowerLabel()
		}
		view.Thicknesses = append(view.Thicknesses, option{Value: t.Slug(), Label: label, Selected: t == selected})
	}

	for _, field := range []string{
		validate.FieldChaukhat,
		validate.FieldAccessories,
		validate.FieldDecorFilm,
		validate.FieldBrownCoated,
		validate.FieldFullSSNet,
		validate.FieldHalfSSNet,
	} {
		view.Checked[field] = validate.Checked(form, field)
	}
	return view
}

func sootOptions(current string) []option {
	options := make([]option, 0, pricing.SootDenominator)
	for i := 0; i < pricing.SootDenominator; i++ {
		value := strconv.Itoa(i)
		label := "0"
		if i > 0 {
			label = value + "/8"
		}
		options = append(options, option{Value: value, Label: label, Selected: value == current || (current == "" && i == 0)})
	}
	return options
}
