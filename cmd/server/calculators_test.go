package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleCalculatorDefaultsPriceDoor(t *testing.T) {
	srv := newTestServer(t)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/calculators/aluminium-door", nil), "product", "aluminium-door")
	rr := httptest.NewRecorder()
	srv.handleCalculator(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	for _, expected := range []string{
		"65&#39;&#39; X  30&#39;&#39; Aluminium Door",
		"₹3008",
		"₹4226",
		"print.pdf?",
		"Thickness comparison",
		"<td>@180</td>",
		"<td>@150</td>",
	} {
		if !strings.Contains(body, expected) {
			t.Fatalf("expected body to contain %q, got: %s", expected, body)
		}
	}
}

func TestHandleCalculatorWindowQuery(t *testing.T) {
	srv := newTestServer(t)

	target := "/calculators/window-2track?height=60&width=48&thickness=1.2mm&glassType=clear&chaukhat=1"
	req := withURLParam(httptest.NewRequest(http.MethodGet, target, nil), "product", "window-2track")
	rr := httptest.NewRecorder()
	srv.handleCalculator(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "₹4650") {
		t.Fatalf("expected grand total ₹4650, got: %s", body)
	}
	if !strings.Contains(body, "Full SS Net") || strings.Contains(body, "Accessories") {
		t.Fatalf("expected 2-track options only, got: %s", body)
	}
}

func TestHandleCalculatorRejectsInvalidInput(t *testing.T) {
	srv := newTestServer(t)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/calculators/window-3track?height=abc", nil), "product", "window-3track")
	rr := httptest.NewRecorder()
	srv.handleCalculator(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "height: must be a number") {
		t.Fatalf("expected validation message, got: %s", rr.Body.String())
	}
}

func TestHandleCalculatorUnknownProduct(t *testing.T) {
	srv := newTestServer(t)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/calculators/skylight", nil), "product", "skylight")
	rr := httptest.NewRecorder()
	srv.handleCalculator(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleCalculatorPDF(t *testing.T) {
	srv := newTestServer(t)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/calculators/aluminium-door/print.pdf?height=70&width=32&heightSoot=3", nil), "product", "aluminium-door")
	rr := httptest.NewRecorder()
	srv.handleCalculatorPDF(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", got)
	}
	if !strings.Contains(rr.Header().Get("Content-Disposition"), "quote-") {
		t.Fatalf("expected quote filename, got %q", rr.Header().Get("Content-Disposition"))
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF body, got %q", rr.Body.String()[:min(20, rr.Body.Len())])
	}
}

func TestHandleCalculatorPDFRejectsInvalidInput(t *testing.T) {
	srv := newTestServer(t)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/calculators/aluminium-door/print.pdf?widthSoot=9", nil), "product", "aluminium-door")
	rr := httptest.NewRecorder()
	srv.handleCalculatorPDF(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestSootOptions(t *testing.T) {
	options := sootOptions("")
	if len(options) != 8 {
		t.Fatalf("expected 8 options, got %d", len(options))
	}
	if !options[0].Selected || options[0].Label != "0" {
		t.Fatalf("expected zero selected by default, got %+v", options[0])
	}

	options = sootOptions("3")
	if options[0].Selected || !options[3].Selected || options[3].Label != "3/8" {
		t.Fatalf("unexpected selection: %+v", options)
	}
}
