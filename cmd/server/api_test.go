package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/hardwarehub/alucalc/internal/pricing"
)

func postQuote(t *testing.T, srv *server, product, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/quotes/"+product, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "product", product)
	rr := httptest.NewRecorder()
	srv.handleQuoteAPI(rr, req)
	return rr
}

func TestHandleQuoteAPIDoor(t *testing.T) {
	srv := newTestServer(t)

	rr := postQuote(t, srv, "aluminium-door", `{
		"height": 65, "width": 30, "thickness": "1.2 MM",
		"chaukhat": true, "accessories": true, "decorFilm": true, "brownCoated": true
	}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var got struct {
		ApprovedName string  `json:"approvedName"`
		Area         float64 `json:"area"`
		ChaukhatRft  float64 `json:"chaukhatRft"`
		Total        float64 `json:"total"`
		RatesVersion string  `json:"ratesVersion"`
		Totals       struct {
			Base      int64  `json:"base"`
			Grand     int64  `json:"grand"`
			GrandText string `json:"grandText"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if got.ApprovedName != "65'' X  30'' Aluminium Door" {
		t.Fatalf("unexpected approved name %q", got.ApprovedName)
	}
	if got.Area != 13.54 || got.ChaukhatRft != 14.5 {
		t.Fatalf("unexpected measures: area=%.2f rft=%.2f", got.Area, got.ChaukhatRft)
	}
	if got.Totals.Base != 3008 || got.Totals.Grand != 4226 || got.Totals.GrandText != "₹4226" {
		t.Fatalf("unexpected totals: %+v", got.Totals)
	}
	if got.RatesVersion != pricing.DefaultVersion {
		t.Fatalf("expected rates version %q, got %q", pricing.DefaultVersion, got.RatesVersion)
	}
}

func TestHandleQuoteAPIWindowAcceptsStrings(t *testing.T) {
	srv := newTestServer(t)

	rr := postQuote(t, srv, "window-2track", `{"height":"60","width":"48","glassType":"clear","chaukhat":"on"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"grand":4650`) {
		t.Fatalf("expected grand total 4650, got: %s", rr.Body.String())
	}
}

func TestHandleQuoteAPIValidationError(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "negative height", body: `{"height": -5}`, field: "height"},
		{name: "bad fraction", body: `{"widthSoot": 8}`, field: "widthSoot"},
		{name: "unknown thickness", body: `{"thickness": "2.0mm"}`, field: "thickness"},
		{name: "bad glass", body: `{"glassType": "frosted"}`, field: "glassType"},
		{name: "nested flag", body: `{"chaukhat": {"on": true}}`, field: "chaukhat"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := postQuote(t, srv, "window-3track", tc.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
			}
			var got apiError
			if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if got.Field != tc.field || got.Error == "" {
				t.Fatalf("expected error on %q, got %+v", tc.field, got)
			}
		})
	}
}

func TestHandleQuoteAPIRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	rr := postQuote(t, srv, "aluminium-door", `{"height":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleQuoteAPIUnknownProduct(t *testing.T) {
	srv := newTestServer(t)

	rr := postQuote(t, srv, "skylight", `{}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleQuoteBatch(t *testing.T) {
	srv := newTestServer(t)

	f := excelize.NewFile()
	rows := [][]any{
		{"product", "height", "width", "thickness", "glass", "chaukhat", "accessories", "decor_film", "brown_coated"},
		{"aluminium-door", 65, 30, "1.2mm", "", "1", "1", "1", "1"},
		{"window-2track", 60, 48, "1.2mm", "clear", "1", "", "", ""},
		{"skylight", 10, 10, "", "", "", "", "", ""},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	var workbook bytes.Buffer
	if err := f.Write(&workbook); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	_ = f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "quotes.xlsx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(workbook.Bytes()); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/quotes/batch", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	srv.handleQuoteBatch(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	out, err := excelize.OpenReader(rr.Body)
	if err != nil {
		t.Fatalf("open priced workbook: %v", err)
	}
	defer out.Close()

	for cell, expected := range map[string]string{
		"K2": "4226",
		"K3": "4650",
		"K4": "",
	} {
		got, err := out.GetCellValue("Quotes", cell)
		if err != nil {
			t.Fatalf("read %s: %v", cell, err)
		}
		if got != expected {
			t.Fatalf("expected %s=%q, got %q", cell, expected, got)
		}
	}
	if msg, _ := out.GetCellValue("Quotes", "L4"); msg == "" {
		t.Fatalf("expected an error for the unknown product row")
	}
}

func TestHandleQuoteBatchRequiresFile(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/quotes/batch", strings.NewReader(""))
	rr := httptest.NewRecorder()
	srv.handleQuoteBatch(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleRates(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.handleRates(rr, httptest.NewRequest(http.MethodGet, "/api/rates", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"1.6mm":{"door":180,`) {
		t.Fatalf("expected door rates keyed by thickness, got: %s", rr.Body.String())
	}
	var got pricing.RateBook
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode rate book: %v", err)
	}
	if got.Version != pricing.DefaultVersion || got.Door[pricing.Thickness16].Door != 180 {
		t.Fatalf("unexpected rate book: %+v", got)
	}
}

func TestHandleRateVersions(t *testing.T) {
	srv := newTestServer(t)
	srv.db = newSeededTestDB(t)

	rr := httptest.NewRecorder()
	srv.handleRateVersions(rr, httptest.NewRequest(http.MethodGet, "/api/rates/versions", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var got struct {
		Active   string   `json:"active"`
		Versions []string `json:"versions"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Active != pricing.DefaultVersion || len(got.Versions) != 1 || got.Versions[0] != pricing.DefaultVersion {
		t.Fatalf("unexpected versions: %+v", got)
	}
}

func TestHandleCollections(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.handleCollections(rr, httptest.NewRequest(http.MethodGet, "/api/collections", nil))
	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != `["door-locks"]` {
		t.Fatalf("unexpected collections response %d: %s", rr.Code, rr.Body.String())
	}

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/collections/door-locks", nil), "slug", "door-locks")
	rr = httptest.NewRecorder()
	srv.handleCollection(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"slug":"mortise-lock"`) {
		t.Fatalf("expected collection body, got: %s", rr.Body.String())
	}
}

func TestHandleCollectionNotFound(t *testing.T) {
	srv := newTestServer(t)

	for _, slug := range []string{"windows", "../secrets"} {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/collections/x", nil), "slug", slug)
		rr := httptest.NewRecorder()
		srv.handleCollection(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Fatalf("slug %q: expected status 404, got %d", slug, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Collection not found") {
			t.Fatalf("slug %q: unexpected body %s", slug, rr.Body.String())
		}
	}
}
