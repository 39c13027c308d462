package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hardwarehub/alucalc/internal/catalog"
	"github.com/hardwarehub/alucalc/internal/quotedoc"
	"github.com/hardwarehub/alucalc/internal/ratestore"
	"github.com/hardwarehub/alucalc/internal/validate"
)

const (
	maxQuoteBody = 1 << 20
	maxBatchBody = 16 << 20
)

type apiError struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json response", "error", err)
	}
}

func writeValidationError(w http.ResponseWriter, err *validate.ValidationError) {
	writeJSON(w, http.StatusBadRequest, apiError{Error: err.Message, Field: err.Field})
}

func (s *server) handleQuoteAPI(w http.ResponseWriter, r *http.Request) {
	product, err := validate.ParseProduct(chi.URLParam(r, "product"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, apiError{Error: "unknown product"})
		return
	}

	var body validate.JSONValues
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQuoteBody)).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body"})
		return
	}

	quote, err := quotedoc.Build(s.rates, product, body)
	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		writeValidationError(w, verr)
		return
	}
	if err != nil {
		slog.Error("price quote", "product", product, "error", err)
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to price quote"})
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

func (s *server) handleQuoteBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBatchBody)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "file required"})
		return
	}
	defer file.Close()

	rows, err := quotedoc.ReadBatch(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}

	results := quotedoc.PriceBatch(s.rates, rows)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="quotes.xlsx"`)
	if err := quotedoc.WriteBatch(w, results); err != nil {
		slog.Error("write batch workbook", "rows", len(rows), "error", err)
		http.Error(w, "failed to write workbook", http.StatusInternalServerError)
	}
}

func (s *server) handleRates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.rates)
}

func (s *server) handleRateVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := ratestore.Versions(r.Context(), s.db)
	if err != nil {
		slog.Error("list rate versions", "error", err)
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to list rate versions"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"active":   s.rates.Version,
		"versions": versions,
	})
}

func (s *server) handleCollections(w http.ResponseWriter, r *http.Request) {
	slugs, err := s.catalog.Collections()
	if err != nil {
		slog.Error("list collections", "error", err)
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, slugs)
}

func (s *server) handleCollection(w http.ResponseWriter, r *http.Request) {
	data, err := s.catalog.Collection(chi.URLParam(r, "slug"))
	if errors.Is(err, catalog.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, apiError{Error: "Collection not found"})
		return
	}
	if err != nil {
		slog.Error("read collection", "error", err)
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, data)
}
