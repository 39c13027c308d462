// Package ratestore persists versioned rate books in SQLite. A rate book is
// written once and never updated. The most recently activated version is the
// active one; inserting a version activates it.
package ratestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hardwarehub/alucalc/internal/pricing"
)

const (
	productWindow2Track = "window-2track"
	productWindow3Track = "window-3track"
)

// ErrNoRates is returned when the store holds no rate book.
var ErrNoRates = errors.New("no rate book stored")

// Queryer is satisfied by *sql.DB and *sql.Tx.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Exists reports whether version has been stored.
func Exists(ctx context.Context, q Queryer, version string) (bool, error) {
	var exists bool
	if err := q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM rate_versions WHERE version = ?)`, version).Scan(&exists); err != nil {
		return false, fmt.Errorf("check rate version existence: %w", err)
	}
	return exists, nil
}

// Insert stores book as a new version. Callers wanting atomicity pass a *sql.Tx.
func Insert(ctx context.Context, q Queryer, book pricing.RateBook) error {
	if err := book.Validate(); err != nil {
		return fmt.Errorf("invalid rate book %q: %w", book.Version, err)
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO rate_versions (version, activation)
		VALUES (?, (SELECT COALESCE(MAX(activation), 0) + 1 FROM rate_versions))
	`, book.Version)
	if err != nil {
		return fmt.Errorf("insert rate version: %w", err)
	}
	versionID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read rate version id: %w", err)
	}

	for _, t := range pricing.Thicknesses {
		r := book.Door[t]
		if _, err := q.ExecContext(ctx, `
			INSERT INTO door_rates (version_id, thickness, door, chaukhat, accessories, decor_film, brown_coated)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, versionID, t.Slug(), r.Door, r.Chaukhat, r.Accessories, r.DecorFilm, r.BrownCoated); err != nil {
			return fmt.Errorf("insert door rates %s: %w", t.Slug(), err)
		}
	}

	if err := insertWindow(ctx, q, versionID, productWindow2Track, book.Window2Track); err != nil {
		return err
	}
	return insertWindow(ctx, q, versionID, productWindow3Track, book.Window3Track)
}

func insertWindow(ctx context.Context, q Queryer, versionID int64, product string, table pricing.WindowTable) error {
	for _, t := range pricing.Thicknesses {
		r := table.Thickness[t]
		if _, err := q.ExecContext(ctx, `
			INSERT INTO window_thickness_rates (version_id, product, thickness, clear, reflective, chaukhat)
			VALUES (?, ?, ?, ?, ?, ?)
		`, versionID, product, t.Slug(), r.Clear, r.Reflective, r.Chaukhat); err != nil {
			return fmt.Errorf("insert %s thickness rates %s: %w", product, t.Slug(), err)
		}
	}

	if _, err := q.ExecContext(ctx, `
		INSERT INTO window_addon_rates (version_id, product, decor_film, net, brown_coated)
		VALUES (?, ?, ?, ?, ?)
	`, versionID, product, table.DecorFilm, table.Net, table.BrownCoated); err != nil {
		return fmt.Errorf("insert %s add-on rates: %w", product, err)
	}

	for _, band := range table.Bands {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO area_bands (version_id, product, area, rate)
			VALUES (?, ?, ?, ?)
		`, versionID, product, band.Area, band.Rate); err != nil {
			return fmt.Errorf("insert %s area band: %w", product, err)
		}
	}
	return nil
}

// Activate makes a stored version the active one.
func Activate(ctx context.Context, q Queryer, version string) error {
	res, err := q.ExecContext(ctx, `
		UPDATE rate_versions
		SET activation = (SELECT MAX(activation) + 1 FROM rate_versions)
		WHERE version = ?
	`, version)
	if err != nil {
		return fmt.Errorf("activate rate version %q: %w", version, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("activate rate version %q: %w", version, err)
	}
	if n == 0 {
		return fmt.Errorf("activate rate version %q: %w", version, ErrNoRates)
	}
	return nil
}

// LoadActive reads the active rate book.
func LoadActive(ctx context.Context, q Queryer) (pricing.RateBook, error) {
	var (
		versionID int64
		version   string
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, version
		FROM rate_versions
		ORDER BY activation DESC, id DESC
		LIMIT 1
	`).Scan(&versionID, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.RateBook{}, ErrNoRates
	}
	if err != nil {
		return pricing.RateBook{}, fmt.Errorf("query active rate version: %w", err)
	}
	return loadBook(ctx, q, versionID, version)
}

// LoadVersion reads one stored rate book by version name.
func LoadVersion(ctx context.Context, q Queryer, version string) (pricing.RateBook, error) {
	var versionID int64
	err := q.QueryRowContext(ctx, `SELECT id FROM rate_versions WHERE version = ?`, version).Scan(&versionID)
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.RateBook{}, fmt.Errorf("rate version %q: %w", version, ErrNoRates)
	}
	if err != nil {
		return pricing.RateBook{}, fmt.Errorf("query rate version %q: %w", version, err)
	}
	return loadBook(ctx, q, versionID, version)
}

func loadBook(ctx context.Context, q Queryer, versionID int64, version string) (pricing.RateBook, error) {
	book := pricing.RateBook{Version: version}
	var err error
	if book.Door, err = loadDoor(ctx, q, versionID); err != nil {
		return pricing.RateBook{}, err
	}
	if book.Window2Track, err = loadWindow(ctx, q, versionID, productWindow2Track); err != nil {
		return pricing.RateBook{}, err
	}
	if book.Window3Track, err = loadWindow(ctx, q, versionID, productWindow3Track); err != nil {
		return pricing.RateBook{}, err
	}

	if err := book.Validate(); err != nil {
		return pricing.RateBook{}, fmt.Errorf("stored rate book %q: %w", book.Version, err)
	}
	return book, nil
}

func loadDoor(ctx context.Context, q Queryer, versionID int64) (pricing.DoorTable, error) {
	var table pricing.DoorTable
	rows, err := q.QueryContext(ctx, `
		SELECT thickness, door, chaukhat, accessories, decor_film, brown_coated
		FROM door_rates
		WHERE version_id = ?
	`, versionID)
	if err != nil {
		return table, fmt.Errorf("query door rates: %w", err)
	}
	defer rows.Close()

	seen := 0
	for rows.Next() {
		var (
			slug string
			r    pricing.DoorRates
		)
		if err := rows.Scan(&slug, &r.Door, &r.Chaukhat, &r.Accessories, &r.DecorFilm, &r.BrownCoated); err != nil {
			return table, fmt.Errorf("scan door rates: %w", err)
		}
		t, ok := pricing.ParseThickness(slug)
		if !ok {
			return table, fmt.Errorf("door rates: unknown thickness %q", slug)
		}
		table[t] = r
		seen++
	}
	if err := rows.Err(); err != nil {
		return table, fmt.Errorf("iterate door rates: %w", err)
	}
	if seen != int(pricing.ThicknessCount) {
		return table, fmt.Errorf("door rates: expected %d thicknesses, got %d", pricing.ThicknessCount, seen)
	}
	return table, nil
}

func loadWindow(ctx context.Context, q Queryer, versionID int64, product string) (pricing.WindowTable, error) {
	var table pricing.WindowTable

	err := q.QueryRowContext(ctx, `
		SELECT decor_film, net, brown_coated
		FROM window_addon_rates
		WHERE version_id = ? AND product = ?
	`, versionID, product).Scan(&table.DecorFilm, &table.Net, &table.BrownCoated)
	if err != nil {
		return table, fmt.Errorf("query %s add-on rates: %w", product, err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT thickness, clear, reflective, chaukhat
		FROM window_thickness_rates
		WHERE version_id = ? AND product = ?
	`, versionID, product)
	if err != nil {
		return table, fmt.Errorf("query %s thickness rates: %w", product, err)
	}
	seen := 0
	for rows.Next() {
		var (
			slug string
			r    pricing.WindowRates
		)
		if err := rows.Scan(&slug, &r.Clear, &r.Reflective, &r.Chaukhat); err != nil {
			rows.Close()
			return table, fmt.Errorf("scan %s thickness rates: %w", product, err)
		}
		t, ok := pricing.ParseThickness(slug)
		if !ok {
			rows.Close()
			return table, fmt.Errorf("%s rates: unknown thickness %q", product, slug)
		}
		table.Thickness[t] = r
		seen++
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return table, fmt.Errorf("iterate %s thickness rates: %w", product, err)
	}
	if seen != int(pricing.ThicknessCount) {
		return table, fmt.Errorf("%s rates: expected %d thicknesses, got %d", product, pricing.ThicknessCount, seen)
	}

	bandRows, err := q.QueryContext(ctx, `
		SELECT area, rate
		FROM area_bands
		WHERE version_id = ? AND product = ?
		ORDER BY id
	`, versionID, product)
	if err != nil {
		return table, fmt.Errorf("query %s area bands: %w", product, err)
	}
	defer bandRows.Close()

	for bandRows.Next() {
		var band pricing.Band
		if err := bandRows.Scan(&band.Area, &band.Rate); err != nil {
			return table, fmt.Errorf("scan %s area band: %w", product, err)
		}
		table.Bands = append(table.Bands, band)
	}
	if err := bandRows.Err(); err != nil {
		return table, fmt.Errorf("iterate %s area bands: %w", product, err)
	}
	return table, nil
}

// Versions lists stored rate versions, newest first.
func Versions(ctx context.Context, q Queryer) ([]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT version FROM rate_versions ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query rate versions: %w", err)
	}
	defer rows.Close()

	versions := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan rate version: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rate versions: %w", err)
	}
	return versions, nil
}
