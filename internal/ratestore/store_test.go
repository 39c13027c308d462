package ratestore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hardwarehub/alucalc/internal/db"
	"github.com/hardwarehub/alucalc/internal/migrations"
	"github.com/hardwarehub/alucalc/internal/pricing"
)

func newStoreTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "rates.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	if _, err := migrations.Up(ctx, database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestLoadActive_EmptyStore(t *testing.T) {
	database := newStoreTestDB(t)

	if _, err := LoadActive(context.Background(), database); !errors.Is(err, ErrNoRates) {
		t.Fatalf("expected ErrNoRates, got %v", err)
	}
}

func TestInsertAndLoadActive_RoundTrip(t *testing.T) {
	database := newStoreTestDB(t)
	ctx := context.Background()

	book := pricing.DefaultRateBook()
	if err := Insert(ctx, database, book); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := LoadActive(ctx, database)
	if err != nil {
		t.Fatalf("LoadActive: %v", err)
	}
	if !reflect.DeepEqual(got, book) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, book)
	}
}

func TestLoadActive_NewestVersionWins(t *testing.T) {
	database := newStoreTestDB(t)
	ctx := context.Background()

	if err := Insert(ctx, database, pricing.DefaultRateBook()); err != nil {
		t.Fatalf("Insert default: %v", err)
	}
	custom, err := ReadFile("testdata/rates.yaml")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if err := Insert(ctx, database, custom); err != nil {
		t.Fatalf("Insert custom: %v", err)
	}

	active, err := LoadActive(ctx, database)
	if err != nil {
		t.Fatalf("LoadActive: %v", err)
	}
	if active.Version != "2025-monsoon" {
		t.Fatalf("active version = %q", active.Version)
	}
	if active.Door[pricing.Thickness16].Door != 185 {
		t.Fatalf("unexpected door rate: %+v", active.Door)
	}

	versions, err := Versions(ctx, database)
	if err != nil {
		t.Fatalf("Versions: %v", err)
	}
	if !reflect.DeepEqual(versions, []string{"2025-monsoon", pricing.DefaultVersion}) {
		t.Fatalf("versions = %v", versions)
	}
}

func TestInsert_DuplicateVersionFails(t *testing.T) {
	database := newStoreTestDB(t)
	ctx := context.Background()

	if err := Insert(ctx, database, pricing.DefaultRateBook()); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := Insert(ctx, database, pricing.DefaultRateBook()); err == nil {
		t.Fatalf("expected duplicate version error")
	}

	exists, err := Exists(ctx, database, pricing.DefaultVersion)
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v", exists, err)
	}
}

func TestInsert_RejectsInvalidBook(t *testing.T) {
	database := newStoreTestDB(t)

	book := pricing.DefaultRateBook()
	book.Window2Track.Bands = nil
	if err := Insert(context.Background(), database, book); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestActivate_OlderVersionBecomesActive(t *testing.T) {
	database := newStoreTestDB(t)
	ctx := context.Background()

	custom, err := ReadFile("testdata/rates.yaml")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, book := range []pricing.RateBook{pricing.DefaultRateBook(), custom} {
		if err := Insert(ctx, database, book); err != nil {
			t.Fatalf("Insert %s: %v", book.Version, err)
		}
	}

	if err := Activate(ctx, database, pricing.DefaultVersion); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	active, err := LoadActive(ctx, database)
	if err != nil {
		t.Fatalf("LoadActive: %v", err)
	}
	if !reflect.DeepEqual(active, pricing.DefaultRateBook()) {
		t.Fatalf("expected default rate book active, got %q", active.Version)
	}

	// Versions stays in insertion order.
	versions, err := Versions(ctx, database)
	if err != nil {
		t.Fatalf("Versions: %v", err)
	}
	if versions[0] != "2025-monsoon" {
		t.Fatalf("versions = %v", versions)
	}
}

func TestActivate_UnknownVersion(t *testing.T) {
	database := newStoreTestDB(t)

	err := Activate(context.Background(), database, "1999-archive")
	if !errors.Is(err, ErrNoRates) {
		t.Fatalf("expected ErrNoRates, got %v", err)
	}
}

func TestLoadVersion(t *testing.T) {
	database := newStoreTestDB(t)
	ctx := context.Background()

	custom, err := ReadFile("testdata/rates.yaml")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, book := range []pricing.RateBook{pricing.DefaultRateBook(), custom} {
		if err := Insert(ctx, database, book); err != nil {
			t.Fatalf("Insert %s: %v", book.Version, err)
		}
	}

	got, err := LoadVersion(ctx, database, pricing.DefaultVersion)
	if err != nil {
		t.Fatalf("LoadVersion: %v", err)
	}
	if !reflect.DeepEqual(got, pricing.DefaultRateBook()) {
		t.Fatalf("LoadVersion mismatch: %+v", got)
	}

	if _, err := LoadVersion(ctx, database, "missing"); !errors.Is(err, ErrNoRates) {
		t.Fatalf("expected ErrNoRates, got %v", err)
	}
}
