package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"

	"github.com/hardwarehub/alucalc/internal/pricing"
	"github.com/hardwarehub/alucalc/internal/ratestore"
)

// Config contains the values required by startup seed.
type Config struct {
	// RatesFile is an optional YAML rate book imported after the defaults.
	RatesFile string
}

// ErrVersionChanged is returned when a rate book reuses a stored version name
// with different rates. Versions are immutable; edited rates need a new name.
var ErrVersionChanged = errors.New("stored rate version differs")

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Skipped int
	// Active is the version activated by the run.
	Active string
}

// Run executes the startup seed in an idempotent way. The compiled-in rate
// book is always stored; the configured rate file, or the defaults when none
// is configured, is activated.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	books := []pricing.RateBook{pricing.DefaultRateBook()}
	if cfg.RatesFile != "" {
		book, err := ratestore.ReadFile(cfg.RatesFile)
		if err != nil {
			return Stats{}, err
		}
		books = append(books, book)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	for _, book := range books {
		if err := ensureRateBook(ctx, tx, book, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	active := books[len(books)-1].Version
	if err := ratestore.Activate(ctx, tx, active); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	stats.Active = active

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureRateBook(ctx context.Context, tx *sql.Tx, book pricing.RateBook, stats *Stats) error {
	exists, err := ratestore.Exists(ctx, tx, book.Version)
	if err != nil {
		return err
	}
	if exists {
		stored, err := ratestore.LoadVersion(ctx, tx, book.Version)
		if err != nil {
			return err
		}
		if !reflect.DeepEqual(stored, book) {
			return fmt.Errorf("seed rate book %q: %w", book.Version, ErrVersionChanged)
		}
		stats.Skipped++
		return nil
	}

	if err := ratestore.Insert(ctx, tx, book); err != nil {
		return fmt.Errorf("seed rate book %q: %w", book.Version, err)
	}
	stats.Inserts++
	return nil
}
