// Package catalog serves the static product collections stored as one JSON
// file per collection.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ErrNotFound is returned for unknown or malformed collection slugs.
var ErrNotFound = errors.New("collection not found")

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Store reads collections from Dir/{slug}.json.
type Store struct {
	Dir string
}

// Collection returns the raw JSON of one collection.
func (s Store) Collection(slug string) (json.RawMessage, error) {
	if !slugPattern.MatchString(slug) {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, slug+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", slug, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("collection %s: invalid JSON", slug)
	}
	return json.RawMessage(data), nil
}

// Collections lists the slugs of every stored collection, sorted.
func (s Store) Collections() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	slugs := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		slug := strings.TrimSuffix(name, ".json")
		if slugPattern.MatchString(slug) {
			slugs = append(slugs, slug)
		}
	}
	sort.Strings(slugs)
	return slugs, nil
}
