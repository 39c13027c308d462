package ratestore

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hardwarehub/alucalc/internal/pricing"
)

type fileDoorRates struct {
	Door        float64 `yaml:"door"`
	Chaukhat    float64 `yaml:"chaukhat"`
	Accessories float64 `yaml:"accessories"`
	DecorFilm   float64 `yaml:"decor_film"`
	BrownCoated float64 `yaml:"brown_coated"`
}

type fileWindowRates struct {
	Clear      float64 `yaml:"clear"`
	Reflective float64 `yaml:"reflective"`
	Chaukhat   float64 `yaml:"chaukhat"`
}

type fileWindowTable struct {
	Thickness   map[string]fileWindowRates `yaml:"thickness"`
	Bands       []pricing.Band             `yaml:"bands"`
	DecorFilm   float64                    `yaml:"decor_film"`
	Net         float64                    `yaml:"net"`
	BrownCoated float64                    `yaml:"brown_coated"`
}

type rateFile struct {
	Version      string                   `yaml:"version"`
	Door         map[string]fileDoorRates `yaml:"door"`
	Window2Track fileWindowTable          `yaml:"window_2track"`
	Window3Track fileWindowTable          `yaml:"window_3track"`
}

// ReadFile parses a YAML rate file. Thickness keys accept slugs or labels and
// every thickness must be present.
func ReadFile(path string) (pricing.RateBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pricing.RateBook{}, fmt.Errorf("read rate file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML rate book.
func Parse(data []byte) (pricing.RateBook, error) {
	var f rateFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return pricing.RateBook{}, fmt.Errorf("decode rate file: %w", err)
	}

	book := pricing.RateBook{Version: f.Version}

	door, err := byThickness(f.Door, "door")
	if err != nil {
		return pricing.RateBook{}, err
	}
	for t, r := range door {
		book.Door[t] = pricing.DoorRates(r)
	}

	if book.Window2Track, err = f.Window2Track.table("window_2track"); err != nil {
		return pricing.RateBook{}, err
	}
	if book.Window3Track, err = f.Window3Track.table("window_3track"); err != nil {
		return pricing.RateBook{}, err
	}

	if err := book.Validate(); err != nil {
		return pricing.RateBook{}, fmt.Errorf("rate file %q: %w", f.Version, err)
	}
	return book, nil
}

func (w fileWindowTable) table(name string) (pricing.WindowTable, error) {
	rates, err := byThickness(w.Thickness, name)
	if err != nil {
		return pricing.WindowTable{}, err
	}
	table := pricing.WindowTable{
		Bands:       pricing.BandTable(w.Bands),
		DecorFilm:   w.DecorFilm,
		Net:         w.Net,
		BrownCoated: w.BrownCoated,
	}
	for t, r := range rates {
		table.Thickness[t] = pricing.WindowRates(r)
	}
	return table, nil
}

func byThickness[R any](in map[string]R, section string) ([pricing.ThicknessCount]R, error) {
	var out [pricing.ThicknessCount]R
	var seen [pricing.ThicknessCount]bool
	for key, r := range in {
		t, ok := pricing.ParseThickness(key)
		if !ok {
			return out, fmt.Errorf("%s: unknown thickness %q", section, key)
		}
		if seen[t] {
			return out, fmt.Errorf("%s: thickness %q listed twice", section, key)
		}
		out[t], seen[t] = r, true
	}
	for _, t := range pricing.Thicknesses {
		if !seen[t] {
			return out, fmt.Errorf("%s: missing thickness %s", section, t.Slug())
		}
	}
	return out, nil
}
