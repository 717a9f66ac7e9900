// Package catalog decodes the static checklist catalog from TOML.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/farah/internal/model"
)

//go:embed wedding.toml
var defaultCatalog []byte

// file mirrors the TOML layout; prices stay strings until they reach the
// model so "1000ج" and "1000" are both accepted.
type file struct {
	Title    string        `toml:"title"`
	Tagline  string        `toml:"tagline"`
	Sections []sectionFile `toml:"sections"`
	Timeline []stepFile    `toml:"timeline"`
}

type sectionFile struct {
	Name     string     `toml:"name"`
	Title    string     `toml:"title"`
	Subtitle string     `toml:"subtitle"`
	Budgeted bool       `toml:"budgeted"`
	Items    []itemFile `toml:"items"`
}

type itemFile struct {
	Text  string `toml:"text"`
	Icon  string `toml:"icon"`
	Price string `toml:"price"`
}

type stepFile struct {
	Time        string `toml:"time"`
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Icon        string `toml:"icon"`
}

// Default returns the built-in wedding catalog.
func Default() (model.Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a catalog from a TOML file.
func LoadFile(path string) (model.Catalog, error) {
	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return model.Catalog{}, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	return f.build()
}

// Parse decodes a catalog from TOML bytes.
func Parse(data []byte) (model.Catalog, error) {
	var f file
	if _, err := toml.Decode(string(data), &f); err != nil {
		return model.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return f.build()
}

func (f file) build() (model.Catalog, error) {
	if len(f.Sections) == 0 {
		return model.Catalog{}, errors.New("catalog has no sections")
	}
	cat := model.Catalog{Title: f.Title, Tagline: f.Tagline}
	seen := make(map[string]bool, len(f.Sections))
	budgeted := ""
	for i, s := range f.Sections {
		if s.Name == "" {
			return model.Catalog{}, fmt.Errorf("section %d: empty name", i+1)
		}
		if seen[s.Name] {
			return model.Catalog{}, fmt.Errorf("section %q: duplicate name", s.Name)
		}
		seen[s.Name] = true
		if s.Budgeted {
			if budgeted != "" {
				return model.Catalog{}, fmt.Errorf("section %q: %q is already the budgeted section", s.Name, budgeted)
			}
			budgeted = s.Name
		}

		sec := model.Section{
			Name:     s.Name,
			Title:    s.Title,
			Subtitle: s.Subtitle,
			Budgeted: s.Budgeted,
			Items:    make([]model.Item, 0, len(s.Items)),
		}
		if sec.Title == "" {
			sec.Title = s.Name
		}
		for _, it := range s.Items {
			item := model.Item{Text: it.Text, Icon: it.Icon}
			if it.Price != "" {
				item.Price = model.ParsePrice(it.Price)
			}
			sec.Items = append(sec.Items, item)
		}
		cat.Sections = append(cat.Sections, sec)
	}
	for _, st := range f.Timeline {
		cat.Timeline = append(cat.Timeline, model.TimelineStep(st))
	}
	return cat, nil
}
