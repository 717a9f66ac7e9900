package model

import (
	"strconv"
	"strings"
)

// Item is a single checklist entry. Items come from the static catalog
// and never change at runtime.
type Item struct {
	Text  string
	Icon  string
	Price Price
}

// Price is an optional amount in the catalog's single currency unit.
// Raw keeps the text as written ("1000ج", "4000"); Valid reports whether
// it parsed to a non-negative amount.
type Price struct {
	Raw    string
	Amount int64
	Valid  bool
}

// Present reports whether the catalog gave the item a price at all.
func (p Price) Present() bool { return p.Raw != "" }

// ParsePrice strips every non-digit from raw and parses what is left.
// Empty input, an empty remainder, overflow, or a minus sign before the
// first digit all yield an invalid price.
func ParsePrice(raw string) Price {
	p := Price{Raw: raw}
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '-' && b.Len() == 0 {
			return p
		}
	}
	if b.Len() == 0 {
		return p
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return p
	}
	p.Amount = n
	p.Valid = true
	return p
}
