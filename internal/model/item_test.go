package model

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantValid bool
		want      int64
	}{
		{"currency suffix", "1000ج", true, 1000},
		{"plain number", "4000", true, 4000},
		{"grouped", "5,000 EGP", true, 5000},
		{"spaces", "  250 ", true, 250},
		{"empty", "", false, 0},
		{"letters only", "free", false, 0},
		{"negative", "-500", false, 0},
		{"negative with currency", "ج -500", false, 0},
		{"dash after digits", "100-200", true, 100200},
		{"overflow", "99999999999999999999999", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePrice(tt.raw)
			if p.Valid != tt.wantValid {
				t.Fatalf("ParsePrice(%q).Valid = %v, want %v", tt.raw, p.Valid, tt.wantValid)
			}
			if p.Amount != tt.want {
				t.Errorf("ParsePrice(%q).Amount = %d, want %d", tt.raw, p.Amount, tt.want)
			}
			if p.Raw != tt.raw {
				t.Errorf("Raw = %q, want %q", p.Raw, tt.raw)
			}
		})
	}
}

func TestPricePresent(t *testing.T) {
	if (Price{}).Present() {
		t.Error("zero Price should not be present")
	}
	if !ParsePrice("free").Present() {
		t.Error("unparseable price is still present")
	}
}

func TestCatalogLookup(t *testing.T) {
	c := Catalog{Sections: []Section{
		{Name: "ktb"},
		{Name: "farah", Budgeted: true},
	}}
	if _, ok := c.Section("missing"); ok {
		t.Error("Section(missing) found")
	}
	s, ok := c.Section("farah")
	if !ok || s.Name != "farah" {
		t.Errorf("Section(farah) = %+v, %v", s, ok)
	}
	b, ok := c.Budgeted()
	if !ok || b.Name != "farah" {
		t.Errorf("Budgeted() = %+v, %v", b, ok)
	}
	names := c.Names()
	if len(names) != 2 || names[0] != "ktb" || names[1] != "farah" {
		t.Errorf("Names() = %v", names)
	}
}
