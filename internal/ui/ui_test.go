package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressBar(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	tests := []struct {
		pct, width int
		want       string
	}{
		{0, 10, "..........   0%"},
		{29, 10, "##........  29%"},
		{100, 10, "########## 100%"},
		{150, 10, "########## 100%"},
		{-3, 10, "..........   0%"},
		{50, 2, "##...  50%"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.pct, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%d, %d) = %q, want %q", tt.pct, tt.width, got, tt.want)
		}
	}
}

func TestSetTheme(t *testing.T) {
	defer SetTheme("classic")

	SetTheme("mono")
	if Current().BoxChecked != "[x]" {
		t.Errorf("mono BoxChecked = %q", Current().BoxChecked)
	}
	SetTheme("NEON")
	if Current().BoxChecked != "◼" {
		t.Errorf("neon BoxChecked = %q", Current().BoxChecked)
	}
	SetTheme("something else")
	if Current().BoxChecked != "☑" {
		t.Errorf("fallback BoxChecked = %q", Current().BoxChecked)
	}
}

func TestPanelString(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	out := PanelString([]string{"one", "three"})
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("panel has %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "+") || !strings.HasSuffix(lines[0], "+") {
		t.Errorf("top border = %q", lines[0])
	}
	if !strings.Contains(lines[1], "one") || !strings.Contains(lines[2], "three") {
		t.Errorf("body = %q", lines[1:3])
	}
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		amount   int64
		locale   string
		currency string
		want     string
	}{
		{10000, "en", "EGP", "10,000 EGP"},
		{0, "en", "", "0"},
		{1234567, "not a locale!!", "", "1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatCost(tt.amount, tt.locale, tt.currency); got != tt.want {
			t.Errorf("FormatCost(%d, %q, %q) = %q, want %q", tt.amount, tt.locale, tt.currency, got, tt.want)
		}
	}

	ar := FormatCost(10000, "ar-EG", "جنيه")
	if !strings.HasSuffix(ar, " جنيه") || len(ar) <= len(" جنيه") {
		t.Errorf("ar-EG cost = %q", ar)
	}
}

func TestMessages(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	var buf bytes.Buffer
	OK(&buf, "toggled")
	Fail(&buf, "bad index")
	out := buf.String()
	if !strings.Contains(out, "x toggled") || !strings.Contains(out, "✖ bad index") {
		t.Errorf("output = %q", out)
	}
}
