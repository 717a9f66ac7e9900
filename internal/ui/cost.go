package ui

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatCost renders amount with the digits and grouping of locale,
// followed by currency. Unparseable locales fall back to English.
func FormatCost(amount int64, locale, currency string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	s := message.NewPrinter(tag).Sprint(number.Decimal(amount))
	if currency != "" {
		s += " " + currency
	}
	return s
}
