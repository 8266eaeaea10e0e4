package utils

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatCurrency renders an amount with its ISO currency code using
// locale-aware formatting. Unknown codes or locales degrade to a plain
// "CODE 123.45" string; formatting never fails the caller.
func FormatCurrency(amount float64, code, locale string) string {
	if code == "" {
		code = "USD"
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %.2f", code, amount)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	// Display the ISO code rather than a symbol, e.g. "PKR 1,500.00".
	return message.NewPrinter(tag).Sprintf("%v", currency.ISO(unit.Amount(amount)))
}

// FormatDate renders a stored date value for display, degrading to "N/A"
// when the value is missing or unparseable.
func FormatDate(value any) string {
	t, ok := ToDate(value)
	if !ok {
		return "N/A"
	}
	return t.Format("Jan 2, 2006")
}
