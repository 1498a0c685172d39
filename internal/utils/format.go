package utils

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency formats a naira amount with thousands separators, e.g. ₦5,000.
func FormatCurrency(amount int64) string {
	return printer.Sprintf("₦%d", amount)
}

// FormatTimeRemaining formats a second count as "M minutes S seconds".
func FormatTimeRemaining(seconds int64) string {
	minutes := seconds / 60
	secs := seconds % 60
	return fmt.Sprintf("%d minutes %d seconds", minutes, secs)
}
