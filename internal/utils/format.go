package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatNumber renders v with pt-BR separators and the given number of
// decimals, e.g. 4761.5 -> "4.761,50".
func FormatNumber(v float64, decimals int) string {
	return ptBR.Sprint(number.Decimal(v, number.MinFractionDigits(decimals), number.MaxFractionDigits(decimals)))
}

// FormatUnit is FormatNumber followed by a unit.
func FormatUnit(v float64, decimals int, unit string) string {
	return FormatNumber(v, decimals) + " " + unit
}
