// Package money normaliza códigos de moneda y formatea importes para documentos.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NormalizeCurrency valida un código ISO 4217 y lo devuelve en mayúsculas.
func NormalizeCurrency(code string) (string, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", fmt.Errorf("moneda %q no reconocida", code)
	}
	return unit.String(), nil
}

// Scale decimales con los que se guardan horas, tarifas y porcentajes.
const Scale = 2

// FitsScale indica si d no tiene más de Scale decimales significativos.
func FitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(Scale))
}

// localeFor idioma usado para formatear importes en cada moneda.
func localeFor(code string) language.Tag {
	switch strings.ToUpper(code) {
	case "BRL":
		return language.BrazilianPortuguese
	case "EUR":
		return language.Spanish
	default:
		return language.AmericanEnglish
	}
}

// Format devuelve "USD 1,234.50" con separadores según la moneda.
func Format(amount decimal.Decimal, code string) string {
	p := message.NewPrinter(localeFor(code))
	f, _ := amount.Round(2).Float64()
	return p.Sprintf("%s %v", strings.ToUpper(code), number.Decimal(f, number.Scale(2)))
}

// FormatHours horas con dos decimales según la moneda de la factura.
func FormatHours(hours decimal.Decimal, code string) string {
	p := message.NewPrinter(localeFor(code))
	f, _ := hours.Round(2).Float64()
	return p.Sprintf("%v", number.Decimal(f, number.Scale(2)))
}
