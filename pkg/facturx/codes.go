package facturx

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// NormalizeCountryCode devuelve el código ISO 3166-1 alfa-2 en mayúsculas.
// Vacío => DefaultCountryCode. "UK" y "EL" no son regiones ISO; se aceptan por uso fiscal.
func NormalizeCountryCode(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return DefaultCountryCode, nil
	}
	if len(c) != 2 {
		return "", fmt.Errorf("facturx: código de país %q debe tener 2 letras", code)
	}
	switch c {
	case "EL":
		return "GR", nil
	case "UK":
		return "GB", nil
	}
	region, err := language.ParseRegion(c)
	if err != nil || !region.IsCountry() {
		return "", fmt.Errorf("facturx: código de país %q no es ISO 3166-1", code)
	}
	return region.String(), nil
}

// NormalizeCurrencyCode valida un código ISO 4217. Vacío => DefaultCurrencyCode.
func NormalizeCurrencyCode(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return DefaultCurrencyCode, nil
	}
	unit, err := currency.ParseISO(c)
	if err != nil {
		return "", fmt.Errorf("facturx: moneda %q no es ISO 4217", code)
	}
	return unit.String(), nil
}
