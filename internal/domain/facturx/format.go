package facturx

import (
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // calendario del emisor disponible aunque el host no tenga zoneinfo

	"github.com/shopspring/decimal"

	pkgfx "github.com/jhoicas/taller-facturx/pkg/facturx"
)

// Únicas funciones que convierten números y fechas a texto para el documento.
// Ningún otro componente formatea por su cuenta.

const (
	amountPlaces   = 2
	percentPlaces  = 2
	quantityPlaces = 4
	layoutCII      = "20060102" // formato 102 (CCYYMMDD)
)

// Layouts aceptados al leer fechas de los registros de origen (civiles en Europe/Paris).
var civilDateLayouts = []string{
	"2006-01-02",
	"20060102",
	"02/01/2006",
	"2006-01-02T15:04:05",
}

var issuingLocation = func() *time.Location {
	loc, err := time.LoadLocation(pkgfx.IssuingTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}()

// RoundAmount redondea a céntimos, mitad alejándose de cero (1.005 -> 1.01, -1.005 -> -1.01).
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(amountPlaces)
}

// FormatAmount devuelve el monto con exactamente dos decimales, punto decimal y sin separador de miles.
func FormatAmount(d decimal.Decimal) string {
	return RoundAmount(d).StringFixed(amountPlaces)
}

// FormatPercent formatea un tipo de IVA (20 -> "20.00").
func FormatPercent(d decimal.Decimal) string {
	return d.Round(percentPlaces).StringFixed(percentPlaces)
}

// FormatQuantity formatea cantidades con hasta 4 decimales, sin ceros finales (1 -> "1", 2.50 -> "2.5").
func FormatQuantity(d decimal.Decimal) string {
	return d.Round(quantityPlaces).String()
}

// FormatLineID posición de la línea (base 1).
func FormatLineID(position int) string {
	return strconv.Itoa(position)
}

// FormatDate devuelve la fecha como CCYYMMDD en el calendario del emisor.
func FormatDate(t time.Time) (string, error) {
	if t.IsZero() {
		return "", &InvalidDateError{Raw: t.Format(time.RFC3339)}
	}
	local := t.In(issuingLocation)
	if y := local.Year(); y < 1000 || y > 9999 {
		return "", &InvalidDateError{Raw: t.Format(time.RFC3339)}
	}
	return local.Format(layoutCII), nil
}

// ParseDate interpreta una fecha de origen. Las fechas civiles se fijan a medianoche en Europe/Paris;
// los instantes RFC 3339 conservan su zona. Cualquier otra entrada es InvalidDateError.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, &InvalidDateError{Raw: raw}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range civilDateLayouts {
		if t, err := time.ParseInLocation(layout, s, issuingLocation); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &InvalidDateError{Raw: raw}
}

// RoundPercent redondea un tipo de IVA a dos decimales.
func RoundPercent(d decimal.Decimal) decimal.Decimal {
	return d.Round(percentPlaces)
}

// CivilDate fecha YYYY-MM-DD en el calendario del emisor, para respuestas y registros.
func CivilDate(t time.Time) string {
	return t.In(issuingLocation).Format(time.DateOnly)
}
