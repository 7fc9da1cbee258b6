package facturx

import (
	"regexp"
	"strings"
)

// postalLocality reconoce "75002 Paris" al final del último segmento. El prefijo, si lo hay,
// se devuelve como parte de la calle ("12 rue de la Paix 75002 Paris").
var postalLocality = regexp.MustCompile(`^(?:(.*?)\s+)?(\d{5})\s+(\D.*)$`)

// NormalizeAddress convierte una dirección libre en {calle, código postal, ciudad}.
// Es heurística y nunca falla: lo que no se reconoce queda en City o Street y el
// resto vacío. CountryCode lo fija el mapper.
func NormalizeAddress(raw string) Address {
	var segments []string
	for _, s := range strings.Split(raw, ",") {
		if s = collapseSpaces(s); s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		// "," o ", ,": nada interpretable; se conserva el texto tal cual.
		return Address{Street: strings.TrimSpace(raw)}
	}

	last := segments[len(segments)-1]
	rest := segments[:len(segments)-1]

	m := postalLocality.FindStringSubmatch(last)
	if m == nil {
		return Address{
			Street: strings.Join(rest, ", "),
			City:   last,
		}
	}
	if m[1] != "" {
		rest = append(append([]string(nil), rest...), m[1])
	}
	return Address{
		Street:     strings.Join(rest, ", "),
		PostalCode: m[2],
		City:       strings.TrimSpace(m[3]),
	}
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
