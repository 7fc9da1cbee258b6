package facturx

import (
	"fmt"
	"unicode"
)

// ValidateSIRENOrSIRET valida un identificador SIREN (9 dígitos) o SIRET (14 dígitos)
// con la clave de Luhn. Acepta espacios y separadores ("123 456 789 00012").
// Los SIRET de La Poste (SIREN 356000000) siguen la regla de suma múltiplo de 5.
func ValidateSIRENOrSIRET(id string) error {
	digits := extractDigits(id)
	switch len(digits) {
	case 9, 14:
	default:
		return fmt.Errorf("facturx: SIREN/SIRET debe tener 9 o 14 dígitos, se encontraron %d", len(digits))
	}
	if len(digits) == 14 && string(digits[:9]) == "356000000" {
		var sum int
		for _, d := range digits {
			sum += int(d - '0')
		}
		if sum%5 != 0 {
			return fmt.Errorf("facturx: SIRET de La Poste inválido")
		}
		return nil
	}
	if !luhnValid(digits) {
		return fmt.Errorf("facturx: clave de control SIREN/SIRET inválida para %q", id)
	}
	return nil
}

func luhnValid(digits []byte) bool {
	var sum int
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		n := int(digits[i] - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		double = !double
	}
	return sum%10 == 0
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) && r < 128 {
			out = append(out, byte(r))
		}
	}
	return out
}
