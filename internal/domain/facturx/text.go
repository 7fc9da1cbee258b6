package facturx

import "unicode/utf8"

// ValidXMLText indica si s es UTF-8 válido y solo contiene caracteres admitidos por XML 1.0
// (#x9 | #xA | #xD | [#x20-#xD7FF] | [#xE000-#xFFFD] | [#x10000-#x10FFFF]).
func ValidXMLText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if !isXMLChar(r) {
			return false
		}
	}
	return true
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= utf8.MaxRune:
		return true
	}
	return false
}

// textField par campo/valor de texto libre que acaba en el XML.
type textField struct {
	field string
	value string
}

// checkXMLText devuelve *InvalidFieldError para el primer campo con texto que XML no admite.
func checkXMLText(fields ...textField) error {
	for _, f := range fields {
		if !ValidXMLText(f.value) {
			return &InvalidFieldError{Field: f.field, Value: f.value, Reason: "contiene caracteres no admitidos en XML"}
		}
	}
	return nil
}
