package facturx

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/ucarion/c14n"
)

// Canonicalize devuelve la forma canónica (C14N) del documento, base del sello de archivo.
// El digest de archivo se calcula sobre los bytes emitidos; el sello, sobre esta forma.
func Canonicalize(xmlBytes []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))
	dec.Entity = map[string]string{}
	out, err := c14n.Canonicalize(dec)
	if err != nil {
		return nil, fmt.Errorf("facturx: canonicalizar XML: %w", err)
	}
	return out, nil
}
