// Package facturx: interfaz para el sellado de archivo del documento XML.

package facturx

import "crypto/tls"

// Sealer sella un documento ya serializado para su conservación legal.
type Sealer interface {
	// Seal toma el XML tal como fue emitido y el certificado con llave privada,
	// y retorna la firma (Base64) sobre su forma canónica.
	Seal(xmlBytes []byte, cert tls.Certificate) (string, error)
}
