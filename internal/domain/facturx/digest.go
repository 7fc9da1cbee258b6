package facturx

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest calcula el SHA-256 del documento serializado y lo devuelve en hex minúsculas (64 caracteres).
// No depende de reloj, locale ni plataforma: mismos bytes, mismo digest.
func Digest(text []byte) string {
	sum := sha256.Sum256(text)
	return hex.EncodeToString(sum[:])
}
