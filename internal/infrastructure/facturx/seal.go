package facturx

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"

	pkgfx "github.com/jhoicas/taller-facturx/pkg/facturx"
)

var _ pkgfx.Sealer = (*SealService)(nil)

// ErrSealMismatch el sello no corresponde al documento o al certificado.
var ErrSealMismatch = errors.New("facturx: sello no válido para el documento")

// SealService sello de archivo: RSA PKCS#1 v1.5 sobre SHA-256 de la forma canónica.
type SealService struct{}

// NewSealService crea el servicio.
func NewSealService() *SealService {
	return &SealService{}
}

// Seal implementa pkg/facturx.Sealer.
func (s *SealService) Seal(xmlBytes []byte, cert tls.Certificate) (string, error) {
	if len(xmlBytes) == 0 {
		return "", fmt.Errorf("facturx: XML vacío")
	}
	priv, ok := cert.PrivateKey.(*rsa.PrivateKey)
	if !ok {
		return "", fmt.Errorf("facturx: el certificado de sellado debe incluir llave privada RSA")
	}
	hash, err := canonicalHash(xmlBytes)
	if err != nil {
		return "", err
	}
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, hash)
	if err != nil {
		return "", fmt.Errorf("facturx: sellar documento: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify comprueba un sello con la llave pública del certificado.
func (s *SealService) Verify(xmlBytes []byte, seal string, cert *x509.Certificate) error {
	if cert == nil {
		return fmt.Errorf("facturx: certificado requerido")
	}
	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("facturx: el certificado no tiene llave pública RSA")
	}
	sig, err := base64.StdEncoding.DecodeString(seal)
	if err != nil {
		return fmt.Errorf("%w: base64: %v", ErrSealMismatch, err)
	}
	hash, err := canonicalHash(xmlBytes)
	if err != nil {
		return err
	}
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA256, hash, sig); err != nil {
		return ErrSealMismatch
	}
	return nil
}

func canonicalHash(xmlBytes []byte) ([]byte, error) {
	canonical, err := Canonicalize(xmlBytes)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(canonical)
	return sum[:], nil
}
