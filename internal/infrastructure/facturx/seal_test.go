package facturx_test

import (
	"archive/zip"
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infrafx "github.com/jhoicas/taller-facturx/internal/infrastructure/facturx"
)

// writeTestCertificate genera un certificado autofirmado RSA y lo escribe en PEM.
func writeTestCertificate(t *testing.T) (certPath, keyPath string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "Atelier X archivage", Organization: []string{"Atelier X"}},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	dir := t.TempDir()
	certPath = filepath.Join(dir, "seal.crt")
	keyPath = filepath.Join(dir, "seal.key")
	require.NoError(t, os.WriteFile(certPath, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	require.NoError(t, os.WriteFile(keyPath, pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}), 0o600))
	return certPath, keyPath
}

func TestSeal_FirmaYVerifica(t *testing.T) {
	certPath, keyPath := writeTestCertificate(t)
	cert, err := infrafx.LoadSealCertificate(certPath, keyPath, "")
	require.NoError(t, err)
	require.NotNil(t, cert.Leaf)

	inv, seller, buyer := fullRecords()
	out := generate(t, inv, seller, buyer)

	svc := infrafx.NewSealService()
	seal, err := svc.Seal(out.XML, cert)
	require.NoError(t, err)
	assert.NotEmpty(t, seal)
	require.NoError(t, svc.Verify(out.XML, seal, cert.Leaf))

	seller.Name = "Atelier Z"
	tampered := generate(t, inv, seller, buyer)
	assert.ErrorIs(t, svc.Verify(tampered.XML, seal, cert.Leaf), infrafx.ErrSealMismatch)
	assert.ErrorIs(t, svc.Verify(out.XML, "no-es-base64!", cert.Leaf), infrafx.ErrSealMismatch)
}

func TestSeal_SinLlavePrivada(t *testing.T) {
	inv, seller, buyer := minimalRecords()
	out := generate(t, inv, seller, buyer)

	empty, err := infrafx.LoadSealCertificate("", "", "")
	require.NoError(t, err)
	_, err = infrafx.NewSealService().Seal(out.XML, empty)
	assert.Error(t, err)
}

func TestLoadSealCertificate_ArchivoInexistente(t *testing.T) {
	_, err := infrafx.LoadSealCertificate(filepath.Join(t.TempDir(), "nada.p12"), "", "secreto")
	assert.Error(t, err)
}

func TestCanonicalize_Determinista(t *testing.T) {
	inv, seller, buyer := fullRecords()
	out := generate(t, inv, seller, buyer)

	a, err := infrafx.Canonicalize(out.XML)
	require.NoError(t, err)
	b, err := infrafx.Canonicalize(out.XML)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Contains(t, string(a), "rsm:CrossIndustryInvoice")
}

func TestCompressArchiveBundle(t *testing.T) {
	inv, seller, buyer := minimalRecords()
	out := generate(t, inv, seller, buyer)

	data, err := infrafx.CompressArchiveBundle(out.XML, out.Digest, "c2VsbG8=")
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	files := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		files[f.Name] = content
	}

	require.Len(t, files, 3)
	assert.Equal(t, out.XML, files["factur-x.xml"])
	assert.Equal(t, out.Digest+"  factur-x.xml\n", string(files[infrafx.BundleDigestName]))
	assert.Equal(t, "c2VsbG8=\n", string(files[infrafx.BundleSealName]))

	again, err := infrafx.CompressArchiveBundle(out.XML, out.Digest, "c2VsbG8=")
	require.NoError(t, err)
	assert.Equal(t, data, again, "el ZIP es reproducible")
}

func TestCompressArchiveBundle_SinSello(t *testing.T) {
	data, err := infrafx.CompressArchiveBundle([]byte("<x/>"), "abc", "")
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Len(t, zr.File, 2)
}
