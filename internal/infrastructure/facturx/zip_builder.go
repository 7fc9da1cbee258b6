package facturx

import (
	"archive/zip"
	"bytes"
	"fmt"

	pkgfx "github.com/jhoicas/taller-facturx/pkg/facturx"
)

// Nombres de las entradas del paquete de archivo.
const (
	BundleDigestName = pkgfx.AttachmentName + ".sha256"
	BundleSealName   = pkgfx.AttachmentName + ".seal"
)

// CompressArchiveBundle empaqueta en memoria el XML emitido, su digest (formato sha256sum)
// y, si existe, el sello. Las entradas llevan fecha cero para que el ZIP sea reproducible.
func CompressArchiveBundle(xmlBytes []byte, digest, seal string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	entries := []struct {
		name string
		data []byte
	}{
		{pkgfx.AttachmentName, xmlBytes},
		{BundleDigestName, []byte(digest + "  " + pkgfx.AttachmentName + "\n")},
	}
	if seal != "" {
		entries = append(entries, struct {
			name string
			data []byte
		}{BundleSealName, []byte(seal + "\n")})
	}

	for _, e := range entries {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: e.name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("zip: crear entrada %s: %w", e.name, err)
		}
		if _, err := fw.Write(e.data); err != nil {
			return nil, fmt.Errorf("zip: escribir %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	return buf.Bytes(), nil
}
