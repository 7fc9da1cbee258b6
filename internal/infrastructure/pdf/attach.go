package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	pkgfx "github.com/jhoicas/taller-facturx/pkg/facturx"
)

// EmbedXML adjunta el XML como factur-x.xml al PDF. pdfcpu lee los adjuntos desde disco,
// así que el XML pasa por un directorio temporal que se elimina al terminar.
// No produce PDF/A-3 (sin XMP ni OutputIntent).
func EmbedXML(pdfBytes, xmlBytes []byte) ([]byte, error) {
	if len(pdfBytes) == 0 || len(xmlBytes) == 0 {
		return nil, fmt.Errorf("pdf: PDF y XML son obligatorios")
	}
	dir, err := os.MkdirTemp("", "facturx-*")
	if err != nil {
		return nil, fmt.Errorf("pdf: directorio temporal: %w", err)
	}
	defer os.RemoveAll(dir)

	xmlPath := filepath.Join(dir, pkgfx.AttachmentName)
	if err := os.WriteFile(xmlPath, xmlBytes, 0o600); err != nil {
		return nil, fmt.Errorf("pdf: escribir %s: %w", pkgfx.AttachmentName, err)
	}

	conf := model.NewDefaultConfiguration()
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false

	var out bytes.Buffer
	if err := api.AddAttachments(bytes.NewReader(pdfBytes), &out, []string{xmlPath}, false, conf); err != nil {
		return nil, fmt.Errorf("pdf: adjuntar %s: %w", pkgfx.AttachmentName, err)
	}
	return out.Bytes(), nil
}
