package cmd

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-facturx/internal/application/dto"
)

// run ejecuta el comando raíz con flags limpios y devuelve stdout y stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	generateInput, generateOutput = "-", ""
	bundleInput, bundleOutput, bundleCert, bundleKey, bundlePassword = "-", "", "", "", ""
	pdfInput, pdfOutput = "-", ""
	batchInput, batchOutDir = "-", "."
	verbose, concurrency = false, 4
	for _, c := range append(rootCmd.Commands(), rootCmd) {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerate_EscribeXMLYDigest(t *testing.T) {
	out := filepath.Join(t.TempDir(), "factur-x.xml")

	_, stderr, err := run(t, "generate", "-i", "testdata/request.json", "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte(`<?xml version="1.0" encoding="UTF-8"?>`)))
	assert.Contains(t, string(data), "<ram:ID>F-2024-0042</ram:ID>")
	assert.Contains(t, string(data), "Transports Lefèvre &amp; Fils")
	assert.Contains(t, stderr, "F-2024-0042")

	digestOut, _, err := run(t, "digest", out)
	require.NoError(t, err)
	digest := strings.Fields(digestOut)[0]
	assert.Len(t, digest, 64)
	assert.Contains(t, stderr, digest)
}

func TestGenerate_Stdout(t *testing.T) {
	stdout, _, err := run(t, "generate", "--input", "testdata/request.json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "<rsm:CrossIndustryInvoice")
}

func TestGenerate_SinVendedor(t *testing.T) {
	var req dto.GenerateEInvoiceRequest
	raw, err := os.ReadFile("testdata/request.json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &req))
	req.Seller = nil
	path := filepath.Join(t.TempDir(), "req.json")
	body, err := json.Marshal(req)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, body, 0o644))

	_, _, err = run(t, "generate", "-i", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seller.name")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.xml")
	_, _, err := run(t, "generate", "-i", "testdata/request.json", "-o", good)
	require.NoError(t, err)

	stdout, _, err := run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, stdout, "F-2024-0042")
	assert.Contains(t, stdout, "335.88 EUR")

	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte("<Invoice/>"), 0o644))
	stdout, _, err = run(t, "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 de 2")
	assert.Contains(t, stdout, "rsm:CrossIndustryInvoice")
}

func TestBundle_SinSello(t *testing.T) {
	out := filepath.Join(t.TempDir(), "archivo.zip")

	_, stderr, err := run(t, "bundle", "-i", "testdata/request.json", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "sin sello")

	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "factur-x.xml")
	assert.Contains(t, names, "factur-x.xml.sha256")
}

func TestBundle_RequiereSalida(t *testing.T) {
	_, _, err := run(t, "bundle", "-i", "testdata/request.json")
	require.Error(t, err)
}

func TestBatch(t *testing.T) {
	raw, err := os.ReadFile("testdata/request.json")
	require.NoError(t, err)
	var base dto.GenerateEInvoiceRequest
	require.NoError(t, json.Unmarshal(raw, &base))

	items := make([]dto.GenerateEInvoiceRequest, 3)
	for i := range items {
		items[i] = base
		items[i].Invoice.Number = "F/2024/" + string(rune('1'+i))
	}
	items[2].Buyer.Name = ""
	body, err := json.Marshal(dto.BatchRequest{Items: items})
	require.NoError(t, err)

	dir := t.TempDir()
	in := filepath.Join(dir, "lote.json")
	require.NoError(t, os.WriteFile(in, body, 0o644))
	outDir := filepath.Join(dir, "out")

	stdout, stderr, err := run(t, "batch", "-i", in, "-d", outDir, "--concurrency", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 de 3")
	assert.Contains(t, stderr, "buyer.name")
	assert.Contains(t, stdout, "F_2024_1.xml")

	assert.FileExists(t, filepath.Join(outDir, "F_2024_1.xml"))
	assert.FileExists(t, filepath.Join(outDir, "F_2024_2.xml"))
	assert.NoFileExists(t, filepath.Join(outDir, "F_2024_3.xml"))
}

func TestDigest_ArchivoInexistente(t *testing.T) {
	_, _, err := run(t, "digest", filepath.Join(t.TempDir(), "nada.xml"))
	require.Error(t, err)
}
