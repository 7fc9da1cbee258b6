// Package cmd CLI fuera de línea: genera, valida, calcula el digest y empaqueta documentos
// Factur-X sin servidor ni base de datos.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/taller-facturx/internal/application/billing"
	"github.com/jhoicas/taller-facturx/internal/application/dto"
	infrafx "github.com/jhoicas/taller-facturx/internal/infrastructure/facturx"
	"github.com/jhoicas/taller-facturx/internal/infrastructure/memory"
	"github.com/jhoicas/taller-facturx/pkg/logger"
)

// cliWorkshopID taller ficticio: en la CLI el vendedor viene siempre en la petición.
const cliWorkshopID = "cli"

var (
	version = "0.1.0"

	verbose     bool
	concurrency int
)

var rootCmd = &cobra.Command{
	Use:   "facturx",
	Short: "Genera documentos Factur-X (EN16931, perfil MINIMUM)",
	Long: `facturx genera el XML CII de una factura a partir de una petición JSON,
con el mismo pipeline que la API.

Ejemplos:
  facturx generate -i factura.json -o factur-x.xml
  facturx digest factur-x.xml
  facturx validate factur-x.xml
  facturx bundle -i factura.json -o archivo.zip --cert sello.p12 --password ****
  facturx pdf -i factura.json -o factura.pdf`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute ejecuta el comando raíz.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Registro detallado en stderr")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 4, "Documentos generados en paralelo (batch)")
}

func newLogger() *logger.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.NewWithWriter(logger.Config{Env: "development", Level: level}, os.Stderr)
}

// newUseCase pipeline completo sobre repositorios en memoria.
func newUseCase(opts billing.EInvoiceOptions) *billing.EInvoiceUseCase {
	opts.BatchConcurrency = concurrency
	return billing.NewEInvoiceUseCase(
		memory.NewWorkshopRepository(),
		memory.NewArchiveRepository(),
		infrafx.NewGeneratorService(nil),
		infrafx.NewValidatorService(),
		infrafx.NewSealService(),
		opts,
		newLogger(),
	)
}

// readJSON lee un archivo JSON; "-" es stdin.
func readJSON(path string, v any) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("leer %s: %w", path, err)
	}
	return nil
}

func readRequest(path string) (dto.GenerateEInvoiceRequest, error) {
	var req dto.GenerateEInvoiceRequest
	err := readJSON(path, &req)
	return req, err
}

// writeOutput escribe en path o en stdout si path es "" o "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
