package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/taller-facturx/internal/application/billing"
	"github.com/jhoicas/taller-facturx/internal/application/dto"
)

var (
	batchInput  string
	batchOutDir string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Genera varios documentos en paralelo",
	Long: `Lee un JSON {"items": [...]} con el formato de POST /api/einvoices/batch y escribe
<número>.xml por cada documento en el directorio de salida.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchInput, "input", "i", "-", "Lote JSON (- = stdin)")
	batchCmd.Flags().StringVarP(&batchOutDir, "out-dir", "d", ".", "Directorio de salida")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	var in dto.BatchRequest
	if err := readJSON(batchInput, &in); err != nil {
		return err
	}
	if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
		return err
	}

	resp, err := newUseCase(billing.EInvoiceOptions{BatchMaxItems: len(in.Items)}).GenerateBatch(cmd.Context(), cliWorkshopID, in.Items)
	if err != nil {
		return err
	}
	for _, item := range resp.Items {
		if item.Error != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%d] %s: %s\n", item.Index, item.Number, item.Error.Message)
			continue
		}
		name := strings.NewReplacer("/", "_", "\\", "_").Replace(item.Number) + ".xml"
		if err := os.WriteFile(filepath.Join(batchOutDir, name), []byte(item.XML), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", item.Digest, name)
	}
	if resp.Failed > 0 {
		return fmt.Errorf("%d de %d documento(s) fallaron", resp.Failed, len(resp.Items))
	}
	return nil
}
