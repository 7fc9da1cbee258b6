package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/taller-facturx/internal/application/billing"
)

var (
	generateInput  string
	generateOutput string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Genera el XML Factur-X de una petición JSON",
	Long: `Genera el XML CII de una petición con el formato de POST /api/einvoices.
El vendedor debe venir en la petición ("seller"). El digest SHA-256 se escribe en stderr.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "input", "i", "-", "Petición JSON (- = stdin)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Archivo XML de salida (vacío = stdout)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	req, err := readRequest(generateInput)
	if err != nil {
		return err
	}
	resp, err := newUseCase(billing.EInvoiceOptions{}).Preview(cmd.Context(), cliWorkshopID, req)
	if err != nil {
		return err
	}
	for _, w := range resp.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "aviso: %s\n", w)
	}
	if err := writeOutput(cmd, generateOutput, []byte(resp.XML)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s  %s\n", resp.Digest, resp.Number)
	return nil
}
