package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/taller-facturx/internal/application/billing"
	infrapdf "github.com/jhoicas/taller-facturx/internal/infrastructure/pdf"
)

var (
	pdfInput  string
	pdfOutput string
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Genera la factura PDF con factur-x.xml adjunto",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		req, err := readRequest(pdfInput)
		if err != nil {
			return err
		}
		uc := billing.NewPDFUseCase(newUseCase(billing.EInvoiceOptions{}), infrapdf.NewMarotoPDFGenerator(), infrapdf.EmbedXML)
		pdfBytes, _, err := uc.GeneratePDF(cmd.Context(), cliWorkshopID, req)
		if err != nil {
			return err
		}
		return writeOutput(cmd, pdfOutput, pdfBytes)
	},
}

func init() {
	pdfCmd.Flags().StringVarP(&pdfInput, "input", "i", "-", "Petición JSON (- = stdin)")
	pdfCmd.Flags().StringVarP(&pdfOutput, "output", "o", "", "Archivo PDF de salida (obligatorio)")
	_ = pdfCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(pdfCmd)
}
