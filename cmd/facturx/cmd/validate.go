package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	infrafx "github.com/jhoicas/taller-facturx/internal/infrastructure/facturx"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Control estructural de documentos CII",
	Long: `Comprueba la estructura mínima del perfil (raíz, namespaces, campos obligatorios,
fechas formato 102, total = neto + IVA). No sustituye a la validación XSD/Schematron oficial.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	validator := infrafx.NewValidatorService()
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		summary, err := validator.Validate(data)
		if summary != nil {
			fmt.Fprintf(out, "%s: %s %s (%s) %s -> %s, %d línea(s), total %s %s\n",
				path, summary.TypeCode, summary.Number, summary.IssueDate,
				summary.SellerName, summary.BuyerName, summary.LineCount,
				summary.GrandTotal, summary.Currency)
		}
		var verr *infrafx.ValidationError
		switch {
		case errors.As(err, &verr):
			failed++
			for _, p := range verr.Problems {
				fmt.Fprintf(out, "  - %s\n", p)
			}
		case err != nil:
			failed++
			fmt.Fprintf(out, "%s: %v\n", path, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d de %d documento(s) con problemas", failed, len(args))
	}
	return nil
}
