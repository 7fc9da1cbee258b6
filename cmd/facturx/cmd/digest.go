package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	domfx "github.com/jhoicas/taller-facturx/internal/domain/facturx"
)

var digestCmd = &cobra.Command{
	Use:   "digest [files...]",
	Short: "SHA-256 (hex) de documentos ya emitidos",
	Long:  `Imprime "<digest>  <archivo>" por cada archivo, el mismo formato que factur-x.xml.sha256.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", domfx.Digest(data), path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(digestCmd)
}
