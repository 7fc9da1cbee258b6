package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/taller-facturx/internal/application/billing"
	infrafx "github.com/jhoicas/taller-facturx/internal/infrastructure/facturx"
)

var (
	bundleInput    string
	bundleOutput   string
	bundleCert     string
	bundleKey      string
	bundlePassword string
)

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Genera el paquete de archivo ZIP (XML, digest y sello)",
	Args:  cobra.NoArgs,
	RunE:  runBundle,
}

func init() {
	bundleCmd.Flags().StringVarP(&bundleInput, "input", "i", "-", "Petición JSON (- = stdin)")
	bundleCmd.Flags().StringVarP(&bundleOutput, "output", "o", "", "Archivo ZIP de salida (obligatorio)")
	bundleCmd.Flags().StringVar(&bundleCert, "cert", "", "Certificado de sellado (.pem/.crt o .p12/.pfx)")
	bundleCmd.Flags().StringVar(&bundleKey, "key", "", "Llave privada PEM (si --cert es PEM sin llave)")
	bundleCmd.Flags().StringVar(&bundlePassword, "password", "", "Contraseña del .p12")
	_ = bundleCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(bundleCmd)
}

func runBundle(cmd *cobra.Command, _ []string) error {
	req, err := readRequest(bundleInput)
	if err != nil {
		return err
	}
	cert, err := infrafx.LoadSealCertificate(bundleCert, bundleKey, bundlePassword)
	if err != nil {
		return err
	}

	uc := newUseCase(billing.EInvoiceOptions{SealCert: cert})
	resp, err := uc.Generate(cmd.Context(), cliWorkshopID, req)
	if err != nil {
		return err
	}
	zipBytes, _, err := uc.Bundle(cmd.Context(), cliWorkshopID, resp.Number)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, bundleOutput, zipBytes); err != nil {
		return err
	}
	sealed := "sin sello"
	if resp.Seal != "" {
		sealed = "sellado"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s  %s (%s)\n", resp.Digest, resp.Number, sealed)
	return nil
}
