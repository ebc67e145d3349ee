package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-cxf/internal/app"
	"github.com/MKhiriev/go-cxf/internal/config"
	"github.com/MKhiriev/go-cxf/internal/logger"
	"github.com/MKhiriev/go-cxf/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+app.UserMessage(err, retryer)))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	cfg *config.StructuredConfig
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "cxf",
	Short:         "Read, validate, store and exchange Credential Exchange Format documents",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.GetStructuredConfig(cmd.Flags())
		if err != nil {
			return fmt.Errorf("error getting configs: %w", err)
		}

		log = logger.NewCLILogger("cxf", cfg.App.LogLevel)
		log.Debug().Any("config", cfg).Msg("received configs")

		cmd.SetContext(log.WithContext(cmd.Context()))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
		return nil
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	// document commands
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().Bool("strict", false, "fail when any item had to be skipped")
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringSliceP("account", "a", nil, "account id to export (repeatable, default all)")
	exportCmd.Flags().StringP("output", "o", "-", "output file")
	exportCmd.Flags().Bool("indent", false, "indent the JSON output")
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(deleteCmd)

	// convert subcommands
	rootCmd.AddCommand(convertCmd)
	convertCmd.AddCommand(convertKdbxCmd)
	convertKdbxCmd.Flags().StringP("output", "o", "-", "output file")
	convertKdbxCmd.Flags().String("files", "", "directory receiving entry attachments")
	convertKdbxCmd.Flags().String("username", "", "account username (default: database default user)")
	convertKdbxCmd.Flags().String("email", "", "account email")
	convertKdbxCmd.Flags().Bool("import", false, "store the converted document instead of printing it")

	// sealing commands
	rootCmd.AddCommand(sealCmd)
	rootCmd.AddCommand(openCmd)
	for _, c := range []*cobra.Command{sealCmd, openCmd} {
		c.Flags().StringP("input", "i", "-", "input file")
		c.Flags().StringP("output", "o", "-", "output file")
		c.Flags().String("scheme", schemePassphrase, "sealing scheme: passphrase, age or age-scrypt")
	}
	sealCmd.Flags().StringSliceP("recipient", "r", nil, "age recipient (repeatable, implies --scheme age)")
	openCmd.Flags().StringP("identity", "k", "", "age identity file (implies --scheme age)")
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.Flags().StringP("output", "o", "", "identity file to write (default stdout)")

	// exchange commands
	rootCmd.AddCommand(requestCmd)
	requestCmd.Flags().StringP("recipient", "r", "", "age recipient the exporter seals for")
	requestCmd.Flags().StringSlice("credential-type", nil, "credential type to request (repeatable, default all)")
	requestCmd.Flags().StringP("output", "o", "-", "output file")
	rootCmd.AddCommand(respondCmd)
	respondCmd.Flags().StringSliceP("account", "a", nil, "account id to export (repeatable, default all)")
	respondCmd.Flags().StringP("output", "o", "-", "output file")
	rootCmd.AddCommand(acceptCmd)
	acceptCmd.Flags().StringP("identity", "k", "", "age identity file")
	acceptCmd.Flags().Bool("import", false, "store the received document instead of printing it")
	acceptCmd.Flags().StringP("output", "o", "-", "output file")

	rootCmd.AddCommand(versionCmd)
}
