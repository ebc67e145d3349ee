package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-cxf/internal/kdbx"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert other password manager formats into CXF",
}

var convertKdbxCmd = &cobra.Command{
	Use:   "kdbx FILE",
	Short: "Convert a KeePass database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		filesDir, _ := cmd.Flags().GetString("files")
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		doImport, _ := cmd.Flags().GetBool("import")

		password := os.Getenv("CXF_KDBX_PASSWORD")
		if password == "" {
			var err error
			password, err = readSecret(cmd, "KeePass password: ")
			if err != nil {
				return err
			}
		}

		db, err := kdbx.OpenFile(args[0], password)
		if err != nil {
			return err
		}

		opts := kdbx.Options{
			ExporterRpID:        cfg.App.ExporterRpID,
			ExporterDisplayName: cfg.App.ExporterDisplayName,
			Username:            username,
			Email:               email,
		}
		if filesDir != "" {
			if err := mkdirPrivate(filesDir); err != nil {
				return fmt.Errorf("creating %s: %w", filesDir, err)
			}
			opts.Attachments = func(a kdbx.Attachment) error {
				return os.WriteFile(filepath.Join(filesDir, a.ID.String()), a.Content, 0o600)
			}
		}

		header, err := kdbx.NewConverter().ToHeader(db, opts)
		if err != nil {
			return err
		}
		log.Info().Str("file", args[0]).Int("items", len(header.Accounts[0].Items)).Msg("KeePass database converted")

		if !doImport {
			return writeDocument(cmd, output, header, false)
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.services.ImportService.ImportDocument(cmd.Context(), header, nil)
		if err != nil {
			return err
		}
		renderImportReport(cmd.OutOrStdout(), args[0], report)
		return nil
	},
}
