package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-cxf/internal/logger"
	"github.com/MKhiriev/go-cxf/internal/utils"
	"github.com/MKhiriev/go-cxf/internal/validators"
	"github.com/MKhiriev/go-cxf/internal/workers"
	"github.com/MKhiriev/go-cxf/models"
)

var errDocumentsInvalid = errors.New("one or more documents are invalid")

// decodeFiles reads every path and decodes them concurrently.
func decodeFiles(cmd *cobra.Command, paths []string) ([]workers.DecodeResult, error) {
	docs := make([]workers.Document, 0, len(paths))
	for _, path := range paths {
		data, err := readInput(cmd, path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		docs = append(docs, workers.Document{Name: path, Data: data})
	}

	pool := workers.NewDecodePool(models.NewDecoder(), cfg.Workers.DecodeConcurrency)
	return pool.Decode(cmd.Context(), docs)
}

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Decode and check CXF documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := decodeFiles(cmd, args)
		if err != nil {
			return err
		}

		validator := validators.NewDocumentValidator()
		rows := make([]validationRow, 0, len(results))
		failed := false
		for _, res := range results {
			row := validationRow{Name: res.Name, Skipped: len(res.ItemErrors), Err: res.Err}
			if res.Err == nil {
				row.Accounts = len(res.Header.Accounts)
				for _, acc := range res.Header.Accounts {
					row.Items += len(acc.Items)
				}
				row.Err = validator.Validate(cmd.Context(), res.Header)
				row.Dangling = len(validators.FindDanglingLinks(res.Header))
			}
			if row.Err != nil {
				failed = true
			}
			for _, itemErr := range res.ItemErrors {
				log.Warn().Err(itemErr).Str("document", res.Name).Msg("item does not decode")
			}
			rows = append(rows, row)
		}

		renderValidation(cmd.OutOrStdout(), rows)
		if failed {
			return errDocumentsInvalid
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE...",
	Short: "Store the accounts of CXF documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")

		results, err := decodeFiles(cmd, args)
		if err != nil {
			return err
		}
		for _, res := range results {
			if res.Err != nil {
				return fmt.Errorf("%s: %w", res.Name, res.Err)
			}
			if strict && len(res.ItemErrors) > 0 {
				return fmt.Errorf("%s: %w", res.Name, res.ItemErrors[0])
			}
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		var total models.ImportReport
		ids := utils.NewIDGenerator()
		for _, res := range results {
			child := logger.FromContext(cmd.Context()).With().
				Str("document", res.Name).
				Logger()
			ctx := utils.WithImportID(child.WithContext(cmd.Context()), ids.Generate())

			report, err := a.services.ImportService.ImportDocument(ctx, res.Header, res.ItemErrors)
			if err != nil {
				return fmt.Errorf("%s: %w", res.Name, err)
			}
			renderImportReport(cmd.OutOrStdout(), res.Name, report)
			total.Add(report)
		}
		if len(results) > 1 {
			renderImportTotal(cmd.OutOrStdout(), len(results), total)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write stored accounts as a CXF document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rawIDs, _ := cmd.Flags().GetStringSlice("account")
		output, _ := cmd.Flags().GetString("output")
		indent, _ := cmd.Flags().GetBool("indent")

		ids, err := accountIDs(rawIDs)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		header, err := a.services.ExportService.Export(cmd.Context(), ids...)
		if err != nil {
			return err
		}
		return writeDocument(cmd, output, header, indent)
	},
}

func writeDocument(cmd *cobra.Command, output string, header *models.Header, indent bool) error {
	encode := models.Encode
	if indent || output == "-" {
		encode = models.EncodeIndent
	}
	data, err := encode(header)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return writeOutput(cmd, output, append(data, '\n'))
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List stored accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		accounts, err := a.services.ExportService.ListAccounts(cmd.Context())
		if err != nil {
			return err
		}
		renderAccounts(cmd.OutOrStdout(), accounts)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count stored credentials by type",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		counts, err := a.services.ExportService.CredentialStats(cmd.Context())
		if err != nil {
			return err
		}
		renderStats(cmd.OutOrStdout(), counts)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Remove a stored account with everything it owns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := accountIDs(args)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.services.ExportService.DeleteAccount(cmd.Context(), ids[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Deleted account %s\n", ids[0])
		return nil
	},
}

// mkdirPrivate creates dir for attachments written by convert.
func mkdirPrivate(dir string) error {
	return os.MkdirAll(dir, 0o700)
}
