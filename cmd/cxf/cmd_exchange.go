// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-cxf/internal/crypto"
	"github.com/MKhiriev/go-cxf/internal/exchange"
	"github.com/MKhiriev/go-cxf/models"
)

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Create an export request for another provider",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		recipient, _ := cmd.Flags().GetString("recipient")
		rawTypes, _ := cmd.Flags().GetStringSlice("credential-type")
		output, _ := cmd.Flags().GetString("output")

		if recipient == "" {
			return errors.New("--recipient is required, see `cxf keygen`")
		}
		params, err := exchange.AgeParameters(recipient)
		if err != nil {
			return err
		}

		types := make([]models.CredentialType, 0, len(rawTypes))
		for _, t := range rawTypes {
			types = append(types, models.CredentialType(t))
		}

		req := exchange.NewImporter(cfg.App.ExporterRpID, nil, nil).Request(types, params)
		data, err := json.MarshalIndent(req, "", "  ")
		if err != nil {
			return err
		}
		return writeOutput(cmd, output, append(data, '\n'))
	},
}

var respondCmd = &cobra.Command{
	Use:   "respond REQUEST",
	Short: "Answer an export request with sealed stored accounts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawIDs, _ := cmd.Flags().GetStringSlice("account")
		output, _ := cmd.Flags().GetString("output")

		data, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}

		req, errResp := exchange.ParseExportRequest(data)
		if errResp != nil {
			return writeErrorResponse(cmd, output, errResp)
		}
		params, errResp := exchange.Negotiate(req, []models.HpkeParameters{exchange.AgeSuite})
		if errResp != nil {
			return writeErrorResponse(cmd, output, errResp)
		}
		recipient, err := exchange.AgeRecipient(params)
		if err != nil {
			return writeErrorResponse(cmd, output, models.NewErrorResponse(models.ErrorCodeIncorrectImporterKeyEncoding))
		}

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

		sealer, err := crypto.NewAgeSealer([]string{recipient}, nil)
		if err != nil {
			return err
		}
		resp, err := exchange.NewExporter(cfg.App.ExporterRpID, sealer, exchange.AgeSuite).
			Respond(cmd.Context(), req, header)
		var protoErr *exchange.ProtocolError
		if errors.As(err, &protoErr) {
			return writeErrorResponse(cmd, output, protoErr.Response())
		}
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		log.Info().Str("importer", req.Importer).Int("accounts", len(header.Accounts)).Msg("export request answered")
		return writeOutput(cmd, output, append(out, '\n'))
	},
}

// writeErrorResponse hands the protocol error to the importer and fails the
// command.
func writeErrorResponse(cmd *cobra.Command, output string, resp *models.ErrorResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, output, append(data, '\n')); err != nil {
		return err
	}
	return &exchange.ProtocolError{Code: resp.Error}
}

var acceptCmd = &cobra.Command{
	Use:   "accept REQUEST RESPONSE",
	Short: "Open the response to an export request",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		identityFile, _ := cmd.Flags().GetString("identity")
		doImport, _ := cmd.Flags().GetBool("import")
		output, _ := cmd.Flags().GetString("output")

		if identityFile == "" {
			return errors.New("--identity is required")
		}
		identity, err := os.ReadFile(identityFile)
		if err != nil {
			return fmt.Errorf("reading identity: %w", err)
		}

		var req models.ExportRequest
		if err := readJSON(cmd, args[0], &req); err != nil {
			return fmt.Errorf("request: %w", err)
		}

		data, err := readInput(cmd, args[1])
		if err != nil {
			return err
		}
		var failure models.ErrorResponse
		if json.Unmarshal(data, &failure) == nil && failure.Error != "" {
			return &exchange.ProtocolError{Code: failure.Error}
		}
		var resp models.ExportResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return fmt.Errorf("response: %w", err)
		}

		sealer, err := crypto.NewAgeSealer(nil, []string{string(identity)})
		if err != nil {
			return err
		}
		header, err := exchange.NewImporter(cfg.App.ExporterRpID, sealer, nil).Open(cmd.Context(), req, &resp)
		if err != nil {
			return err
		}

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
		renderImportReport(cmd.OutOrStdout(), resp.Exporter, report)
		return nil
	},
}

func readJSON(cmd *cobra.Command, path string, v any) error {
	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
