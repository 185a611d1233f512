// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"legal-extract/internal/anchors"
	"legal-extract/internal/formatters"
	"legal-extract/internal/selection"
)

// auditFile is the diagnostic dump written by --audit.
type auditFile struct {
	DocumentID string           `json:"document_id"`
	Status     string           `json:"status"`
	Anchors    []anchors.Record `json:"anchors"`
	Audit      selection.Audit  `json:"audit"`
}

func newExtractCmd(a *app) *cobra.Command {
	var outputFile, auditPath string
	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Extract the legal description from one bundle or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := a.extractor(cmd)
			if err != nil {
				return err
			}

			report, err := ex.Audit(args[0])
			if err != nil {
				return err
			}
			if auditPath != "" {
				data, err := json.MarshalIndent(auditFile{
					DocumentID: report.DocumentID,
					Status:     report.Result.Status(),
					Anchors:    report.Anchors,
					Audit:      report.Audit,
				}, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to serialize audit: %w", err)
				}
				if err := os.WriteFile(filepath.Clean(auditPath), append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("failed to write audit: %w", err)
				}
			}

			doc := formatters.Document{Path: args[0], DocumentID: report.DocumentID, Result: report.Result}
			rendered, err := formatters.Export(a.cfg.Defaults.Format, []formatters.Document{doc},
				a.formatterOptions(cmd.OutOrStdout(), false))
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), outputFile, rendered)
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the result to this file instead of stdout")
	cmd.Flags().StringVar(&auditPath, "audit", "", "write anchors and scored candidates as JSON to this file")
	return cmd
}
