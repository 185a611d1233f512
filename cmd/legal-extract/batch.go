// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"legal-extract/internal/formatters"
	"legal-extract/internal/parallel"
	"legal-extract/internal/paths"
	"legal-extract/internal/report"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		workers    int
		recursive  bool
		outputFile string
		xlsxPath   string
	)
	cmd := &cobra.Command{
		Use:   "batch DIR",
		Short: "Extract every supported file in a directory",
		Long: `Extract every .json bundle and .pdf in DIR concurrently. Results are
printed in path order. JSON output is one line per file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("workers") {
				a.cfg.Defaults.Workers = workers
			}
			if a.cfg.Defaults.Workers < 1 {
				return fmt.Errorf("workers must be at least 1, got %d", a.cfg.Defaults.Workers)
			}

			ex, err := a.extractor(cmd)
			if err != nil {
				return err
			}
			suffix := a.cfg.Watch.OutputSuffix
			files, err := ex.CollectFiles(args[0], recursive, func(p string) bool {
				return paths.IsResultFile(p, suffix)
			})
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no supported files in %s", args[0])
			}
			a.logger.Info("batch started", "dir", args[0], "files", len(files), "workers", a.cfg.Defaults.Workers)

			pp := parallel.NewParallelProcessor(a.cfg.Defaults.Workers, ex, ex.Observer())
			docs, stats := pp.ProcessFiles(cmd.Context(), files)
			routed := ex.Router().GetMetrics().GetSummary()
			a.logger.Info("batch complete",
				"batch_id", stats.BatchID,
				"passed", stats.Passed,
				"failed", stats.Failed,
				"errors", stats.Errored,
				"elapsed_ms", stats.TotalDuration.Milliseconds(),
				slog.Group("router",
					"files_loaded", routed["files_processed"],
					"file_types", routed["file_type_counts"],
					"load_errors", routed["error_counts"],
					"load_ms", routed["processing_time_ms"],
				),
			)

			rendered, err := formatters.Export(a.cfg.Defaults.Format, docs, a.formatterOptions(cmd.OutOrStdout(), true))
			if err != nil {
				return err
			}
			if err := emit(cmd.OutOrStdout(), outputFile, rendered); err != nil {
				return err
			}

			if xlsxPath != "" {
				if err := report.NewService(a.logger).WriteBatchXLSX(xlsxPath, docs, stats); err != nil {
					return err
				}
			}
			if stats.Errored > 0 {
				return fmt.Errorf("%d of %d files could not be processed", stats.Errored, stats.TotalFiles)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent workers (default from config)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into subdirectories")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write results to this file instead of stdout")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write an XLSX summary to this file")
	return cmd
}
