// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package report renders a batch run as an XLSX workbook for manual review.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"legal-extract/internal/contract"
	"legal-extract/internal/formatters"
	"legal-extract/internal/parallel"
)

const (
	ResultsSheet = "Results"
	SummarySheet = "Summary"

	// descriptions longer than this are cut in the workbook; the envelope
	// keeps the full text
	maxDescription = 2000
)

var resultHeaders = []string{
	"File",
	"Document ID",
	"Status",
	"Reason / Error",
	"Page Start",
	"Page End",
	"Corrections",
	"Legal Description",
}

// Service produces XLSX bytes for batch runs.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BatchXLSX returns a workbook with one row per document and a summary sheet.
// stats may be nil.
func (s *Service) BatchXLSX(docs []formatters.Document, stats *parallel.ProcessingStats) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes Results.
	if err := f.SetSheetName(f.GetSheetName(0), ResultsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, err
	}
	activeIndex, _ := f.GetSheetIndex(ResultsSheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range resultHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(ResultsSheet, cell, h)
	}

	passed, failed, errored := 0, 0, 0
	for i, d := range docs {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(ResultsSheet, cell, v)
		}

		write(1, d.Path)
		write(2, d.DocumentID)
		switch r := d.Result.(type) {
		case contract.Pass:
			passed++
			write(3, contract.StatusPass)
			write(5, r.FinalDescription.PageStart)
			write(6, r.FinalDescription.PageEnd)
			write(7, len(r.Trace.Corrections))
			write(8, truncate(r.FinalDescription.Text, maxDescription))
		case contract.Fail:
			failed++
			write(3, contract.StatusFail)
			write(4, r.Reason)
		default:
			errored++
			write(3, "ERROR")
			if d.Err != nil {
				write(4, d.Err.Error())
			}
		}
	}

	_ = f.SetColWidth(ResultsSheet, "A", "A", 48) // path
	_ = f.SetColWidth(ResultsSheet, "B", "B", 24) // document id
	_ = f.SetColWidth(ResultsSheet, "C", "C", 10) // status
	_ = f.SetColWidth(ResultsSheet, "D", "D", 36) // reason
	_ = f.SetColWidth(ResultsSheet, "E", "G", 12) // pages, corrections
	_ = f.SetColWidth(ResultsSheet, "H", "H", 80) // description
	if len(docs) > 0 {
		_ = f.SetPanes(ResultsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	}

	summary := [][2]any{
		{"Files", len(docs)},
		{"Passed", passed},
		{"Failed", failed},
		{"Errors", errored},
	}
	if stats != nil {
		summary = append([][2]any{{"Batch ID", stats.BatchID}}, summary...)
		summary = append(summary,
			[2]any{"Workers", stats.WorkerCount},
			[2]any{"Duration (ms)", stats.TotalDuration.Milliseconds()},
		)
	}
	for i, kv := range summary {
		_ = f.SetCellValue(SummarySheet, fmt.Sprintf("A%d", i+1), kv[0])
		_ = f.SetCellValue(SummarySheet, fmt.Sprintf("B%d", i+1), kv[1])
	}
	_ = f.SetColWidth(SummarySheet, "A", "A", 16)
	_ = f.SetColWidth(SummarySheet, "B", "B", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("report.xlsx.ok",
		"rows", len(docs),
		"passed", passed,
		"failed", failed,
		"errors", errored,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// WriteBatchXLSX renders the workbook and writes it to path.
func (s *Service) WriteBatchXLSX(path string, docs []formatters.Document, stats *parallel.ProcessingStats) error {
	data, err := s.BatchXLSX(docs, stats)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
