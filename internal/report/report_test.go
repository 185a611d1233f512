// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"legal-extract/internal/contract"
	"legal-extract/internal/formatters"
	"legal-extract/internal/output"
	"legal-extract/internal/parallel"
)

func docs() []formatters.Document {
	return []formatters.Document{
		{Path: "a.json", DocumentID: "a", Result: contract.Pass{
			FinalDescription: output.Final{Text: "Beginning at a point", PageStart: 2, PageEnd: 3},
		}},
		{Path: "b.json", DocumentID: "b", Result: contract.Fail{Reason: "NO_CANDIDATE_SPANS"}},
		{Path: "c.json", Err: errors.New("bundle does not match schema")},
	}
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestBatchXLSX(t *testing.T) {
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
	stats := &parallel.ProcessingStats{BatchID: "batch-1", WorkerCount: 2, TotalDuration: time.Second}

	data, err := svc.BatchXLSX(docs(), stats)
	require.NoError(t, err)
	f := open(t, data)

	rows, err := f.GetRows(ResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, resultHeaders, rows[0])
	assert.Equal(t, []string{"a.json", "a", "PASS", "", "2", "3", "0", "Beginning at a point"}, rows[1])
	assert.Equal(t, []string{"b.json", "b", "FAIL", "NO_CANDIDATE_SPANS"}, rows[2])
	assert.Equal(t, "ERROR", rows[3][2])
	assert.Equal(t, "bundle does not match schema", rows[3][3])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Batch ID", "batch-1"}, summary[0])
	assert.Equal(t, []string{"Passed", "1"}, summary[2])
	assert.Equal(t, []string{"Duration (ms)", "1000"}, summary[len(summary)-1])
}

func TestBatchXLSX_NoStats(t *testing.T) {
	data, err := NewService(nil).BatchXLSX(nil, nil)
	require.NoError(t, err)
	summary, err := open(t, data).GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Files", "0"}, summary[0])
}

func TestWriteBatchXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.xlsx")
	require.NoError(t, NewService(nil).WriteBatchXLSX(path, docs(), nil))
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, ResultsSheet, f.GetSheetName(0))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "N 4…", truncate("N 45°30'", 4))
	assert.Equal(t, 2000, len([]rune(truncate(strings.Repeat("°", 3000), 2000))))
}
