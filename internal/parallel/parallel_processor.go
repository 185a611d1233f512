// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"

	"legal-extract/internal/contract"
	"legal-extract/internal/formatters"
	"legal-extract/internal/observability"
)

// ParallelProcessor extracts many files concurrently
type ParallelProcessor struct {
	workers   int
	extractor Extractor
	observer  *observability.StandardObserver
}

// ProcessingStats tracks parallel processing statistics
type ProcessingStats struct {
	BatchID       string        `json:"batch_id"`
	TotalFiles    int           `json:"total_files"`
	Passed        int           `json:"passed"`
	Failed        int           `json:"failed"`
	Errored       int           `json:"errored"`
	TotalDuration time.Duration `json:"total_duration_ms"`
	WorkerCount   int           `json:"worker_count"`
	AvgFileTime   time.Duration `json:"avg_file_time_ms"`
}

// DefaultWorkers caps the worker count at eight.
func DefaultWorkers() int {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8 // Cap at 8 workers to avoid resource exhaustion
	}
	return workers
}

// NewParallelProcessor creates a new parallel processor. workers < 1 uses
// DefaultWorkers.
func NewParallelProcessor(workers int, extractor Extractor, observer *observability.StandardObserver) *ParallelProcessor {
	if workers < 1 {
		workers = DefaultWorkers()
	}
	return &ParallelProcessor{
		workers:   workers,
		extractor: extractor,
		observer:  observer,
	}
}

// ProgressCallback is called when a file is completed
type ProgressCallback func(completed, total int, currentFile string)

// ProcessFiles processes multiple files in parallel
func (pp *ParallelProcessor) ProcessFiles(ctx context.Context, filePaths []string) ([]formatters.Document, *ProcessingStats) {
	return pp.ProcessFilesWithProgress(ctx, filePaths, nil)
}

// ProcessFilesWithProgress processes multiple files in parallel with a
// progress callback. Documents come back sorted by path whatever order the
// workers finish in.
func (pp *ParallelProcessor) ProcessFilesWithProgress(ctx context.Context, filePaths []string, progressCallback ProgressCallback) ([]formatters.Document, *ProcessingStats) {
	start := time.Now()
	batchID := uuid.NewString()
	finishTiming := pp.observer.StartTiming("parallel_processor", "process_files", batchID)

	pool := NewWorkerPool(ctx, pp.workers, pp.extractor, pp.observer)
	pool.Start()

	// Submit jobs in a separate goroutine to prevent deadlock
	jobCount := len(filePaths)
	submitted := make(chan int, 1)
	go func() {
		defer pool.Close()
		n := 0
		for _, filePath := range filePaths {
			if !pool.Submit(&Job{JobID: uuid.NewString(), FilePath: filePath}) {
				break
			}
			n++
		}
		submitted <- n
	}()

	go pool.Stop()

	docs := make([]formatters.Document, 0, jobCount)
	totalDuration := time.Duration(0)
	for result := range pool.Results() {
		docs = append(docs, result.Document)
		totalDuration += result.Duration
		if progressCallback != nil {
			progressCallback(len(docs), jobCount, result.Document.Path)
		}
	}

	// Files never queued because the context was cancelled still get a row.
	queued := make(map[string]bool, len(docs))
	for _, d := range docs {
		queued[d.Path] = true
	}
	if <-submitted < jobCount {
		for _, p := range filePaths {
			if !queued[p] {
				docs = append(docs, formatters.Document{Path: p, Err: context.Cause(ctx)})
			}
		}
	}

	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })

	stats := &ProcessingStats{
		BatchID:       batchID,
		TotalFiles:    jobCount,
		TotalDuration: time.Since(start),
		WorkerCount:   pp.workers,
		AvgFileTime:   totalDuration / time.Duration(max(len(docs), 1)),
	}
	for _, d := range docs {
		switch {
		case d.Err != nil || d.Result == nil:
			stats.Errored++
		case d.Result.Status() == contract.StatusPass:
			stats.Passed++
		default:
			stats.Failed++
		}
	}

	finishTiming(true, map[string]interface{}{
		"total_files":  stats.TotalFiles,
		"passed":       stats.Passed,
		"failed":       stats.Failed,
		"errored":      stats.Errored,
		"worker_count": stats.WorkerCount,
		"duration_ms":  stats.TotalDuration.Milliseconds(),
	})

	return docs, stats
}
