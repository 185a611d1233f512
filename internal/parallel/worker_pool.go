// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"legal-extract/internal/formatters"
	"legal-extract/internal/observability"
)

// Extractor turns one input file into a result document.
type Extractor interface {
	ExtractFile(path string) formatters.Document
}

// WorkerPool runs extraction jobs on a fixed number of goroutines
type WorkerPool struct {
	workers   int
	extractor Extractor
	jobs      chan *Job
	results   chan *Result
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	observer  *observability.StandardObserver
}

// Job represents a file extraction task
type Job struct {
	JobID    string
	FilePath string
}

// Result represents the outcome of one job
type Result struct {
	JobID    string
	Document formatters.Document
	Duration time.Duration
}

// NewWorkerPool creates a new worker pool. Cancelling ctx stops workers
// between jobs.
func NewWorkerPool(ctx context.Context, workers int, extractor Extractor, observer *observability.StandardObserver) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool{
		workers:   workers,
		extractor: extractor,
		jobs:      make(chan *Job, workers*2),
		results:   make(chan *Result, workers*2),
		ctx:       ctx,
		cancel:    cancel,
		observer:  observer,
	}
}

// Start initializes worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Close signals that no more jobs will be submitted
func (wp *WorkerPool) Close() {
	close(wp.jobs)
}

// Stop waits for the workers to drain and releases the pool
func (wp *WorkerPool) Stop() {
	wp.wg.Wait()
	close(wp.results)
	wp.cancel()
}

// Submit adds a job to the queue. It reports false when the pool was
// cancelled before the job could be queued.
func (wp *WorkerPool) Submit(job *Job) bool {
	select {
	case wp.jobs <- job:
		return true
	case <-wp.ctx.Done():
		return false
	}
}

// Results returns the results channel
func (wp *WorkerPool) Results() <-chan *Result {
	return wp.results
}

// worker processes jobs from the queue
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobs {
		var result *Result
		if err := wp.ctx.Err(); err != nil {
			result = &Result{
				JobID:    job.JobID,
				Document: formatters.Document{Path: job.FilePath, Err: fmt.Errorf("cancelled: %w", err)},
			}
		} else {
			result = wp.processJob(job, id)
		}
		wp.results <- result
	}
}

// processJob executes a single job
func (wp *WorkerPool) processJob(job *Job, workerID int) *Result {
	start := time.Now()
	finishTiming := wp.observer.StartTiming("worker_pool", "process_job", job.FilePath)

	doc := wp.extractor.ExtractFile(job.FilePath)
	duration := time.Since(start)

	meta := map[string]interface{}{
		"worker_id":   workerID,
		"job_id":      job.JobID,
		"duration_ms": duration.Milliseconds(),
	}
	if doc.Result != nil {
		meta["status"] = doc.Result.Status()
	}
	if doc.Err != nil {
		meta["error"] = doc.Err.Error()
	}
	finishTiming(doc.Err == nil, meta)

	return &Result{
		JobID:    job.JobID,
		Document: doc,
		Duration: duration,
	}
}
