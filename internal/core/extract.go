// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core holds the file-level extraction shared by the extract, batch
// and watch commands.
package core

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"legal-extract/internal/config"
	"legal-extract/internal/formatters"
	"legal-extract/internal/observability"
	"legal-extract/internal/pipeline"
	"legal-extract/internal/router"
)

// ExtractConfig holds configuration for extraction operations.
type ExtractConfig struct {
	Debug bool
	// Config supplies pipeline parameters and the lexicon path. Nil means
	// built-in defaults.
	Config *config.Config
	// LogWriter receives observability output; defaults to stderr.
	LogWriter io.Writer
}

// Extractor routes input files to a preprocessor and runs the pipeline on
// the resulting bundle. It is safe for concurrent use.
type Extractor struct {
	router   *router.FileRouter
	options  pipeline.Options
	observer *observability.StandardObserver
}

// NewObserver builds the observer used for a run.
func NewObserver(debug bool, w io.Writer) *observability.StandardObserver {
	if debug {
		return observability.NewDebugObserver(w).StandardObserver
	}
	return observability.NewStandardObserver(observability.ObservabilityMetrics, w)
}

// NewExtractor loads the lexicon and prepares the router.
func NewExtractor(cfg ExtractConfig) (*Extractor, error) {
	w := cfg.LogWriter
	if w == nil {
		w = os.Stderr
	}
	c := cfg.Config
	if c == nil {
		var err error
		if c, err = config.LoadConfig(""); err != nil {
			return nil, err
		}
	}

	lex, err := c.LoadLexicon()
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}

	observer := NewObserver(cfg.Debug, w)
	options := c.PipelineOptions(lex)
	options.Observer = observer

	fr, err := router.NewDefaultRouter(observer)
	if err != nil {
		return nil, err
	}

	return &Extractor{
		router:   fr,
		options:  options,
		observer: observer,
	}, nil
}

// Observer returns the observer shared by every run of this extractor.
func (e *Extractor) Observer() *observability.StandardObserver {
	return e.observer
}

// Router returns the file router.
func (e *Extractor) Router() *router.FileRouter {
	return e.router
}

// ExtractFile runs the whole pipeline on one file. Input and integrity errors
// are carried in Document.Err.
func (e *Extractor) ExtractFile(path string) formatters.Document {
	doc := formatters.Document{Path: path}
	report, err := e.Audit(path)
	if err != nil {
		doc.Err = err
		return doc
	}
	doc.DocumentID = report.DocumentID
	doc.Result = report.Result
	return doc
}

// Audit is ExtractFile keeping the pipeline's intermediate records.
func (e *Extractor) Audit(path string) (*pipeline.Report, error) {
	bundle, err := e.router.Load(path)
	if err != nil {
		return nil, err
	}
	report, err := pipeline.RunWithAudit(bundle, e.options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return report, nil
}

// CollectFiles lists the files under root that the router can process, in
// lexical order. skip, when non-nil, excludes matching paths.
func (e *Extractor) CollectFiles(root string, recursive bool, skip func(path string) bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if skip != nil && skip(path) {
			return nil
		}
		if ok, _ := e.router.CanProcessFile(path); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
