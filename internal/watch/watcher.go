// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package watch re-runs extraction whenever an input file appears or changes
// in a watched directory and writes the envelope next to it.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"legal-extract/internal/contract"
	"legal-extract/internal/formatters"
	"legal-extract/internal/paths"
)

// Extractor turns one input file into a result document.
type Extractor interface {
	ExtractFile(path string) formatters.Document
}

// Config controls a watch session.
type Config struct {
	Root        string
	Recursive   bool
	InitialScan bool          // extract files already present at start
	Debounce    time.Duration // coalesce rapid write/rename bursts
	// OutputSuffix replaces the input extension for result files.
	OutputSuffix string
	// Supported filters the files worth extracting.
	Supported func(path string) bool
	Logger    *slog.Logger
}

// Watcher extracts files as they land in Root.
type Watcher struct {
	cfg       Config
	extractor Extractor
	logger    *slog.Logger
}

// New validates cfg and returns a watcher.
func New(cfg Config, extractor Extractor) (*Watcher, error) {
	if cfg.Root == "" {
		return nil, errors.New("no root provided")
	}
	if err := paths.ValidateResultSuffix(cfg.OutputSuffix); err != nil {
		return nil, fmt.Errorf("output suffix: %w", err)
	}
	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("watch root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch root %s is not a directory", cfg.Root)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{cfg: cfg, extractor: extractor, logger: logger}, nil
}

func (w *Watcher) wanted(path string) bool {
	if paths.IsResultFile(path, w.cfg.OutputSuffix) {
		return false
	}
	if w.cfg.Supported != nil && !w.cfg.Supported(path) {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Error("failed to create fsnotify watcher", "error", err)
		return err
	}
	defer fw.Close()

	var initial []string
	err = filepath.WalkDir(w.cfg.Root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != w.cfg.Root && !w.cfg.Recursive {
				return filepath.SkipDir
			}
			return fw.Add(path)
		}
		if w.cfg.InitialScan && w.wanted(path) {
			initial = append(initial, path)
		}
		return nil
	})
	if err != nil {
		w.logger.Error("failed to add root directory", "root", w.cfg.Root, "error", err)
		return err
	}
	w.logger.Info("watching", "root", w.cfg.Root, "recursive", w.cfg.Recursive, "debounce", w.cfg.Debounce)

	for _, p := range initial {
		w.handle(p)
	}

	pending := map[string]struct{}{}
	var timer *time.Timer
	var fire <-chan time.Time
	flush := func() {
		batch := make([]string, 0, len(pending))
		for p := range pending {
			batch = append(batch, p)
		}
		clear(pending)
		sort.Strings(batch)
		for _, p := range batch {
			w.handle(p)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.logger.Info("watch stopped", "root", w.cfg.Root)
			return nil
		case e, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if e.Has(fsnotify.Create) && w.cfg.Recursive {
				if info, err := os.Stat(e.Name); err == nil && info.IsDir() {
					if err := fw.Add(e.Name); err != nil {
						w.logger.Warn("failed to add new directory to watcher", "path", e.Name, "error", err)
					}
					continue
				}
			}
			if !(e.Has(fsnotify.Create) || e.Has(fsnotify.Write) || e.Has(fsnotify.Rename)) || !w.wanted(e.Name) {
				continue
			}
			pending[e.Name] = struct{}{}
			if w.cfg.Debounce <= 0 {
				flush()
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.cfg.Debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			flush()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(path string) {
	out, err := w.Process(path)
	if err != nil {
		w.logger.Error("extraction failed", "path", path, "error", err)
		return
	}
	w.logger.Info("extracted", "path", path, "result", out)
}

// Process extracts path and writes its envelope to the result file. Files
// that cannot be read or fail integrity checks produce no result file.
func (w *Watcher) Process(path string) (string, error) {
	doc := w.extractor.ExtractFile(path)
	if doc.Err != nil {
		return "", doc.Err
	}
	data, err := contract.Marshal(doc.Result)
	if err != nil {
		return "", fmt.Errorf("failed to serialize result: %w", err)
	}
	out := paths.ResultPath(path, w.cfg.OutputSuffix)
	if err := writeFileAtomic(out, append(data, '\n')); err != nil {
		return "", err
	}
	w.logger.Debug("result written", "path", out, "status", doc.Result.Status(), "document_id", doc.DocumentID)
	return out, nil
}

// writeFileAtomic writes through a temporary file in the same directory so
// readers never observe a partial result.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write result: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move result into place: %w", err)
	}
	return nil
}
