// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"legal-extract/internal/evidence"
	"legal-extract/internal/observability"
	"legal-extract/internal/preprocessors"
)

// FileRouter picks the preprocessor that turns an input file into an
// evidence bundle
type FileRouter struct {
	registry      *PreprocessorRegistry
	preprocessors []preprocessors.Preprocessor
	metrics       *RouterMetrics
	observer      *observability.StandardObserver
}

// MaxFileSize is the default maximum file size the router will process (100 MB).
const MaxFileSize = int64(100 * 1024 * 1024)

// NewFileRouter creates a new file router. observer may be nil.
func NewFileRouter(observer *observability.StandardObserver) *FileRouter {
	return &FileRouter{
		registry:      NewPreprocessorRegistry(),
		preprocessors: make([]preprocessors.Preprocessor, 0),
		metrics:       NewRouterMetrics(),
		observer:      observer,
	}
}

// RegisterPreprocessor adds a preprocessor factory to the registry
func (fr *FileRouter) RegisterPreprocessor(name string, factory PreprocessorFactory) {
	fr.registry.Register(name, factory)
}

// InitializePreprocessors creates every registered preprocessor
func (fr *FileRouter) InitializePreprocessors() error {
	built, err := fr.registry.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize preprocessors: %w", err)
	}
	for _, p := range built {
		p.SetObserver(fr.observer)
	}
	fr.preprocessors = built
	return nil
}

// SupportedExtensions returns the sorted set of extensions some preprocessor
// accepts.
func (fr *FileRouter) SupportedExtensions() []string {
	seen := make(map[string]bool)
	var exts []string
	for _, p := range fr.preprocessors {
		for _, ext := range p.GetSupportedExtensions() {
			if !seen[ext] {
				seen[ext] = true
				exts = append(exts, ext)
			}
		}
	}
	sort.Strings(exts)
	return exts
}

// CanProcessFile determines if a file can be processed, with a reason when it
// cannot.
func (fr *FileRouter) CanProcessFile(filePath string) (bool, string) {
	cleanPath := filepath.Clean(filePath)
	info, err := os.Stat(cleanPath)
	if err != nil {
		return false, fmt.Sprintf("Cannot stat file: %v", err)
	}
	if info.IsDir() {
		return false, "Is a directory"
	}
	if info.Size() > MaxFileSize {
		return false, fmt.Sprintf("File too large (max: %dMB)", MaxFileSize/(1024*1024))
	}
	if fr.find(filePath) == nil {
		return false, "Unsupported file type"
	}
	return true, "Supported file type"
}

func (fr *FileRouter) find(filePath string) preprocessors.Preprocessor {
	for _, p := range fr.preprocessors {
		if p.CanProcess(filePath) {
			return p
		}
	}
	return nil
}

// Load converts filePath into an evidence bundle using the first capable
// preprocessor.
func (fr *FileRouter) Load(filePath string) (bundle *evidence.Bundle, err error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	fr.metrics.RecordFileType(ext)

	if ok, reason := fr.CanProcessFile(filePath); !ok {
		fr.metrics.RecordError("unsupported")
		return nil, fmt.Errorf("cannot process %s: %s", filePath, reason)
	}
	p := fr.find(filePath)

	if fr.observer != nil && fr.observer.DebugObserver != nil {
		fr.observer.DebugObserver.LogDetail("router",
			fmt.Sprintf("File: %s, Extension: %s, Preprocessor: %s", filepath.Base(filePath), ext, p.GetName()))
	}

	start := time.Now()
	// Recover from panics in preprocessors so one bad file does not end a batch
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("preprocessor panic in %s: %v", p.GetName(), r)
		}
		if err != nil {
			fr.metrics.RecordError(p.GetName())
			return
		}
		fr.metrics.RecordProcessing(p.GetName(), time.Since(start).Milliseconds())
	}()

	return p.Process(filePath)
}

// GetMetrics returns current router metrics
func (fr *FileRouter) GetMetrics() *RouterMetrics {
	return fr.metrics
}

// GetPreprocessorCount returns the number of initialized preprocessors
func (fr *FileRouter) GetPreprocessorCount() int {
	return len(fr.preprocessors)
}
