// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package preprocessors turns input files into evidence bundles.
package preprocessors

import (
	"path/filepath"
	"strings"

	"legal-extract/internal/evidence"
	"legal-extract/internal/observability"
)

// Preprocessor interface defines methods for converting a file into an
// evidence bundle
type Preprocessor interface {
	// CanProcess checks if this preprocessor can handle the given file
	CanProcess(filePath string) bool

	// Process reads the file and returns its evidence bundle
	Process(filePath string) (*evidence.Bundle, error)

	// GetName returns the name of this preprocessor
	GetName() string

	// GetSupportedExtensions returns the file extensions this preprocessor supports
	GetSupportedExtensions() []string

	// SetObserver sets the observability component
	SetObserver(observer *observability.StandardObserver)
}

// HasExtension reports whether filePath ends in one of exts, ignoring case.
func HasExtension(filePath string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// DocumentID derives a bundle document id from a file name.
func DocumentID(filePath string) string {
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
