// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package bundlejson loads evidence bundles that were already produced by an
// OCR engine and serialized as JSON.
package bundlejson

import (
	"fmt"

	"legal-extract/internal/evidence"
	"legal-extract/internal/observability"
	"legal-extract/internal/preprocessors"
)

// Preprocessor reads .json evidence bundles.
type Preprocessor struct {
	observer *observability.StandardObserver
}

// New creates a bundle JSON preprocessor.
func New() *Preprocessor {
	return &Preprocessor{}
}

func (p *Preprocessor) GetName() string { return "bundle_json" }

func (p *Preprocessor) GetSupportedExtensions() []string { return []string{".json"} }

func (p *Preprocessor) SetObserver(observer *observability.StandardObserver) {
	p.observer = observer
}

func (p *Preprocessor) CanProcess(filePath string) bool {
	return preprocessors.HasExtension(filePath, p.GetSupportedExtensions())
}

// Process decodes and schema-checks the bundle.
func (p *Preprocessor) Process(filePath string) (*evidence.Bundle, error) {
	finish := p.observer.StartTiming("bundle_json", "load", filePath)

	b, err := evidence.LoadFile(filePath)
	if err != nil {
		finish(false, map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("bundle_json: %w", err)
	}
	finish(true, map[string]interface{}{"tokens": b.TokenCount(), "runs": len(b.Runs)})
	return b, nil
}
