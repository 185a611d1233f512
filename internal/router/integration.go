// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"legal-extract/internal/observability"
	"legal-extract/internal/preprocessors"
	"legal-extract/internal/preprocessors/bundlejson"
	"legal-extract/internal/preprocessors/pdftext"
)

// RegisterDefaultPreprocessors registers all built-in preprocessors
func RegisterDefaultPreprocessors(router *FileRouter) {
	// Evidence bundles serialized by an upstream OCR engine
	router.RegisterPreprocessor("bundle_json", func() preprocessors.Preprocessor {
		return bundlejson.New()
	})

	// Born-digital PDFs with a text layer
	router.RegisterPreprocessor("pdf_text", func() preprocessors.Preprocessor {
		return pdftext.New()
	})
}

// NewDefaultRouter returns a router with the built-in preprocessors ready.
func NewDefaultRouter(observer *observability.StandardObserver) (*FileRouter, error) {
	fr := NewFileRouter(observer)
	RegisterDefaultPreprocessors(fr)
	if err := fr.InitializePreprocessors(); err != nil {
		return nil, err
	}
	return fr, nil
}
