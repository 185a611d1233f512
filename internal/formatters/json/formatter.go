// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"
	"strings"

	"legal-extract/internal/contract"
	"legal-extract/internal/formatters"
	"legal-extract/internal/formatters/shared"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Result envelope as JSON; one entry per line in batch mode"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

// Format writes a single result as the bare envelope, checked against the
// envelope schema. Batch output is JSON Lines, one entry per document, with
// every result checked the same way.
func (f *Formatter) Format(docs []formatters.Document, options formatters.FormatterOptions) (string, error) {
	if !options.Batch && len(docs) == 1 {
		if docs[0].Err != nil {
			return "", fmt.Errorf("%s: %w", docs[0].Path, docs[0].Err)
		}
		data, err := contract.Marshal(docs[0].Result)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	entries, err := shared.ConvertDocuments(docs)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return "", fmt.Errorf("error formatting JSON: %w", err)
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.Write(data)
	}
	return b.String(), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
