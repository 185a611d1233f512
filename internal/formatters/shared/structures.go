// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"fmt"

	"legal-extract/internal/contract"
	"legal-extract/internal/formatters"
)

// Entry is one document in batch output. Result and Error are exclusive.
type Entry struct {
	Path       string             `json:"path" yaml:"path"`
	DocumentID string             `json:"document_id,omitempty" yaml:"document_id,omitempty"`
	Result     *contract.Envelope `json:"result,omitempty" yaml:"result,omitempty"`
	Error      string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// Envelope returns the envelope for r once its serialized form has passed the
// envelope schema.
func Envelope(r contract.Result) (*contract.Envelope, error) {
	if _, err := contract.Marshal(r); err != nil {
		return nil, err
	}
	env := contract.ToEnvelope(r)
	return &env, nil
}

// ConvertDocuments builds batch entries in input order. A result that fails
// the envelope schema stops the conversion.
func ConvertDocuments(docs []formatters.Document) ([]Entry, error) {
	entries := make([]Entry, 0, len(docs))
	for _, d := range docs {
		e := Entry{Path: d.Path, DocumentID: d.DocumentID}
		switch {
		case d.Err != nil:
			e.Error = d.Err.Error()
		case d.Result != nil:
			env, err := Envelope(d.Result)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", d.Path, err)
			}
			e.Result = env
		default:
			e.Error = "no result"
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Single returns the only document's envelope when docs holds exactly one
// successful result and batch wrapping is off.
func Single(docs []formatters.Document, options formatters.FormatterOptions) (*contract.Envelope, error) {
	if options.Batch || len(docs) != 1 {
		return nil, nil
	}
	if docs[0].Err != nil {
		return nil, fmt.Errorf("%s: %w", docs[0].Path, docs[0].Err)
	}
	if docs[0].Result == nil {
		return nil, fmt.Errorf("%s: no result", docs[0].Path)
	}
	env, err := Envelope(docs[0].Result)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", docs[0].Path, err)
	}
	return env, nil
}
