// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package spans proposes one candidate body span per anchor.
package spans

import (
	"legal-extract/internal/anchors"
	"legal-extract/internal/evidence"
)

// Policy bounds how far a candidate expands past its anchor.
type Policy struct {
	// MaxTokens caps the candidate length.
	MaxTokens int `yaml:"max_tokens" json:"max_tokens"`
	// MaxPageSpan is the largest page_end - page_start a candidate may reach.
	MaxPageSpan int `yaml:"max_page_span" json:"max_page_span"`
	// StopAtAnchor ends the candidate at the next anchor token.
	StopAtAnchor bool `yaml:"stop_at_anchor" json:"stop_at_anchor"`
}

// DefaultPolicy returns the expansion policy used when none is configured.
func DefaultPolicy() Policy {
	return Policy{MaxTokens: 400, MaxPageSpan: 3, StopAtAnchor: true}
}

// CandidateSpan is a contiguous run of ordered token ids following an anchor.
type CandidateSpan struct {
	Anchor       anchors.Record `json:"anchor"`
	TokenIDs     []string       `json:"token_ids"`
	PageStart    int            `json:"page_start"`
	PageEnd      int            `json:"page_end"`
	StartTokenID string         `json:"start_token_id"`
}

// Expand walks forward in reading order from the token after each anchor's
// last token. Ids the index does not know are kept in the span so that
// validation can report them; they never stop expansion.
func Expand(ix *evidence.Index, ordered []string, records []anchors.Record, p Policy) []CandidateSpan {
	position := make(map[string]int, len(ordered))
	for i, id := range ordered {
		position[id] = i
	}
	anchorIDs := anchors.TokenSet(records)

	out := make([]CandidateSpan, 0, len(records))
	for _, a := range records {
		span := CandidateSpan{Anchor: a, PageStart: a.PageNumber, PageEnd: a.PageNumber}
		start := len(ordered)
		if n := len(a.TokenIDs); n > 0 {
			if pos, ok := position[a.TokenIDs[n-1]]; ok {
				start = pos + 1
			}
		}

		for i := start; i < len(ordered); i++ {
			if p.MaxTokens > 0 && len(span.TokenIDs) >= p.MaxTokens {
				break
			}
			id := ordered[i]
			if _, isAnchor := anchorIDs[id]; isAnchor && p.StopAtAnchor {
				break
			}
			page := span.PageEnd
			if loc, ok := ix.Lookup(id); ok {
				page = loc.PageNumber
			}
			if len(span.TokenIDs) == 0 {
				span.PageStart = page
				span.StartTokenID = id
			} else if page-span.PageStart > p.MaxPageSpan {
				break
			}
			span.PageEnd = page
			span.TokenIDs = append(span.TokenIDs, id)
		}
		out = append(out, span)
	}
	return out
}
