// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package validation applies the structural checks every candidate span must
// pass before it can be scored.
package validation

import (
	"legal-extract/internal/evidence"
	"legal-extract/internal/layout"
	"legal-extract/internal/spans"
)

// Failure codes, reported in this order.
const (
	SpanTooShort         = "SPAN_TOO_SHORT"
	PageGap              = "PAGE_GAP"
	NonContiguous        = "NON_CONTIGUOUS"
	AnchorOverlap        = "ANCHOR_OVERLAP"
	TokenNotFound        = "TOKEN_NOT_FOUND"
	LowConfidenceDensity = "LOW_CONFIDENCE_DENSITY"
	HeadingIntrusion     = "HEADING_INTRUSION"
)

const (
	minSpanTokens      = 10
	maxPageSpan        = 3
	densityWindow      = 50
	minConfidentShare  = 0.6
	minIntrusionTokens = 2
)

// ValidatedSpan carries a candidate with every structural failure it hit.
type ValidatedSpan struct {
	Span     spans.CandidateSpan `json:"span"`
	IsValid  bool                `json:"is_valid"`
	Failures []string            `json:"validation_failures"`
}

// Validate checks each candidate independently. Failures accumulate; the
// density and intrusion checks only run when every token id resolves.
func Validate(ix *evidence.Index, ordered []string, candidates []spans.CandidateSpan) []ValidatedSpan {
	position := make(map[string]int, len(ordered))
	for i, id := range ordered {
		position[id] = i
	}
	anchorIDs := make(map[string]struct{})
	for _, c := range candidates {
		for _, id := range c.Anchor.TokenIDs {
			anchorIDs[id] = struct{}{}
		}
	}

	out := make([]ValidatedSpan, 0, len(candidates))
	for _, c := range candidates {
		failures := []string{}

		if len(c.TokenIDs) < minSpanTokens {
			failures = append(failures, SpanTooShort)
		}
		if c.PageEnd < c.PageStart || c.PageEnd-c.PageStart > maxPageSpan {
			failures = append(failures, PageGap)
		}
		if !contiguous(c.TokenIDs, position) {
			failures = append(failures, NonContiguous)
		}
		if _, ok := anchorIDs[c.StartTokenID]; ok {
			failures = append(failures, AnchorOverlap)
		}

		tokens, complete := resolve(ix, c.TokenIDs)
		if !complete {
			failures = append(failures, TokenNotFound)
		} else {
			if lowConfidenceDensity(tokens) {
				failures = append(failures, LowConfidenceDensity)
			}
			if containsHeading(ix, c.TokenIDs) {
				failures = append(failures, HeadingIntrusion)
			}
		}

		out = append(out, ValidatedSpan{Span: c, IsValid: len(failures) == 0, Failures: failures})
	}
	return out
}

func contiguous(ids []string, position map[string]int) bool {
	if len(ids) == 0 {
		return false
	}
	start, ok := position[ids[0]]
	if !ok {
		return false
	}
	for offset, id := range ids {
		if pos, ok := position[id]; !ok || pos != start+offset {
			return false
		}
	}
	return true
}

func resolve(ix *evidence.Index, ids []string) ([]evidence.Token, bool) {
	tokens := make([]evidence.Token, 0, len(ids))
	for _, id := range ids {
		loc, ok := ix.Lookup(id)
		if !ok {
			return nil, false
		}
		tokens = append(tokens, loc.Token)
	}
	return tokens, true
}

// lowConfidenceDensity reports whether any window of densityWindow tokens has
// too few tokens with a confidence value. Shorter spans are never flagged.
func lowConfidenceDensity(tokens []evidence.Token) bool {
	if len(tokens) < densityWindow {
		return false
	}
	present := 0
	for i, t := range tokens {
		if t.HasConfidence() {
			present++
		}
		if i >= densityWindow && tokens[i-densityWindow].HasConfidence() {
			present--
		}
		if i >= densityWindow-1 && float64(present)/densityWindow < minConfidentShare {
			return true
		}
	}
	return false
}

// containsHeading looks for an upper-case group of two or more tokens using
// the anchor geometry, without phrase matching or a confidence requirement.
func containsHeading(ix *evidence.Index, ids []string) bool {
	found := false
	scanner := layout.GroupScanner{Index: ix, Eligible: layout.IsHeadingWord, Stage: "validation"}
	// Every id resolved already, so Scan cannot fail here.
	_ = scanner.Scan(ids, func(g layout.HeadingGroup) bool {
		if len(g.Tokens) >= minIntrusionTokens {
			found = true
			return false
		}
		return true
	})
	return found
}
