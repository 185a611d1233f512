// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package selection picks the winning span and keeps the reasoning behind
// the choice for diagnostics.
package selection

import (
	"legal-extract/internal/scoring"
)

// Failure reasons when no span can be selected.
const (
	NoCandidateSpans      = "NO_CANDIDATE_SPANS"
	NoValidCandidateSpans = "NO_VALID_CANDIDATE_SPANS"
)

// Result holds either the selected span or the reason nothing was selected.
type Result struct {
	Selected      *scoring.ScoredSpan `json:"selected,omitempty"`
	FailureReason string              `json:"failure_reason,omitempty"`
}

// SelectedTokenIDs returns the selected span's token ids, or nil.
func (r Result) SelectedTokenIDs() []string {
	if r.Selected == nil {
		return nil
	}
	return r.Selected.Validated.Span.TokenIDs
}

// Select returns the highest scoring valid span. Ties go to the span that
// came first, which is the earlier anchor in reading order.
func Select(scored []scoring.ScoredSpan) Result {
	if len(scored) == 0 {
		return Result{FailureReason: NoCandidateSpans}
	}
	best := -1
	for i, s := range scored {
		if !s.Validated.IsValid {
			continue
		}
		if best < 0 || s.Score > scored[best].Score {
			best = i
		}
	}
	if best < 0 {
		return Result{FailureReason: NoValidCandidateSpans}
	}
	selected := scored[best]
	return Result{Selected: &selected}
}

// Audit is the full scored candidate set together with the outcome. Nothing
// downstream reads it to make decisions.
type Audit struct {
	Candidates []scoring.ScoredSpan `json:"candidates"`
	Selection  Result               `json:"selection"`
}

// BuildAudit records every candidate, valid or not.
func BuildAudit(scored []scoring.ScoredSpan, result Result) Audit {
	candidates := make([]scoring.ScoredSpan, len(scored))
	copy(candidates, scored)
	return Audit{Candidates: candidates, Selection: result}
}
