// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-extract/internal/scoring"
	"legal-extract/internal/spans"
	"legal-extract/internal/validation"
)

func candidate(start string, valid bool, score float64) scoring.ScoredSpan {
	v := validation.ValidatedSpan{
		Span:     spans.CandidateSpan{StartTokenID: start, TokenIDs: []string{start}},
		IsValid:  valid,
		Failures: []string{},
	}
	if !valid {
		v.Failures = []string{validation.SpanTooShort}
	}
	return scoring.ScoredSpan{Validated: v, Score: score}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name       string
		scored     []scoring.ScoredSpan
		wantStart  string
		wantReason string
	}{
		{name: "no candidates", wantReason: NoCandidateSpans},
		{
			name:       "none valid",
			scored:     []scoring.ScoredSpan{candidate("a", false, 0), candidate("b", false, 0)},
			wantReason: NoValidCandidateSpans,
		},
		{
			name:      "highest score",
			scored:    []scoring.ScoredSpan{candidate("a", true, 1.5), candidate("b", true, 2.5), candidate("c", true, 2.0)},
			wantStart: "b",
		},
		{
			name:      "tie keeps earlier",
			scored:    []scoring.ScoredSpan{candidate("a", false, 0), candidate("b", true, 2), candidate("c", true, 2)},
			wantStart: "b",
		},
		{
			name:      "negative scores still selectable",
			scored:    []scoring.ScoredSpan{candidate("a", true, -0.5)},
			wantStart: "a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.scored)
			if tt.wantReason != "" {
				assert.Nil(t, got.Selected)
				assert.Nil(t, got.SelectedTokenIDs())
				assert.Equal(t, tt.wantReason, got.FailureReason)
				return
			}
			require.NotNil(t, got.Selected)
			assert.Empty(t, got.FailureReason)
			assert.Equal(t, tt.wantStart, got.Selected.Validated.Span.StartTokenID)
			assert.Equal(t, []string{tt.wantStart}, got.SelectedTokenIDs())
		})
	}
}

func TestBuildAudit_KeepsEveryCandidate(t *testing.T) {
	scored := []scoring.ScoredSpan{candidate("a", false, 0), candidate("b", true, 1)}
	result := Select(scored)
	audit := BuildAudit(scored, result)

	assert.Len(t, audit.Candidates, 2)
	assert.Equal(t, result, audit.Selection)

	scored[0].Score = 99
	assert.Zero(t, audit.Candidates[0].Score)
}
