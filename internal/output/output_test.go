// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-extract/internal/correction"
	"legal-extract/internal/uncertainty"
)

func TestAssemble(t *testing.T) {
	lines := []correction.CorrectedLine{
		{Text: "Beginning at a point", TokenIDs: []string{"p2-1"}, PageNumber: 2, Corrections: []correction.Record{}},
		{Text: "Northeast corner", TokenIDs: []string{"p3-1", "p3-2"}, PageNumber: 3, Corrections: []correction.Record{
			{Type: correction.HyphenationRepair, Before: "North-east corner", After: "Northeast corner", TokenIDs: []string{"p3-1", "p3-2"}},
		}},
		{Text: "of lot 4", TokenIDs: []string{"p3-3"}, PageNumber: 3, Corrections: []correction.Record{}},
	}
	selected := []string{"p2-1", "p3-1", "p3-2", "p3-3"}

	got := Assemble(selected, lines, uncertainty.Continuation{})
	assert.Nil(t, got.Failure)
	require.NotNil(t, got.FinalDescription)
	require.NotNil(t, got.Trace)
	assert.Equal(t, Final{Text: "Beginning at a point\nNortheast corner\nof lot 4", PageStart: 2, PageEnd: 3}, *got.FinalDescription)
	assert.Equal(t, selected, got.Trace.SelectedSpanTokenIDs)
	assert.Len(t, got.Trace.Corrections, 1)
	assert.NotNil(t, got.Trace.Uncertainties)
	assert.Empty(t, got.Trace.Uncertainties)

	selected[0] = "changed"
	assert.Equal(t, "p2-1", got.Trace.SelectedSpanTokenIDs[0])
}

func TestAssemble_NoLines(t *testing.T) {
	got := Assemble(nil, nil, uncertainty.Continuation{})
	assert.Equal(t, Final{}, *got.FinalDescription)
	assert.Empty(t, got.Trace.SelectedSpanTokenIDs)
}

func TestFromFailure(t *testing.T) {
	got := FromFailure("NO_CANDIDATE_SPANS", nil)
	assert.Nil(t, got.FinalDescription)
	assert.Nil(t, got.Trace)
	require.NotNil(t, got.Failure)
	assert.Equal(t, StatusFail, got.Failure.Status)
	assert.Equal(t, "NO_CANDIDATE_SPANS", got.Failure.Reason)
	assert.NotNil(t, got.Failure.Uncertainties)

	records := []uncertainty.Record{{Type: uncertainty.ConflictingBearings, TokenIDs: []string{"a"}}}
	gated := FromGate(uncertainty.Failure{Reason: uncertainty.ConflictingBearings, Uncertainties: records})
	assert.Equal(t, uncertainty.ConflictingBearings, gated.Failure.Reason)
	assert.Equal(t, records, gated.Failure.Uncertainties)
}
