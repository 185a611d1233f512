// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package contract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-extract/internal/correction"
	"legal-extract/internal/output"
	"legal-extract/internal/uncertainty"
)

func passAssembly() output.Assembly {
	return output.Assembly{
		FinalDescription: &output.Final{Text: "Beginning at a point", PageStart: 2, PageEnd: 2},
		Trace: &output.Trace{
			SelectedSpanTokenIDs: []string{"t1", "t2"},
			Corrections: []correction.Record{
				{Type: correction.SymbolRepair, Before: "45º", After: "45°", TokenIDs: []string{"t2"}},
			},
			Uncertainties: []uncertainty.Record{},
		},
	}
}

func failAssembly() output.Assembly {
	return output.FromFailure(uncertainty.ConflictingBearings, []uncertainty.Record{
		{Type: uncertainty.ConflictingBearings, TokenIDs: []string{"t1"}, PageNumber: 1},
	})
}

func TestValidate(t *testing.T) {
	uncertain := uncertainty.Record{Type: uncertainty.UnresolvedHyphenation, TokenIDs: []string{"t1"}}

	tests := []struct {
		name   string
		mutate func(*output.Assembly)
		base   func() output.Assembly
		want   string
	}{
		{name: "pass", base: passAssembly, want: StatusPass},
		{name: "fail passes reason through", base: failAssembly, want: uncertainty.ConflictingBearings},
		{name: "both present", base: passAssembly, mutate: func(a *output.Assembly) {
			a.Failure = failAssembly().Failure
		}, want: InvalidOutcomeCombination},
		{name: "neither present", base: passAssembly, mutate: func(a *output.Assembly) {
			a.FinalDescription = nil
			a.Trace = nil
		}, want: InvalidOutcomeCombination},
		{name: "missing trace", base: passAssembly, mutate: func(a *output.Assembly) {
			a.Trace = nil
		}, want: MissingTrace},
		{name: "empty text", base: passAssembly, mutate: func(a *output.Assembly) {
			a.FinalDescription.Text = ""
		}, want: EmptyFinalText},
		{name: "no selected tokens", base: passAssembly, mutate: func(a *output.Assembly) {
			a.Trace.SelectedSpanTokenIDs = nil
		}, want: MissingSelectedSpanTokens},
		{name: "unknown correction", base: passAssembly, mutate: func(a *output.Assembly) {
			a.Trace.Corrections[0].Type = "SPELLING_FIX"
		}, want: InvalidCorrectionType},
		{name: "correction without tokens", base: passAssembly, mutate: func(a *output.Assembly) {
			a.Trace.Corrections[0].TokenIDs = nil
		}, want: MissingCorrectionTokens},
		{name: "uncertainty without tokens", base: passAssembly, mutate: func(a *output.Assembly) {
			a.Trace.Uncertainties = []uncertainty.Record{{Type: uncertainty.UnresolvedHyphenation}}
		}, want: MissingUncertaintyTokens},
		{name: "uncertainties present", base: passAssembly, mutate: func(a *output.Assembly) {
			a.Trace.Uncertainties = []uncertainty.Record{uncertain}
		}, want: UncertaintiesPresent},
		{name: "failure status", base: failAssembly, mutate: func(a *output.Assembly) {
			a.Failure.Status = "CONTINUE"
		}, want: InvalidFailureStatus},
		{name: "failure reason", base: failAssembly, mutate: func(a *output.Assembly) {
			a.Failure.Reason = ""
		}, want: EmptyFailureReason},
		{name: "failure uncertainties", base: failAssembly, mutate: func(a *output.Assembly) {
			a.Failure.Uncertainties = nil
		}, want: MissingFailureUncertainties},
		{name: "failure with empty uncertainties", base: failAssembly, mutate: func(a *output.Assembly) {
			a.Failure.Uncertainties = []uncertainty.Record{}
		}, want: uncertainty.ConflictingBearings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.base()
			if tt.mutate != nil {
				tt.mutate(&a)
			}
			got := Validate(a)
			switch r := got.(type) {
			case Pass:
				assert.Equal(t, tt.want, StatusPass)
				assert.Equal(t, *a.FinalDescription, r.FinalDescription)
			case Fail:
				assert.Equal(t, tt.want, r.Reason)
			default:
				t.Fatalf("unexpected result %T", got)
			}
		})
	}
}

func TestMarshal_Shapes(t *testing.T) {
	pass := Validate(passAssembly())
	data, err := Marshal(pass)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.ElementsMatch(t, []string{"status", "final_description", "trace"}, keys(doc))
	assert.Equal(t, StatusPass, doc["status"])

	fail := Validate(failAssembly())
	data, err = Marshal(fail)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"FAIL","reason":"CONFLICTING_BEARINGS"}`, string(data))
}

func TestMarshal_PassWithoutCorrections(t *testing.T) {
	a := passAssembly()
	a.Trace.Corrections = nil
	data, err := Marshal(Validate(a))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"corrections":[]`)
	assert.Contains(t, string(data), `"uncertainties":[]`)
}

func TestMarshalJSON_MatchesEnvelope(t *testing.T) {
	r := Validate(passAssembly())
	direct, err := json.Marshal(r)
	require.NoError(t, err)
	viaEnvelope, err := Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, string(viaEnvelope), string(direct))
}

func TestValidateEnvelope_Rejects(t *testing.T) {
	tests := map[string]string{
		"pass with reason":   `{"status":"PASS","final_description":{"text":"x","page_start":1,"page_end":1},"trace":{"selected_span_token_ids":["a"],"corrections":[],"uncertainties":[]},"reason":"X"}`,
		"fail with trace":    `{"status":"FAIL","reason":"X","trace":{}}`,
		"fail empty reason":  `{"status":"FAIL","reason":""}`,
		"unknown status":     `{"status":"MAYBE"}`,
		"pass uncertainties": `{"status":"PASS","final_description":{"text":"x","page_start":1,"page_end":1},"trace":{"selected_span_token_ids":["a"],"corrections":[],"uncertainties":[{"type":"X"}]}}`,
		"not json":           `{`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, ValidateEnvelope([]byte(doc)))
		})
	}
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
