// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package contract is the terminal check on an assembled outcome. Its Result
// is the only value that leaves the pipeline.
package contract

import (
	"encoding/json"

	"legal-extract/internal/correction"
	"legal-extract/internal/output"
	"legal-extract/internal/uncertainty"
)

// Statuses.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// Contract violation reasons.
const (
	InvalidOutcomeCombination   = "INVALID_OUTCOME_COMBINATION"
	MissingTrace                = "MISSING_TRACE"
	EmptyFinalText              = "EMPTY_FINAL_TEXT"
	MissingSelectedSpanTokens   = "MISSING_SELECTED_SPAN_TOKENS"
	InvalidCorrectionType       = "INVALID_CORRECTION_TYPE"
	MissingCorrectionTokens     = "MISSING_CORRECTION_TOKENS"
	MissingUncertaintyTokens    = "MISSING_UNCERTAINTY_TOKENS"
	UncertaintiesPresent        = "UNCERTAINTIES_PRESENT"
	MissingFailure              = "MISSING_FAILURE"
	InvalidFailureStatus        = "INVALID_FAILURE_STATUS"
	EmptyFailureReason          = "EMPTY_FAILURE_REASON"
	MissingFailureUncertainties = "MISSING_FAILURE_UNCERTAINTIES"
)

// Result is either a Pass or a Fail.
type Result interface {
	contractResult()
	Status() string
}

// Pass carries a validated description and its trace.
type Pass struct {
	FinalDescription output.Final
	Trace            output.Trace
}

// Fail carries a non-empty reason.
type Fail struct {
	Reason string
}

func (Pass) contractResult() {}
func (Fail) contractResult() {}

// Status implements Result.
func (Pass) Status() string { return StatusPass }

// Status implements Result.
func (Fail) Status() string { return StatusFail }

// Envelope is the serialized shape of a Result. Exactly one of the PASS
// fields or Reason is set.
type Envelope struct {
	Status           string        `json:"status" yaml:"status"`
	FinalDescription *output.Final `json:"final_description,omitempty" yaml:"final_description,omitempty"`
	Trace            *output.Trace `json:"trace,omitempty" yaml:"trace,omitempty"`
	Reason           string        `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// ToEnvelope converts a result for serialization.
func ToEnvelope(r Result) Envelope {
	switch v := r.(type) {
	case Pass:
		final, trace := v.FinalDescription, v.Trace
		return Envelope{Status: StatusPass, FinalDescription: &final, Trace: &trace}
	case Fail:
		return Envelope{Status: StatusFail, Reason: v.Reason}
	}
	return Envelope{Status: StatusFail, Reason: InvalidOutcomeCombination}
}

// MarshalJSON implements json.Marshaler.
func (p Pass) MarshalJSON() ([]byte, error) { return json.Marshal(ToEnvelope(p)) }

// MarshalJSON implements json.Marshaler.
func (f Fail) MarshalJSON() ([]byte, error) { return json.Marshal(ToEnvelope(f)) }

// Validate re-checks an assembly independently of how it was produced.
// Checks run in a fixed order and the first violation becomes the reason.
func Validate(a output.Assembly) Result {
	present := 0
	if a.FinalDescription != nil {
		present++
	}
	if a.Failure != nil {
		present++
	}
	if present != 1 {
		return Fail{Reason: InvalidOutcomeCombination}
	}
	if a.FinalDescription != nil {
		return validatePass(*a.FinalDescription, a.Trace)
	}
	return validateFailure(a.Failure)
}

func validatePass(final output.Final, trace *output.Trace) Result {
	if trace == nil {
		return Fail{Reason: MissingTrace}
	}
	if final.Text == "" {
		return Fail{Reason: EmptyFinalText}
	}
	if len(trace.SelectedSpanTokenIDs) == 0 {
		return Fail{Reason: MissingSelectedSpanTokens}
	}
	for _, c := range trace.Corrections {
		if !correction.IsAllowedType(c.Type) {
			return Fail{Reason: InvalidCorrectionType}
		}
		if len(c.TokenIDs) == 0 {
			return Fail{Reason: MissingCorrectionTokens}
		}
	}
	for _, u := range trace.Uncertainties {
		if len(u.TokenIDs) == 0 {
			return Fail{Reason: MissingUncertaintyTokens}
		}
	}
	if len(trace.Uncertainties) > 0 {
		return Fail{Reason: UncertaintiesPresent}
	}

	t := *trace
	if t.Corrections == nil {
		t.Corrections = []correction.Record{}
	}
	t.Uncertainties = []uncertainty.Record{}
	return Pass{FinalDescription: final, Trace: t}
}

func validateFailure(f *output.FailureRecord) Result {
	if f == nil {
		return Fail{Reason: MissingFailure}
	}
	if f.Status != output.StatusFail {
		return Fail{Reason: InvalidFailureStatus}
	}
	if f.Reason == "" {
		return Fail{Reason: EmptyFailureReason}
	}
	if f.Uncertainties == nil {
		return Fail{Reason: MissingFailureUncertainties}
	}
	return Fail{Reason: f.Reason}
}
