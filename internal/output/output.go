// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package output assembles the pipeline outcome before contract validation.
package output

import (
	"strings"

	"legal-extract/internal/correction"
	"legal-extract/internal/uncertainty"
)

// StatusFail marks a failure record.
const StatusFail = "FAIL"

// Final is the extracted legal description.
type Final struct {
	Text      string `json:"text" yaml:"text"`
	PageStart int    `json:"page_start" yaml:"page_start"`
	PageEnd   int    `json:"page_end" yaml:"page_end"`
}

// Trace is the audit trail accompanying a final description.
type Trace struct {
	SelectedSpanTokenIDs []string             `json:"selected_span_token_ids" yaml:"selected_span_token_ids"`
	Corrections          []correction.Record  `json:"corrections" yaml:"corrections"`
	Uncertainties        []uncertainty.Record `json:"uncertainties" yaml:"uncertainties"`
}

// FailureRecord is a reasoned failure. Uncertainties is nil only when the
// record is malformed; an upstream failure carries an empty list.
type FailureRecord struct {
	Status        string
	Reason        string
	Uncertainties []uncertainty.Record
}

// Assembly is the unchecked outcome handed to contract validation. A well
// formed assembly sets either FinalDescription and Trace, or Failure.
type Assembly struct {
	FinalDescription *Final
	Trace            *Trace
	Failure          *FailureRecord
}

// Assemble builds the final description and trace for a continued run.
func Assemble(selected []string, lines []correction.CorrectedLine, cont uncertainty.Continuation) Assembly {
	texts := make([]string, len(lines))
	final := &Final{}
	corrections := []correction.Record{}
	for i, l := range lines {
		texts[i] = l.Text
		if i == 0 || l.PageNumber < final.PageStart {
			final.PageStart = l.PageNumber
		}
		if i == 0 || l.PageNumber > final.PageEnd {
			final.PageEnd = l.PageNumber
		}
		corrections = append(corrections, l.Corrections...)
	}
	final.Text = strings.Join(texts, "\n")

	records := cont.Uncertainties
	if records == nil {
		records = []uncertainty.Record{}
	}
	ids := make([]string, len(selected))
	copy(ids, selected)

	return Assembly{
		FinalDescription: final,
		Trace: &Trace{
			SelectedSpanTokenIDs: ids,
			Corrections:          corrections,
			Uncertainties:        records,
		},
	}
}

// FromFailure builds a failure assembly. records may be empty when the run
// failed before uncertainty detection.
func FromFailure(reason string, records []uncertainty.Record) Assembly {
	if records == nil {
		records = []uncertainty.Record{}
	}
	return Assembly{Failure: &FailureRecord{Status: StatusFail, Reason: reason, Uncertainties: records}}
}

// FromGate builds a failure assembly from a gate failure.
func FromGate(f uncertainty.Failure) Assembly {
	return FromFailure(f.Reason, f.Uncertainties)
}
