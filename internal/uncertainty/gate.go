// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package uncertainty

import (
	"legal-extract/internal/bearings"
	"legal-extract/internal/evidence"
)

// GateResult is either a Continuation or a Failure.
type GateResult interface {
	gateResult()
	// Records returns every uncertainty seen, fatal or not.
	Records() []Record
}

// Continuation lets extraction proceed. Its records are never fatal.
type Continuation struct {
	Uncertainties []Record
}

// Failure stops extraction. Reason is the type of the first fatal record.
type Failure struct {
	Reason        string
	Uncertainties []Record
}

func (Continuation) gateResult() {}
func (Failure) gateResult()      {}

// Records implements GateResult.
func (c Continuation) Records() []Record { return c.Uncertainties }

// Records implements GateResult.
func (f Failure) Records() []Record { return f.Uncertainties }

// ApplyGate walks records in order and fails on the first fatal one.
// Conflicting bearings, missing bearing symbols and critical low-confidence
// tokens are always fatal. Unresolved hyphenation is fatal only when it
// implicates a critical direction or angle token.
func ApplyGate(ix *evidence.Index, records []Record) (GateResult, error) {
	if records == nil {
		records = []Record{}
	}
	for _, r := range records {
		switch r.Type {
		case ConflictingBearings, MissingBearingSymbol, LowConfidenceCriticalToken:
			return Failure{Reason: r.Type, Uncertainties: records}, nil
		case UnresolvedHyphenation:
			critical, err := touchesCritical(ix, r.TokenIDs)
			if err != nil {
				return nil, err
			}
			if critical {
				return Failure{Reason: r.Type, Uncertainties: records}, nil
			}
		}
	}
	return Continuation{Uncertainties: records}, nil
}

func touchesCritical(ix *evidence.Index, ids []string) (bool, error) {
	for _, id := range ids {
		loc, err := ix.Get("gate", id)
		if err != nil {
			return false, err
		}
		if bearings.IsCritical(loc.Token.Text) {
			return true, nil
		}
	}
	return false, nil
}
