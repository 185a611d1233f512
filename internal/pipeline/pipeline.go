// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pipeline composes the extraction stages in order.
package pipeline

import (
	"fmt"

	"legal-extract/internal/anchors"
	"legal-extract/internal/contract"
	"legal-extract/internal/correction"
	"legal-extract/internal/evidence"
	"legal-extract/internal/lexicon"
	"legal-extract/internal/observability"
	"legal-extract/internal/ordering"
	"legal-extract/internal/output"
	"legal-extract/internal/reconstruction"
	"legal-extract/internal/scoring"
	"legal-extract/internal/selection"
	"legal-extract/internal/spans"
	"legal-extract/internal/uncertainty"
	"legal-extract/internal/validation"
)

const component = "pipeline"

// Options parameterize a run. The zero value uses the default policy and
// weights, an empty lexicon and no observer.
type Options struct {
	Policy   *spans.Policy
	Weights  *scoring.Weights
	Lexicon  *lexicon.Lexicon
	Observer *observability.StandardObserver
}

func (o Options) policy() spans.Policy {
	if o.Policy == nil {
		return spans.DefaultPolicy()
	}
	return *o.Policy
}

func (o Options) weights() scoring.Weights {
	if o.Weights == nil {
		return scoring.DefaultWeights()
	}
	return *o.Weights
}

// Report is a contract result plus the diagnostics gathered on the way.
type Report struct {
	DocumentID string
	Result     contract.Result
	Anchors    []anchors.Record
	Audit      selection.Audit
	Lines      []correction.CorrectedLine
	// Gate is nil when the run failed before uncertainty detection.
	Gate uncertainty.GateResult
}

// Run extracts the legal description from bundle. The only error is a
// token id that the bundle cannot resolve; every other failure is a
// contract.Fail result.
func Run(bundle *evidence.Bundle, opts Options) (contract.Result, error) {
	report, err := RunWithAudit(bundle, opts)
	if err != nil {
		return nil, err
	}
	return report.Result, nil
}

// RunWithAudit is Run, keeping the intermediate records for diagnostics.
func RunWithAudit(bundle *evidence.Bundle, opts Options) (*Report, error) {
	if bundle == nil {
		return nil, fmt.Errorf("pipeline: nil bundle")
	}
	obs := opts.Observer
	var debug *observability.DebugObserver
	if obs != nil {
		debug = obs.DebugObserver
	}

	done := obs.StartTiming(component, "run", bundle.DocumentID)
	finishStep := debug.StartStep(component, "extract", bundle.DocumentID)

	report, err := run(bundle, opts, debug)
	if err != nil {
		finishStep(false, err.Error())
		done(false, map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	status := report.Result.Status()
	finishStep(status == contract.StatusPass, status)
	meta := map[string]interface{}{
		"status":     status,
		"anchors":    len(report.Anchors),
		"candidates": len(report.Audit.Candidates),
	}
	if f, ok := report.Result.(contract.Fail); ok {
		meta["reason"] = f.Reason
	}
	done(true, meta)
	return report, nil
}

func run(bundle *evidence.Bundle, opts Options, debug *observability.DebugObserver) (*Report, error) {
	report := &Report{DocumentID: bundle.DocumentID}
	ix := evidence.NewIndex(bundle)
	debug.LogMetric("evidence", "tokens", ix.Len())

	ordered := ordering.SpatialOrder(ix)

	found, err := anchors.Detect(ix, ordered)
	if err != nil {
		return nil, fmt.Errorf("anchor detection: %w", err)
	}
	report.Anchors = found
	debug.LogMetric("anchors", "detected", len(found))

	candidates := spans.Expand(ix, ordered, found, opts.policy())
	validated := validation.Validate(ix, ordered, candidates)
	scored := scoring.Score(ix, validated, opts.weights())
	selected := selection.Select(scored)
	report.Audit = selection.BuildAudit(scored, selected)
	for _, s := range scored {
		debug.LogDetail("scoring", fmt.Sprintf("%s start=%s valid=%t score=%.4f failures=%v",
			s.Validated.Span.Anchor.AnchorType, s.Validated.Span.StartTokenID,
			s.Validated.IsValid, s.Score, s.Validated.Failures))
	}

	if selected.Selected == nil {
		debug.LogDetail("selection", selected.FailureReason)
		report.Result = contract.Validate(output.FromFailure(selected.FailureReason, nil))
		return report, nil
	}

	ids := selected.SelectedTokenIDs()
	lines, err := reconstruction.Lines(ix, ids)
	if err != nil {
		return nil, fmt.Errorf("line reconstruction: %w", err)
	}
	corrected := correction.NewCorrector(opts.Lexicon).Apply(lines)
	report.Lines = corrected
	debug.LogMetric("reconstruction", "lines", len(corrected))

	records, err := uncertainty.Detect(ix, corrected)
	if err != nil {
		return nil, fmt.Errorf("uncertainty detection: %w", err)
	}
	gate, err := uncertainty.ApplyGate(ix, records)
	if err != nil {
		return nil, fmt.Errorf("failure gate: %w", err)
	}
	report.Gate = gate
	debug.LogMetric("uncertainty", "records", len(records))

	var assembly output.Assembly
	switch g := gate.(type) {
	case uncertainty.Failure:
		assembly = output.FromGate(g)
	case uncertainty.Continuation:
		assembly = output.Assemble(ids, corrected, g)
	default:
		return nil, fmt.Errorf("failure gate: unexpected result %T", gate)
	}
	report.Result = contract.Validate(assembly)
	return report, nil
}
