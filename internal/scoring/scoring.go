// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package scoring ranks structurally valid candidate spans.
package scoring

import (
	"math"

	"legal-extract/internal/anchors"
	"legal-extract/internal/bearings"
	"legal-extract/internal/evidence"
	"legal-extract/internal/validation"
)

// Weights parameterize the ranking heuristic.
type Weights struct {
	Anchor     map[string]float64 `yaml:"anchor" json:"anchor"`
	Bearing    float64            `yaml:"bearing" json:"bearing"`
	Confidence float64            `yaml:"confidence" json:"confidence"`
	Length     float64            `yaml:"length" json:"length"`
	// Penalties are keyed by noise predicate name.
	Penalties map[string]float64 `yaml:"penalties" json:"penalties"`
}

// DefaultWeights returns the weights used when none are configured.
func DefaultWeights() Weights {
	return Weights{
		Anchor: map[string]float64{
			anchors.TypeLegalDescription: 1.0,
			anchors.TypeExhibitA:         0.8,
		},
		Bearing:    2.0,
		Confidence: 1.0,
		Length:     0.5,
		Penalties: map[string]float64{
			NoiseNotaryBlock:         1.0,
			NoiseConsiderationClause: 1.0,
			NoiseAddressDominant:     0.5,
			NoiseTableLike:           0.25,
		},
	}
}

// lengthSaturation is the token count at which the length term stops growing.
const lengthSaturation = 100.0

// ScoredSpan is a validated candidate with its heuristic score.
type ScoredSpan struct {
	Validated validation.ValidatedSpan `json:"validated"`
	Score     float64                  `json:"score"`
	// Noise lists the noise predicates that fired, in a fixed order.
	Noise []string `json:"noise,omitempty"`
}

// Score assigns a score to every candidate, preserving input order. Invalid
// candidates score zero and are never ranked.
func Score(ix *evidence.Index, validated []validation.ValidatedSpan, w Weights) []ScoredSpan {
	out := make([]ScoredSpan, 0, len(validated))
	for _, v := range validated {
		s := ScoredSpan{Validated: v}
		if v.IsValid {
			s.Score, s.Noise = score(ix, v, w)
		}
		out = append(out, s)
	}
	return out
}

func score(ix *evidence.Index, v validation.ValidatedSpan, w Weights) (float64, []string) {
	tokens := make([]evidence.Token, 0, len(v.Span.TokenIDs))
	for _, id := range v.Span.TokenIDs {
		if loc, ok := ix.Lookup(id); ok {
			tokens = append(tokens, loc.Token)
		}
	}
	if len(tokens) == 0 {
		return 0, nil
	}

	var bearingCount, confident int
	for _, t := range tokens {
		if bearings.IsBearingToken(t.Text) {
			bearingCount++
		}
		if t.HasConfidence() {
			confident++
		}
	}
	n := float64(len(tokens))

	total := w.Anchor[v.Span.Anchor.AnchorType] +
		w.Bearing*float64(bearingCount)/n +
		w.Confidence*float64(confident)/n +
		w.Length*math.Min(n/lengthSaturation, 1)

	var noise []string
	for _, p := range predicates {
		if p.match(tokens) {
			noise = append(noise, p.name)
			total -= w.Penalties[p.name]
		}
	}
	return total, noise
}
