// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scoring

import (
	"math"
	"regexp"

	"legal-extract/internal/evidence"
)

// Noise predicate names, as reported on a ScoredSpan.
const (
	NoiseNotaryBlock         = "NOTARY_BLOCK"
	NoiseConsiderationClause = "CONSIDERATION_CLAUSE"
	NoiseAddressDominant     = "ADDRESS_DOMINANT"
	NoiseTableLike           = "TABLE_LIKE"
)

var (
	notaryPhrases = [][]string{
		{"NOTARY"},
		{"COUNTY", "OF"},
		{"STATE", "OF"},
		{"SUBSCRIBED", "AND", "SWORN"},
	}
	considerationPhrases = [][]string{
		{"TEN", "DOLLARS"},
		{"LOVE", "AND", "AFFECTION"},
		{"OTHER", "GOOD", "AND", "VALUABLE"},
	}
	streetTerms = map[string]bool{"STREET": true, "ROAD": true, "AVENUE": true}
	zipPattern  = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

const (
	addressWindow    = 20
	minStreetTerms   = 2
	tableWindow      = 50
	tableBucket      = 5.0
	minTableColumns  = 3
	minColumnEntries = 3
)

// noisePredicate reports whether a span's tokens look like boilerplate
// rather than a property description.
type noisePredicate struct {
	name  string
	match func([]evidence.Token) bool
}

var predicates = []noisePredicate{
	{NoiseNotaryBlock, func(t []evidence.Token) bool { return containsPhrase(t, notaryPhrases) }},
	{NoiseConsiderationClause, func(t []evidence.Token) bool { return containsPhrase(t, considerationPhrases) }},
	{NoiseAddressDominant, addressDominant},
	{NoiseTableLike, tableLike},
}

func containsPhrase(tokens []evidence.Token, phrases [][]string) bool {
	for i := range tokens {
		for _, phrase := range phrases {
			if matchesAt(tokens, i, phrase) {
				return true
			}
		}
	}
	return false
}

func matchesAt(tokens []evidence.Token, i int, phrase []string) bool {
	if i+len(phrase) > len(tokens) {
		return false
	}
	for j, word := range phrase {
		if tokens[i+j].Text != word {
			return false
		}
	}
	return true
}

// addressDominant reports whether some window of addressWindow tokens holds
// at least two street terms and a ZIP code.
func addressDominant(tokens []evidence.Token) bool {
	for start := 0; start+addressWindow <= len(tokens); start++ {
		streets, zips := 0, 0
		for _, t := range tokens[start : start+addressWindow] {
			if streetTerms[t.Text] {
				streets++
			}
			if zipPattern.MatchString(t.Text) {
				zips++
			}
		}
		if streets >= minStreetTerms && zips >= 1 {
			return true
		}
	}
	return false
}

// tableLike reports whether some window of tableWindow tokens has at least
// minTableColumns left edges, bucketed to tableBucket units, that each start
// minColumnEntries or more tokens.
func tableLike(tokens []evidence.Token) bool {
	for start := 0; start+tableWindow <= len(tokens); start++ {
		columns := make(map[float64]int)
		for _, t := range tokens[start : start+tableWindow] {
			columns[math.Round(t.BBox.X0/tableBucket)*tableBucket]++
		}
		full := 0
		for _, n := range columns {
			if n >= minColumnEntries {
				full++
			}
		}
		if full >= minTableColumns {
			return true
		}
	}
	return false
}
