// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package uncertainty flags risky conditions in corrected lines and decides
// whether extraction may continue.
package uncertainty

import (
	"strings"

	"legal-extract/internal/bearings"
	"legal-extract/internal/correction"
	"legal-extract/internal/evidence"
)

// Uncertainty types.
const (
	LowConfidenceCriticalToken = "LOW_CONFIDENCE_CRITICAL_TOKEN"
	MissingBearingSymbol       = "MISSING_BEARING_SYMBOL"
	ConflictingBearings        = "CONFLICTING_BEARINGS"
	UnresolvedHyphenation      = "UNRESOLVED_HYPHENATION"
)

// Record is one flagged condition.
type Record struct {
	Type        string   `json:"type" yaml:"type"`
	Description string   `json:"description" yaml:"description"`
	TokenIDs    []string `json:"token_ids" yaml:"token_ids"`
	PageNumber  int      `json:"page_number" yaml:"page_number"`
}

const stage = "uncertainty"

// Detect inspects each line's source tokens. Per line, records come out in
// the order: critical tokens, missing symbol, conflicting bearings,
// unresolved hyphenation.
func Detect(ix *evidence.Index, lines []correction.CorrectedLine) ([]Record, error) {
	records := []Record{}
	for _, line := range lines {
		tokens := make([]evidence.Token, 0, len(line.TokenIDs))
		for _, id := range line.TokenIDs {
			loc, err := ix.Get(stage, id)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, loc.Token)
		}

		phrase := beginningAt(tokens)
		for i, t := range tokens {
			if t.HasConfidence() {
				continue
			}
			if bearings.IsCritical(t.Text) || phrase[i] {
				records = append(records, Record{
					Type:        LowConfidenceCriticalToken,
					Description: "Critical token has null confidence.",
					TokenIDs:    []string{t.TokenID},
					PageNumber:  line.PageNumber,
				})
			}
		}

		var hasSymbol bool
		letters := map[string]bool{}
		for _, t := range tokens {
			if bearings.IsCardinal(t.Text) {
				letters[t.Text] = true
			}
			if bearings.HasSymbol(t.Text) {
				hasSymbol = true
			}
		}
		if len(letters) > 0 && !hasSymbol {
			records = append(records, Record{
				Type:        MissingBearingSymbol,
				Description: "Bearing letters present without degree/prime symbols.",
				TokenIDs:    ids(tokens),
				PageNumber:  line.PageNumber,
			})
		}
		if (letters[bearings.North] && letters[bearings.South]) || (letters[bearings.East] && letters[bearings.West]) {
			records = append(records, Record{
				Type:        ConflictingBearings,
				Description: "Conflicting bearing letters present on the same line.",
				TokenIDs:    ids(tokens),
				PageNumber:  line.PageNumber,
			})
		}

		if strings.Contains(line.Text, "-") {
			var hyphenIDs []string
			for _, c := range line.Corrections {
				if c.Type == correction.HyphenationRepair {
					hyphenIDs = append(hyphenIDs, c.TokenIDs...)
				}
			}
			if hyphenIDs != nil {
				records = append(records, Record{
					Type:        UnresolvedHyphenation,
					Description: "Hyphenation repair applied but hyphen remains.",
					TokenIDs:    hyphenIDs,
					PageNumber:  line.PageNumber,
				})
			}
		}
	}
	return records, nil
}

// beginningAt marks tokens that are part of a "BEGINNING AT" pair.
func beginningAt(tokens []evidence.Token) []bool {
	marked := make([]bool, len(tokens))
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].Text == "BEGINNING" && tokens[i+1].Text == "AT" {
			marked[i], marked[i+1] = true, true
		}
	}
	return marked
}

func ids(tokens []evidence.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.TokenID
	}
	return out
}
