// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package correction applies the closed set of text repairs allowed on
// reconstructed lines.
package correction

import (
	"strings"

	"legal-extract/internal/bearings"
	"legal-extract/internal/lexicon"
	"legal-extract/internal/reconstruction"
)

// Correction types. No other type may appear in a trace.
const (
	SymbolRepair      = "SYMBOL_REPAIR"
	HyphenationRepair = "HYPHENATION_REPAIR"
	LexiconFix        = "LEXICON_FIX"
)

// IsAllowedType reports whether t is one of the three correction types.
func IsAllowedType(t string) bool {
	switch t {
	case SymbolRepair, HyphenationRepair, LexiconFix:
		return true
	}
	return false
}

// Record describes one applied repair.
type Record struct {
	Type     string   `json:"type" yaml:"type"`
	Before   string   `json:"before" yaml:"before"`
	After    string   `json:"after" yaml:"after"`
	TokenIDs []string `json:"token_ids" yaml:"token_ids"`
}

// CorrectedLine is the repaired text of one or two reconstructed lines.
type CorrectedLine struct {
	Text        string   `json:"text"`
	TokenIDs    []string `json:"token_ids"`
	PageNumber  int      `json:"page_number"`
	Corrections []Record `json:"corrections"`
}

// Line returns the corrected line as a reconstruction line, so the output
// of one pass can be fed to another.
func (c CorrectedLine) Line() reconstruction.Line {
	return reconstruction.Line{Text: c.Text, TokenIDs: c.TokenIDs, PageNumber: c.PageNumber}
}

// Corrector runs symbol repair, then lexicon fixes, then hyphenation repair
// on each line.
type Corrector struct {
	lexicon *lexicon.Lexicon
}

// NewCorrector returns a corrector backed by lex. A nil lexicon disables
// lexicon fixes.
func NewCorrector(lex *lexicon.Lexicon) *Corrector {
	if lex == nil {
		lex = lexicon.Empty()
	}
	return &Corrector{lexicon: lex}
}

// Apply corrects lines in order. A line ending in a hyphen is merged with the
// following line when both are on the same page; the merge is the only way
// the number of lines changes.
func (c *Corrector) Apply(lines []reconstruction.Line) []CorrectedLine {
	out := make([]CorrectedLine, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		text, records := c.repair(line)

		if strings.HasSuffix(text, "-") && i+1 < len(lines) && lines[i+1].PageNumber == line.PageNumber {
			next := lines[i+1]
			nextText, nextRecords := c.repair(next)
			ids := concat(line.TokenIDs, next.TokenIDs)
			merged := strings.TrimSuffix(text, "-") + nextText
			records = append(records, nextRecords...)
			records = append(records, Record{
				Type:     HyphenationRepair,
				Before:   text + nextText,
				After:    merged,
				TokenIDs: ids,
			})
			out = append(out, CorrectedLine{Text: merged, TokenIDs: ids, PageNumber: line.PageNumber, Corrections: records})
			i++
			continue
		}

		out = append(out, CorrectedLine{
			Text:        text,
			TokenIDs:    concat(line.TokenIDs),
			PageNumber:  line.PageNumber,
			Corrections: records,
		})
	}
	return out
}

// repair applies the in-line stages: symbol repair then lexicon fixes.
func (c *Corrector) repair(line reconstruction.Line) (string, []Record) {
	records := []Record{}
	text := line.Text

	if repaired := bearings.RepairSymbols(text); repaired != text {
		records = append(records, Record{Type: SymbolRepair, Before: text, After: repaired, TokenIDs: concat(line.TokenIDs)})
		text = repaired
	}
	if fixed := c.lexicon.Replace(text); fixed != text {
		records = append(records, Record{Type: LexiconFix, Before: text, After: fixed, TokenIDs: concat(line.TokenIDs)})
		text = fixed
	}
	return text, records
}

func concat(parts ...[]string) []string {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]string, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
