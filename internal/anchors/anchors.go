// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package anchors finds heading groups that introduce a legal description.
package anchors

import (
	"regexp"
	"strings"

	"legal-extract/internal/evidence"
	"legal-extract/internal/layout"
)

// Anchor types. The whitelist below is their only source.
const (
	TypeLegalDescription = "heading:LEGAL_DESCRIPTION"
	TypeExhibitA         = "heading:EXHIBIT_A"
)

// Record is a detected heading group.
type Record struct {
	PageNumber int      `json:"page_number"`
	TokenIDs   []string `json:"token_ids"`
	AnchorType string   `json:"anchor_type"`
}

// whitelist maps a normalized, lower-cased phrase to its anchor type.
var whitelist = map[string]string{
	"legal description": TypeLegalDescription,
	"exhibit a":         TypeExhibitA,
	"exhibit “a”":       TypeExhibitA,
	"exhibit 'a'":       TypeExhibitA,
}

var edgePunct = regexp.MustCompile(`^[^\p{L}\p{N}_]+|[^\p{L}\p{N}_]+$`)

// Detect scans ordered token ids for heading groups whose phrase is on the
// whitelist. Only word-level, upper-case tokens with a confidence value are
// eligible, and a group needs at least two tokens.
func Detect(ix *evidence.Index, ordered []string) ([]Record, error) {
	var records []Record
	scanner := layout.GroupScanner{Index: ix, Eligible: eligible, Stage: "anchors"}
	err := scanner.Scan(ordered, func(g layout.HeadingGroup) bool {
		if len(g.Tokens) < 2 {
			return true
		}
		if anchorType, ok := MatchPhrase(g.Tokens); ok {
			records = append(records, Record{
				PageNumber: g.PageNumber,
				TokenIDs:   g.TokenIDs(),
				AnchorType: anchorType,
			})
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func eligible(tok evidence.Token) bool {
	return tok.HasConfidence() && layout.IsHeadingWord(tok)
}

// MatchPhrase normalizes the tokens' text into a phrase and looks it up in
// the whitelist.
func MatchPhrase(tokens []evidence.Token) (string, bool) {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = normalizeToken(t.Text)
	}
	anchorType, ok := whitelist[normalizePhrase(strings.Join(parts, " "))]
	return anchorType, ok
}

func normalizeToken(text string) string {
	return edgePunct.ReplaceAllString(collapse(text), "")
}

func normalizePhrase(text string) string {
	return strings.ToLower(edgePunct.ReplaceAllString(collapse(text), ""))
}

func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// TokenSet returns every token id claimed by the given anchors.
func TokenSet(records []Record) map[string]struct{} {
	set := make(map[string]struct{})
	for _, r := range records {
		for _, id := range r.TokenIDs {
			set[id] = struct{}{}
		}
	}
	return set
}
