// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"math"

	"legal-extract/internal/evidence"
)

// HeadingGroup is a run of consecutive heading words on one page.
type HeadingGroup struct {
	PageNumber int
	Tokens     []evidence.Token
}

// TokenIDs returns the ids of the group's tokens in order.
func (g HeadingGroup) TokenIDs() []string {
	ids := make([]string, len(g.Tokens))
	for i, t := range g.Tokens {
		ids[i] = t.TokenID
	}
	return ids
}

// GroupScanner walks token ids in reading order and groups consecutive
// eligible tokens that share a row and sit within the page's horizontal
// tolerance. The row reference is the group's first token.
type GroupScanner struct {
	Index    *evidence.Index
	Eligible func(evidence.Token) bool
	// Stage names the caller in missing-token errors.
	Stage string
}

// Scan calls emit for every finished group. When emit returns false scanning
// stops early. A missing id aborts the scan with a MissingTokenError.
func (s GroupScanner) Scan(ids []string, emit func(HeadingGroup) bool) error {
	var (
		group []evidence.Token
		page  int
		refY0 float64
		prev  evidence.Token
	)
	flush := func() bool {
		if len(group) == 0 {
			return true
		}
		g := HeadingGroup{PageNumber: page, Tokens: group}
		group = nil
		return emit(g)
	}

	for _, id := range ids {
		loc, err := s.Index.Get(s.Stage, id)
		if err != nil {
			return err
		}
		tok := loc.Token

		if len(group) > 0 && loc.PageNumber != page {
			if !flush() {
				return nil
			}
		}
		if !s.Eligible(tok) {
			if !flush() {
				return nil
			}
			continue
		}
		stats, ok := s.Index.WordStats(loc.PageNumber)
		if !ok {
			if !flush() {
				return nil
			}
			continue
		}

		if len(group) > 0 &&
			math.Abs(tok.BBox.Y0-refY0) <= VerticalTolerance(stats) &&
			tok.BBox.X0-prev.BBox.X1 <= HorizontalTolerance(stats) {
			group = append(group, tok)
			prev = tok
			continue
		}

		if !flush() {
			return nil
		}
		group = []evidence.Token{tok}
		page = loc.PageNumber
		refY0 = tok.BBox.Y0
		prev = tok
	}
	flush()
	return nil
}
