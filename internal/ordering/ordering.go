// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ordering linearizes every token of a bundle into reading order.
package ordering

import (
	"math"
	"sort"

	"legal-extract/internal/evidence"
	"legal-extract/internal/layout"
)

// fallbackStats is used for pages without word-level tokens.
var fallbackStats = evidence.PageStats{}

// SpatialOrder returns every token id in reading order: pages ascending, then
// rows top to bottom, then tokens left to right. Rows are banded with the
// page's vertical tolerance, and every comparison falls back to the token id,
// so the order is total.
func SpatialOrder(ix *evidence.Index) []string {
	ordered := make([]string, 0, ix.Len())
	for _, page := range ix.Pages() {
		ordered = append(ordered, orderPage(ix, page)...)
	}
	return ordered
}

func orderPage(ix *evidence.Index, page int) []string {
	ids := ix.PageTokenIDs(page)
	if len(ids) == 0 {
		return nil
	}
	toks := make([]evidence.Token, 0, len(ids))
	for _, id := range ids {
		loc, _ := ix.Lookup(id)
		toks = append(toks, loc.Token)
	}

	sort.Slice(toks, func(i, j int) bool {
		a, b := toks[i].BBox, toks[j].BBox
		if a.Y0 != b.Y0 {
			return a.Y0 < b.Y0
		}
		if a.X0 != b.X0 {
			return a.X0 < b.X0
		}
		return toks[i].TokenID < toks[j].TokenID
	})

	stats, ok := ix.WordStats(page)
	if !ok {
		stats = fallbackStats
	}
	tol := layout.VerticalTolerance(stats)

	out := make([]string, 0, len(toks))
	row := []evidence.Token{toks[0]}
	rowY0 := toks[0].BBox.Y0
	for _, tok := range toks[1:] {
		if math.Abs(tok.BBox.Y0-rowY0) <= tol {
			row = append(row, tok)
			continue
		}
		out = appendRow(out, row)
		row = []evidence.Token{tok}
		rowY0 = tok.BBox.Y0
	}
	return appendRow(out, row)
}

func appendRow(out []string, row []evidence.Token) []string {
	sort.Slice(row, func(i, j int) bool {
		a, b := row[i].BBox, row[j].BBox
		if a.X0 != b.X0 {
			return a.X0 < b.X0
		}
		if a.Y0 != b.Y0 {
			return a.Y0 < b.Y0
		}
		return row[i].TokenID < row[j].TokenID
	})
	for _, t := range row {
		out = append(out, t.TokenID)
	}
	return out
}
