// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package reconstruction turns a selected token sequence back into lines of
// text using the page geometry.
package reconstruction

import (
	"math"
	"strings"

	"legal-extract/internal/evidence"
	"legal-extract/internal/layout"
)

// Line is one visual row of tokens.
type Line struct {
	Text       string   `json:"text"`
	TokenIDs   []string `json:"token_ids"`
	PageNumber int      `json:"page_number"`
}

type lineBuilder struct {
	text  strings.Builder
	ids   []string
	page  int
	refY0 float64
	prev  evidence.Token
}

func (b *lineBuilder) start(tok evidence.Token, page int) {
	b.text.Reset()
	b.text.WriteString(tok.Text)
	b.ids = []string{tok.TokenID}
	b.page = page
	b.refY0 = tok.BBox.Y0
	b.prev = tok
}

func (b *lineBuilder) line() Line {
	return Line{Text: b.text.String(), TokenIDs: b.ids, PageNumber: b.page}
}

// Lines walks ids in order. A page change or a y0 drift beyond the vertical
// tolerance from the line's first token starts a new line. Within a line a
// single space separates tokens whose gap exceeds the page's median character
// width. Statistics here cover tokens of every level.
func Lines(ix *evidence.Index, ids []string) ([]Line, error) {
	var (
		lines []Line
		cur   lineBuilder
		open  bool
	)
	for _, id := range ids {
		loc, err := ix.Get("reconstruction", id)
		if err != nil {
			return nil, err
		}
		tok := loc.Token

		if !open {
			cur.start(tok, loc.PageNumber)
			open = true
			continue
		}

		stats, ok := ix.LineStats(loc.PageNumber)
		if loc.PageNumber != cur.page || !ok ||
			math.Abs(tok.BBox.Y0-cur.refY0) > layout.VerticalTolerance(stats) {
			lines = append(lines, cur.line())
			cur.start(tok, loc.PageNumber)
			continue
		}

		if stats.MedianCharWidth > 0 && tok.BBox.X0-cur.prev.BBox.X1 > stats.MedianCharWidth {
			cur.text.WriteByte(' ')
		}
		cur.text.WriteString(tok.Text)
		cur.ids = append(cur.ids, id)
		cur.prev = tok
	}
	if open {
		lines = append(lines, cur.line())
	}
	return lines, nil
}
