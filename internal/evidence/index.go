// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package evidence

import (
	"sort"
	"unicode/utf8"
)

// Located is a token together with the page that produced it.
type Located struct {
	Token      Token
	PageNumber int
}

// PageStats summarizes token geometry on one page. Tolerances derived from it
// let the detectors adapt to scan resolution.
type PageStats struct {
	MedianTokenHeight float64
	MedianCharWidth   float64
}

// Index is the read-only arena over a bundle: tokens keyed by id plus
// per-page statistics. It is built once and shared by every stage.
type Index struct {
	documentID string
	tokens     map[string]Located
	pages      []int
	byPage     map[int][]string
	wordStats  map[int]PageStats
	lineStats  map[int]PageStats
}

// NewIndex builds the arena for a bundle. When ids repeat, the first
// occurrence wins; Load rejects such bundles before they get here.
func NewIndex(b *Bundle) *Index {
	ix := &Index{
		documentID: b.DocumentID,
		tokens:     make(map[string]Located, b.TokenCount()),
		byPage:     make(map[int][]string),
	}

	wordHeights := map[int][]float64{}
	wordWidths := map[int][]float64{}
	allHeights := map[int][]float64{}
	allWidths := map[int][]float64{}

	for _, run := range b.Runs {
		for _, page := range run.Pages {
			if _, seen := ix.byPage[page.PageNumber]; !seen {
				ix.byPage[page.PageNumber] = []string{}
				ix.pages = append(ix.pages, page.PageNumber)
			}
			for _, tok := range page.Tokens {
				if _, dup := ix.tokens[tok.TokenID]; dup {
					continue
				}
				ix.tokens[tok.TokenID] = Located{Token: tok, PageNumber: page.PageNumber}
				ix.byPage[page.PageNumber] = append(ix.byPage[page.PageNumber], tok.TokenID)

				height := tok.BBox.Height()
				allHeights[page.PageNumber] = append(allHeights[page.PageNumber], height)
				cw, hasText := charWidth(tok)
				if hasText {
					allWidths[page.PageNumber] = append(allWidths[page.PageNumber], cw)
				}
				if tok.Level != LevelWord {
					continue
				}
				wordHeights[page.PageNumber] = append(wordHeights[page.PageNumber], height)
				if hasText {
					wordWidths[page.PageNumber] = append(wordWidths[page.PageNumber], cw)
				}
			}
		}
	}
	sort.Ints(ix.pages)

	ix.wordStats = buildStats(wordHeights, wordWidths)
	ix.lineStats = buildStats(allHeights, allWidths)
	return ix
}

// Len returns the number of distinct token ids.
func (ix *Index) Len() int { return len(ix.tokens) }

// Pages returns the page numbers present in the bundle, ascending.
func (ix *Index) Pages() []int {
	out := make([]int, len(ix.pages))
	copy(out, ix.pages)
	return out
}

// PageTokenIDs returns the ids of the tokens on a page in bundle order.
func (ix *Index) PageTokenIDs(page int) []string {
	ids := ix.byPage[page]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Lookup returns the token for id.
func (ix *Index) Lookup(id string) (Located, bool) {
	loc, ok := ix.tokens[id]
	return loc, ok
}

// Get is Lookup for callers that treat a missing id as an integrity error.
func (ix *Index) Get(stage, id string) (Located, error) {
	loc, ok := ix.tokens[id]
	if !ok {
		return Located{}, &MissingTokenError{DocumentID: ix.documentID, TokenID: id, Stage: stage}
	}
	return loc, nil
}

// WordStats returns statistics computed from word-level tokens only. Pages
// without word tokens have no entry.
func (ix *Index) WordStats(page int) (PageStats, bool) {
	s, ok := ix.wordStats[page]
	return s, ok
}

// LineStats returns statistics computed from every token on the page,
// regardless of level.
func (ix *Index) LineStats(page int) (PageStats, bool) {
	s, ok := ix.lineStats[page]
	return s, ok
}

func charWidth(tok Token) (float64, bool) {
	if tok.Text == "" {
		return 0, false
	}
	n := utf8.RuneCountInString(tok.Text)
	if n < 1 {
		n = 1
	}
	return tok.BBox.Width() / float64(n), true
}

func buildStats(heights, widths map[int][]float64) map[int]PageStats {
	stats := make(map[int]PageStats, len(heights))
	for page, hs := range heights {
		stats[page] = PageStats{
			MedianTokenHeight: LowerMedian(hs),
			MedianCharWidth:   LowerMedian(widths[page]),
		}
	}
	return stats
}

// LowerMedian returns the median of vals, taking the lower of the two middle
// values for even counts so results do not depend on float averaging. An
// empty slice yields 0.
func LowerMedian(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	return sorted[(len(sorted)-1)/2]
}
