// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package testutil builds synthetic evidence bundles for tests. Words are laid
// out on a regular grid: every character is CharWidth wide, every token is
// TokenHeight tall and adjacent words are WordGap apart.
package testutil

import (
	"fmt"
	"unicode/utf8"

	"legal-extract/internal/evidence"
)

const (
	CharWidth   = 10.0
	TokenHeight = 20.0
	WordGap     = 15.0
	LineSpacing = 30.0
	LeftMargin  = 50.0
	TopMargin   = 100.0
	Confidence  = 96.0
)

// BundleBuilder accumulates pages for a single OCR run.
type BundleBuilder struct {
	docID string
	pages []*PageBuilder
}

// PageBuilder lays out lines of word tokens on one page.
type PageBuilder struct {
	parent *BundleBuilder
	number int
	tokens []evidence.Token
	line   int
}

// NewBundle starts a bundle for docID.
func NewBundle(docID string) *BundleBuilder {
	return &BundleBuilder{docID: docID}
}

// Page returns the builder for page n, creating it on first use.
func (b *BundleBuilder) Page(n int) *PageBuilder {
	for _, p := range b.pages {
		if p.number == n {
			return p
		}
	}
	p := &PageBuilder{parent: b, number: n}
	b.pages = append(b.pages, p)
	return p
}

// Line appends a row of words below the previous row and returns their ids.
func (p *PageBuilder) Line(words ...string) []string {
	y := TopMargin + float64(p.line)*LineSpacing
	p.line++
	return p.LineAt(LeftMargin, y, words...)
}

// LineAt places words left to right starting at (x, y).
func (p *PageBuilder) LineAt(x, y float64, words ...string) []string {
	ids := make([]string, 0, len(words))
	for _, w := range words {
		width := float64(utf8.RuneCountInString(w)) * CharWidth
		id := fmt.Sprintf("p%d-t%03d", p.number, len(p.tokens)+1)
		p.tokens = append(p.tokens, evidence.Token{
			TokenID:    id,
			Text:       w,
			BBox:       evidence.BBox{X0: x, Y0: y, X1: x + width, Y1: y + TokenHeight},
			Confidence: evidence.Confidence(Confidence),
			Level:      evidence.LevelWord,
		})
		ids = append(ids, id)
		x += width + WordGap
	}
	return ids
}

// Joined places words on the current row with no gap between them, as OCR
// engines do for glyph runs split into several tokens.
func (p *PageBuilder) Joined(words ...string) []string {
	y := TopMargin + float64(p.line)*LineSpacing
	p.line++
	ids := make([]string, 0, len(words))
	x := LeftMargin
	for _, w := range words {
		width := float64(utf8.RuneCountInString(w)) * CharWidth
		id := fmt.Sprintf("p%d-t%03d", p.number, len(p.tokens)+1)
		p.tokens = append(p.tokens, evidence.Token{
			TokenID:    id,
			Text:       w,
			BBox:       evidence.BBox{X0: x, Y0: y, X1: x + width, Y1: y + TokenHeight},
			Confidence: evidence.Confidence(Confidence),
			Level:      evidence.LevelWord,
		})
		ids = append(ids, id)
		x += width
	}
	return ids
}

// Bundle finalizes the builder into an evidence bundle with one OCR run.
func (b *BundleBuilder) Bundle() *evidence.Bundle {
	run := evidence.Run{Engine: "synthetic"}
	for _, p := range b.pages {
		tokens := make([]evidence.Token, len(p.tokens))
		copy(tokens, p.tokens)
		run.Pages = append(run.Pages, evidence.Page{PageNumber: p.number, Tokens: tokens})
	}
	return &evidence.Bundle{DocumentID: b.docID, Runs: []evidence.Run{run}}
}

// WithoutConfidence clears the confidence of the given token ids in place.
func WithoutConfidence(bundle *evidence.Bundle, ids ...string) *evidence.Bundle {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	for r := range bundle.Runs {
		for p := range bundle.Runs[r].Pages {
			for t := range bundle.Runs[r].Pages[p].Tokens {
				if drop[bundle.Runs[r].Pages[p].Tokens[t].TokenID] {
					bundle.Runs[r].Pages[p].Tokens[t].Confidence = nil
				}
			}
		}
	}
	return bundle
}

// Filler returns n distinct lower-case words for padding spans.
func Filler(n int) []string {
	words := []string{"lying", "and", "being", "situate", "in", "the", "county", "of", "said", "tract"}
	out := make([]string, n)
	for i := range out {
		out[i] = words[i%len(words)]
	}
	return out
}
