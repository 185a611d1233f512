// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"legal-extract/internal/evidence"
)

func word(id, text string, x0, y0 float64) evidence.Token {
	return evidence.Token{
		TokenID:    id,
		Text:       text,
		BBox:       evidence.BBox{X0: x0, Y0: y0, X1: x0 + 10*float64(len(text)), Y1: y0 + 20},
		Confidence: evidence.Confidence(90),
		Level:      evidence.LevelWord,
	}
}

func TestSpatialOrder_PagesRowsColumns(t *testing.T) {
	b := &evidence.Bundle{DocumentID: "d", Runs: []evidence.Run{{Pages: []evidence.Page{
		{PageNumber: 2, Tokens: []evidence.Token{
			word("p2b", "second", 10, 100),
			word("p2a", "first", 10, 50),
		}},
		{PageNumber: 1, Tokens: []evidence.Token{
			word("r2", "below", 10, 140),
			word("r1b", "right", 200, 100),
			word("r1a", "left", 10, 101.5),
		}},
	}}}}

	got := SpatialOrder(evidence.NewIndex(b))
	assert.Equal(t, []string{"r1a", "r1b", "r2", "p2a", "p2b"}, got)
}

func TestSpatialOrder_JitterStaysOnRow(t *testing.T) {
	// "45°" sits slightly higher than "N" but belongs to the same row.
	b := &evidence.Bundle{DocumentID: "d", Runs: []evidence.Run{{Pages: []evidence.Page{
		{PageNumber: 1, Tokens: []evidence.Token{
			word("n", "N", 10, 100.5),
			word("deg", "45°", 30, 100),
			word("e", "E", 80, 101),
		}},
	}}}}
	assert.Equal(t, []string{"n", "deg", "e"}, SpatialOrder(evidence.NewIndex(b)))
}

func TestSpatialOrder_TieBreakByID(t *testing.T) {
	b := &evidence.Bundle{DocumentID: "d", Runs: []evidence.Run{
		{Pages: []evidence.Page{{PageNumber: 1, Tokens: []evidence.Token{word("b", "x", 10, 10)}}}},
		{Pages: []evidence.Page{{PageNumber: 1, Tokens: []evidence.Token{word("a", "x", 10, 10)}}}},
	}}
	assert.Equal(t, []string{"a", "b"}, SpatialOrder(evidence.NewIndex(b)))
}

func TestSpatialOrder_Deterministic(t *testing.T) {
	b := &evidence.Bundle{DocumentID: "d", Runs: []evidence.Run{{Pages: []evidence.Page{
		{PageNumber: 1, Tokens: []evidence.Token{
			word("c", "gamma", 300, 10), word("a", "alpha", 10, 10), word("b", "beta", 150, 12),
		}},
	}}}}
	first := SpatialOrder(evidence.NewIndex(b))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, SpatialOrder(evidence.NewIndex(b)))
	}
}
