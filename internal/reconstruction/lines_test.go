// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package reconstruction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-extract/internal/evidence"
	"legal-extract/internal/testutil"
)

func TestLines(t *testing.T) {
	b := testutil.NewBundle("doc")
	p1 := b.Page(1)
	first := p1.Line("Beginning", "at", "a", "point")
	second := p1.Line("North-")
	joined := p1.Joined("45", "°", "30'")
	p2 := b.Page(2)
	third := p2.Line("east", "corner")

	ix := evidence.NewIndex(b.Bundle())
	var ids []string
	for _, group := range [][]string{first, second, joined, third} {
		ids = append(ids, group...)
	}

	lines, err := Lines(ix, ids)
	require.NoError(t, err)
	assert.Equal(t, []Line{
		{Text: "Beginning at a point", TokenIDs: first, PageNumber: 1},
		{Text: "North-", TokenIDs: second, PageNumber: 1},
		{Text: "45°30'", TokenIDs: joined, PageNumber: 1},
		{Text: "east corner", TokenIDs: third, PageNumber: 2},
	}, lines)
}

func TestLines_VerticalToleranceFromFirstToken(t *testing.T) {
	b := testutil.NewBundle("doc")
	p := b.Page(1)
	// Tolerance is max(3, 0.25*20) = 5.
	a := p.LineAt(50, 100, "one")
	c := p.LineAt(100, 104, "two")
	d := p.LineAt(150, 106, "three")

	ix := evidence.NewIndex(b.Bundle())
	lines, err := Lines(ix, append(append(a, c...), d...))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "one two", lines[0].Text)
	assert.Equal(t, "three", lines[1].Text)
}

func TestLines_GapAtCharWidthHasNoSpace(t *testing.T) {
	b := testutil.NewBundle("doc")
	p := b.Page(1)
	a := p.LineAt(50, 100, "ab")
	// ab ends at x=70; a gap of exactly one char width stays unspaced.
	c := p.LineAt(80, 100, "cd")

	ix := evidence.NewIndex(b.Bundle())
	lines, err := Lines(ix, append(a, c...))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "abcd", lines[0].Text)
}

func TestLines_Empty(t *testing.T) {
	ix := evidence.NewIndex(testutil.NewBundle("doc").Bundle())
	lines, err := Lines(ix, nil)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestLines_MissingToken(t *testing.T) {
	b := testutil.NewBundle("doc")
	ids := b.Page(1).Line("a", "b")
	ix := evidence.NewIndex(b.Bundle())

	_, err := Lines(ix, append(ids, "ghost"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, evidence.ErrTokenNotFound))
	var missing *evidence.MissingTokenError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ghost", missing.TokenID)
}
