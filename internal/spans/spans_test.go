// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package spans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-extract/internal/anchors"
	"legal-extract/internal/evidence"
	"legal-extract/internal/ordering"
	"legal-extract/internal/testutil"
)

func expand(t *testing.T, b *evidence.Bundle, p Policy) []CandidateSpan {
	t.Helper()
	ix := evidence.NewIndex(b)
	ordered := ordering.SpatialOrder(ix)
	records, err := anchors.Detect(ix, ordered)
	require.NoError(t, err)
	return Expand(ix, ordered, records, p)
}

func TestExpand_StartsAfterAnchor(t *testing.T) {
	b := testutil.NewBundle("doc")
	p := b.Page(1)
	p.Line("EXHIBIT", "A")
	body := p.Line(testutil.Filler(6)...)
	body = append(body, p.Line(testutil.Filler(6)...)...)

	got := expand(t, b.Bundle(), DefaultPolicy())
	require.Len(t, got, 1)
	assert.Equal(t, body, got[0].TokenIDs)
	assert.Equal(t, body[0], got[0].StartTokenID)
	assert.Equal(t, 1, got[0].PageStart)
	assert.Equal(t, 1, got[0].PageEnd)
	assert.Equal(t, anchors.TypeExhibitA, got[0].Anchor.AnchorType)
}

func TestExpand_StopsAtNextAnchor(t *testing.T) {
	b := testutil.NewBundle("doc")
	p := b.Page(1)
	p.Line("EXHIBIT", "A")
	first := p.Line(testutil.Filler(4)...)
	p.Line("LEGAL", "DESCRIPTION")
	second := p.Line(testutil.Filler(3)...)

	got := expand(t, b.Bundle(), DefaultPolicy())
	require.Len(t, got, 2)
	assert.Equal(t, first, got[0].TokenIDs)
	assert.Equal(t, second, got[1].TokenIDs)

	policy := DefaultPolicy()
	policy.StopAtAnchor = false
	got = expand(t, b.Bundle(), policy)
	assert.Len(t, got[0].TokenIDs, 4+2+3)
}

func TestExpand_MaxTokens(t *testing.T) {
	b := testutil.NewBundle("doc")
	p := b.Page(1)
	p.Line("EXHIBIT", "A")
	p.Line(testutil.Filler(8)...)

	got := expand(t, b.Bundle(), Policy{MaxTokens: 5, MaxPageSpan: 3})
	require.Len(t, got, 1)
	assert.Len(t, got[0].TokenIDs, 5)
}

func TestExpand_MaxPageSpan(t *testing.T) {
	b := testutil.NewBundle("doc")
	b.Page(1).Line("EXHIBIT", "A")
	for page := 2; page <= 6; page++ {
		b.Page(page).Line("text", "here")
	}

	got := expand(t, b.Bundle(), DefaultPolicy())
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].PageStart)
	assert.Equal(t, 5, got[0].PageEnd)
	assert.Len(t, got[0].TokenIDs, 8)
}

func TestExpand_AnchorAtEndOfDocument(t *testing.T) {
	b := testutil.NewBundle("doc")
	b.Page(3).Line("LEGAL", "DESCRIPTION")

	got := expand(t, b.Bundle(), DefaultPolicy())
	require.Len(t, got, 1)
	assert.Empty(t, got[0].TokenIDs)
	assert.Equal(t, "", got[0].StartTokenID)
	assert.Equal(t, 3, got[0].PageStart)
	assert.Equal(t, 3, got[0].PageEnd)
}

func TestExpand_NoAnchors(t *testing.T) {
	b := testutil.NewBundle("doc")
	b.Page(1).Line(testutil.Filler(12)...)
	assert.Empty(t, expand(t, b.Bundle(), DefaultPolicy()))
}
