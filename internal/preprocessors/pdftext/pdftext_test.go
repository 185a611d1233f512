// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pdftext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// glyphs lays out s one glyph per rune starting at x on baseline y.
func glyphs(s string, x, y float64) []pdf.Text {
	var out []pdf.Text
	for _, r := range s {
		out = append(out, pdf.Text{FontSize: 10, X: x, Y: y, W: 5, S: string(r)})
		x += 5
	}
	return out
}

func texts(words []Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Text
	}
	return out
}

func TestWords_SpaceGlyphSplits(t *testing.T) {
	words := Words(glyphs("THENCE N 45°", 72, 700), 792)
	assert.Equal(t, []string{"THENCE", "N", "45°"}, texts(words))

	first := words[0].BBox
	assert.Equal(t, 72.0, first.X0)
	assert.Equal(t, 102.0, first.X1)
	assert.Equal(t, 82.0, first.Y0)
	assert.Equal(t, 92.0, first.Y1)
}

func TestWords_GapSplits(t *testing.T) {
	in := append(glyphs("LEGAL", 72, 700), glyphs("DESCRIPTION", 110, 700)...)
	assert.Equal(t, []string{"LEGAL", "DESCRIPTION"}, texts(Words(in, 792)))
}

func TestWords_RowsTopToBottomLeftToRight(t *testing.T) {
	var in []pdf.Text
	in = append(in, glyphs("second", 72, 680)...)
	in = append(in, glyphs("right", 200, 700.5)...)
	in = append(in, glyphs("left", 72, 700)...)

	assert.Equal(t, []string{"left", "right", "second"}, texts(Words(in, 792)))
}

func TestWords_EmptyInput(t *testing.T) {
	assert.Empty(t, Words(nil, 792))
	assert.Empty(t, Words([]pdf.Text{{S: " ", X: 1, Y: 1}}, 792))
}

func TestPreprocessor_Metadata(t *testing.T) {
	p := New()
	assert.Equal(t, "pdf_text", p.GetName())
	assert.True(t, p.CanProcess("deed.PDF"))
	assert.False(t, p.CanProcess("deed.json"))
}

func TestProcess_RejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o600))

	_, err := New().Process(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PDF file")
}
