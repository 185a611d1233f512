// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package evidence models the OCR evidence bundle consumed by the extraction
// pipeline and provides the id-keyed token arena every later stage reads from.
package evidence

// Token granularity levels reported by OCR adapters.
const (
	LevelWord = "word"
	LevelLine = "line"
)

// BBox is an axis-aligned bounding box in page coordinates, origin top-left.
type BBox struct {
	X0 float64 `json:"x0" yaml:"x0"`
	Y0 float64 `json:"y0" yaml:"y0"`
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.Y1 - b.Y0 }

// Token is a single recognized text unit. A nil Confidence means the OCR
// engine reported none, which is not the same as a zero score.
type Token struct {
	TokenID    string   `json:"token_id" yaml:"token_id"`
	Text       string   `json:"text" yaml:"text"`
	BBox       BBox     `json:"bbox" yaml:"bbox"`
	Confidence *float64 `json:"confidence" yaml:"confidence"`
	Level      string   `json:"level" yaml:"level"`
}

// HasConfidence reports whether the engine supplied a confidence value.
func (t Token) HasConfidence() bool { return t.Confidence != nil }

// Page holds the tokens recognized on one page of one OCR run.
type Page struct {
	PageNumber int     `json:"page_number" yaml:"page_number"`
	Width      float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height     float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Tokens     []Token `json:"tokens" yaml:"tokens"`
}

// Run is one pass of an OCR engine over the document.
type Run struct {
	Engine string `json:"engine,omitempty" yaml:"engine,omitempty"`
	Pages  []Page `json:"pages" yaml:"pages"`
}

// Bundle is the complete OCR output for one document.
type Bundle struct {
	DocumentID string `json:"document_id" yaml:"document_id"`
	Runs       []Run  `json:"ocr_runs" yaml:"ocr_runs"`
}

// Confidence is a convenience for building tokens with a known score.
func Confidence(v float64) *float64 { return &v }

// TokenCount returns the number of tokens across every run and page.
func (b *Bundle) TokenCount() int {
	n := 0
	for _, run := range b.Runs {
		for _, page := range run.Pages {
			n += len(page.Tokens)
		}
	}
	return n
}
