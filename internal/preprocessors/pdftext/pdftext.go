// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pdftext builds evidence bundles from the text layer of born-digital
// PDFs. Glyphs are merged into word tokens; the text layer is exact, so every
// token carries confidence 1.0.
package pdftext

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"legal-extract/internal/evidence"
	"legal-extract/internal/observability"
	"legal-extract/internal/preprocessors"
)

// Engine is the OCR run label for text-layer extraction.
const Engine = "pdf-text-layer"

const (
	defaultFontSize = 12.0
	// word break when the gap between glyphs exceeds this share of the font size
	wordGapRatio = 0.25
	// glyph baselines closer than this share of the font size sit on one row
	rowToleranceRatio = 0.3
)

// Preprocessor extracts word tokens from PDF text layers.
type Preprocessor struct {
	observer *observability.StandardObserver
	conf     *model.Configuration
}

// New creates a PDF text-layer preprocessor.
func New() *Preprocessor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Preprocessor{conf: conf}
}

func (p *Preprocessor) GetName() string { return "pdf_text" }

func (p *Preprocessor) GetSupportedExtensions() []string { return []string{".pdf"} }

func (p *Preprocessor) SetObserver(observer *observability.StandardObserver) {
	p.observer = observer
}

func (p *Preprocessor) CanProcess(filePath string) bool {
	return preprocessors.HasExtension(filePath, p.GetSupportedExtensions())
}

// Process validates the PDF and converts every page's text layer into tokens.
func (p *Preprocessor) Process(filePath string) (*evidence.Bundle, error) {
	finish := p.observer.StartTiming("pdf_text", "extract", filePath)

	b, err := p.extract(filePath)
	if err != nil {
		finish(false, map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	finish(true, map[string]interface{}{"tokens": b.TokenCount(), "pages": len(b.Runs[0].Pages)})
	return b, nil
}

func (p *Preprocessor) extract(filePath string) (*evidence.Bundle, error) {
	cleanPath := filepath.Clean(filePath)
	if err := api.ValidateFile(cleanPath, p.conf); err != nil {
		return nil, fmt.Errorf("invalid PDF file: %w", err)
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", cleanPath, err)
	}
	pageCount, err := api.PageCount(f, p.conf)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to get page count for %s: %w", cleanPath, err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("PDF has no pages: %s", cleanPath)
	}

	pf, r, err := pdf.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF: %w", err)
	}
	defer pf.Close()

	run := evidence.Run{Engine: Engine}
	for i := 1; i <= r.NumPage(); i++ {
		page, err := p.readPage(r, i)
		if err != nil {
			return nil, err
		}
		run.Pages = append(run.Pages, page)
	}

	b := &evidence.Bundle{
		DocumentID: preprocessors.DocumentID(cleanPath),
		Runs:       []evidence.Run{run},
	}
	if b.TokenCount() == 0 {
		return nil, fmt.Errorf("PDF has no text layer: %s", cleanPath)
	}
	return b, nil
}

func (p *Preprocessor) readPage(r *pdf.Reader, n int) (page evidence.Page, err error) {
	page = evidence.Page{PageNumber: n, Tokens: []evidence.Token{}}
	pg := r.Page(n)
	if pg.V.IsNull() {
		return page, nil
	}

	// The content stream parser panics on malformed operators.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page %d: malformed content stream: %v", n, rec)
		}
	}()

	width, height, top := mediaBox(pg)
	glyphs := pg.Content().Text
	if top == 0 {
		top = glyphTop(glyphs)
	}
	page.Width, page.Height = width, height

	for i, w := range Words(glyphs, top) {
		page.Tokens = append(page.Tokens, evidence.Token{
			TokenID:    fmt.Sprintf("p%d-w%04d", n, i+1),
			Text:       w.Text,
			BBox:       w.BBox,
			Confidence: evidence.Confidence(1.0),
			Level:      evidence.LevelWord,
		})
	}
	return page, nil
}

// mediaBox returns page width, height and the user-space y of the top edge.
// Inherited boxes are not resolved; callers fall back to glyph extents.
func mediaBox(pg pdf.Page) (width, height, top float64) {
	box := pg.V.Key("MediaBox")
	if box.Kind() != pdf.Array || box.Len() < 4 {
		return 0, 0, 0
	}
	x0, y0 := box.Index(0).Float64(), box.Index(1).Float64()
	x1, y1 := box.Index(2).Float64(), box.Index(3).Float64()
	return x1 - x0, y1 - y0, y1
}

func glyphTop(glyphs []pdf.Text) float64 {
	top := 0.0
	for _, g := range glyphs {
		top = math.Max(top, g.Y+fontSize(g))
	}
	return top
}

// Word is a run of adjacent glyphs on one row, in top-left page coordinates.
type Word struct {
	Text string
	BBox evidence.BBox
}

// Words groups glyphs into rows by baseline, then merges adjacent glyphs in
// each row into words. Whitespace glyphs and gaps wider than a quarter of the
// font size end a word. PDF y grows upward, so boxes are flipped against top.
func Words(glyphs []pdf.Text, top float64) []Word {
	sorted := make([]pdf.Text, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S != "" {
			sorted = append(sorted, g)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var words []Word
	for _, row := range rows(sorted) {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		words = append(words, mergeRow(row, top)...)
	}
	return words
}

func rows(glyphs []pdf.Text) [][]pdf.Text {
	var out [][]pdf.Text
	var baseline float64
	for _, g := range glyphs {
		n := len(out)
		if n > 0 && math.Abs(baseline-g.Y) <= rowToleranceRatio*fontSize(g) {
			out[n-1] = append(out[n-1], g)
			continue
		}
		out = append(out, []pdf.Text{g})
		baseline = g.Y
	}
	return out
}

type wordBuilder struct {
	text     strings.Builder
	x0, x1   float64
	baseline float64
	size     float64
	open     bool
}

func (w *wordBuilder) add(g pdf.Text) {
	if !w.open {
		w.x0, w.baseline, w.size = g.X, g.Y, 0
		w.open = true
	}
	w.text.WriteString(g.S)
	w.x1 = g.X + glyphWidth(g)
	w.baseline = math.Min(w.baseline, g.Y)
	w.size = math.Max(w.size, fontSize(g))
}

func (w *wordBuilder) flush(top float64, out []Word) []Word {
	if !w.open {
		return out
	}
	out = append(out, Word{
		Text: w.text.String(),
		BBox: evidence.BBox{
			X0: w.x0,
			Y0: top - (w.baseline + w.size),
			X1: w.x1,
			Y1: top - w.baseline,
		},
	})
	w.text.Reset()
	w.open = false
	return out
}

func mergeRow(row []pdf.Text, top float64) []Word {
	var out []Word
	var w wordBuilder
	for _, g := range row {
		if isSpace(g.S) {
			out = w.flush(top, out)
			continue
		}
		if w.open && g.X-w.x1 > wordGapRatio*fontSize(g) {
			out = w.flush(top, out)
		}
		w.add(g)
	}
	return w.flush(top, out)
}

func isSpace(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}

func fontSize(g pdf.Text) float64 {
	if g.FontSize > 0 {
		return g.FontSize
	}
	return defaultFontSize
}

func glyphWidth(g pdf.Text) float64 {
	if g.W > 0 {
		return g.W
	}
	return 0.5 * fontSize(g)
}
