// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"legal-extract/internal/contract"
	"legal-extract/internal/formatters"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	styles map[string][]color.Attribute
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		styles: map[string][]color.Attribute{
			"green":  {color.FgGreen, color.Bold},
			"red":    {color.FgRed, color.Bold},
			"yellow": {color.FgYellow},
			"cyan":   {color.FgCyan},
			"white":  {color.FgWhite, color.Bold},
		},
	}
}

type palette map[string]*color.Color

// palette builds the colors for one Format call. Color is switched per
// instance so the package-level color.NoColor is left alone.
func (f *Formatter) palette(noColor bool) palette {
	p := make(palette, len(f.styles))
	for name, attrs := range f.styles {
		c := color.New(attrs...)
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
		p[name] = c
	}
	return p
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable summary with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(docs []formatters.Document, options formatters.FormatterOptions) (string, error) {
	if len(docs) == 0 {
		return "No documents processed.", nil
	}

	colors := f.palette(options.NoColor)
	var b strings.Builder
	passed, failed, errored := 0, 0, 0
	for i, d := range docs {
		if i > 0 {
			b.WriteString("\n")
		}
		switch r := d.Result.(type) {
		case contract.Pass:
			passed++
			f.writePass(&b, colors, d, r, options)
		case contract.Fail:
			failed++
			fmt.Fprintf(&b, "%s %s\n", colors["red"].Sprint("FAIL"), f.label(d))
			fmt.Fprintf(&b, "  reason: %s\n", colors["yellow"].Sprint(r.Reason))
		default:
			errored++
			msg := "no result"
			if d.Err != nil {
				msg = d.Err.Error()
			}
			fmt.Fprintf(&b, "%s %s\n", colors["red"].Sprint("ERROR"), f.label(d))
			fmt.Fprintf(&b, "  %s\n", msg)
		}
	}

	if len(docs) > 1 {
		fmt.Fprintf(&b, "\n%s %d passed, %d failed, %d errors\n",
			colors["white"].Sprint("Summary:"), passed, failed, errored)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (f *Formatter) writePass(b *strings.Builder, colors palette, d formatters.Document, r contract.Pass, options formatters.FormatterOptions) {
	fd := r.FinalDescription
	pages := fmt.Sprintf("page %d", fd.PageStart)
	if fd.PageEnd != fd.PageStart {
		pages = fmt.Sprintf("pages %d-%d", fd.PageStart, fd.PageEnd)
	}
	fmt.Fprintf(b, "%s %s (%s)\n", colors["green"].Sprint("PASS"), f.label(d), pages)
	for _, line := range strings.Split(fd.Text, "\n") {
		fmt.Fprintf(b, "  %s\n", line)
	}
	fmt.Fprintf(b, "  %s %d tokens, %d corrections\n",
		colors["cyan"].Sprint("trace:"), len(r.Trace.SelectedSpanTokenIDs), len(r.Trace.Corrections))
	if options.Verbose {
		for _, c := range r.Trace.Corrections {
			fmt.Fprintf(b, "    %s %q -> %q\n", c.Type, c.Before, c.After)
		}
	}
}

func (f *Formatter) label(d formatters.Document) string {
	switch {
	case d.Path != "" && d.DocumentID != "":
		return fmt.Sprintf("%s [%s]", d.Path, d.DocumentID)
	case d.Path != "":
		return d.Path
	default:
		return d.DocumentID
	}
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
