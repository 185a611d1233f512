// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package layout holds the page-adaptive geometry shared by ordering, anchor
// detection, structural validation and line reconstruction.
package layout

import (
	"math"
	"strings"
	"unicode"

	"legal-extract/internal/evidence"
)

const (
	minVerticalTolerance   = 3.0
	verticalHeightFactor   = 0.25
	minHorizontalTolerance = 15.0
	horizontalCharFactor   = 1.5
)

// VerticalTolerance is the largest y0 drift allowed between tokens of one row.
func VerticalTolerance(s evidence.PageStats) float64 {
	return math.Max(minVerticalTolerance, verticalHeightFactor*s.MedianTokenHeight)
}

// HorizontalTolerance is the largest gap allowed between adjacent tokens of
// one heading group.
func HorizontalTolerance(s evidence.PageStats) float64 {
	return math.Max(horizontalCharFactor*s.MedianCharWidth, minHorizontalTolerance)
}

// IsUpper reports whether s has at least one cased letter and no lower-case
// or title-case letters.
func IsUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}

// IsHeadingWord reports whether a token can take part in a heading-like
// group: a non-blank, upper-case, word-level token.
func IsHeadingWord(tok evidence.Token) bool {
	return tok.Level == evidence.LevelWord &&
		strings.TrimSpace(tok.Text) != "" &&
		IsUpper(tok.Text)
}
