// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package bearings classifies the surveying tokens that scoring, correction
// and uncertainty detection care about.
package bearings

import "strings"

// Symbols are the degree and prime marks, including the legacy glyphs that
// symbol repair rewrites.
const Symbols = "°º˚′″"

// legacy rewrites the legacy degree and prime glyphs to their standard forms.
var legacy = strings.NewReplacer(
	"º", "°",
	"˚", "°",
	"′", "'",
	"″", `"`,
)

// RepairSymbols rewrites legacy degree and prime glyphs in text.
func RepairSymbols(text string) string {
	return legacy.Replace(text)
}

// Thence is the call that starts each course of a metes-and-bounds description.
const Thence = "THENCE"

// Cardinal directions used in bearings.
const (
	North = "N"
	South = "S"
	East  = "E"
	West  = "W"
)

// HasSymbol reports whether text carries a degree or prime mark.
func HasSymbol(text string) bool {
	return strings.ContainsAny(text, Symbols)
}

// IsCardinal reports whether text is exactly one of N, S, E or W.
func IsCardinal(text string) bool {
	switch text {
	case North, South, East, West:
		return true
	}
	return false
}

// IsCritical reports whether a token carries direction or angle information
// whose loss would change the meaning of a course.
func IsCritical(text string) bool {
	return IsCardinal(text) || text == Thence || HasSymbol(text)
}

// IsBearingToken reports whether a token contributes to bearing density.
func IsBearingToken(text string) bool {
	return IsCardinal(text) || HasSymbol(text) || strings.EqualFold(text, Thence)
}
