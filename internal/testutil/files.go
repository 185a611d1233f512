// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"

	"legal-extract/internal/evidence"
)

// Deed returns a two page bundle whose EXHIBIT A on page 2 is followed by a
// clean metes-and-bounds description, so it extracts to PASS.
func Deed(docID string) *evidence.Bundle {
	b := NewBundle(docID)
	p1 := b.Page(1)
	p1.Line("This", "deed", "is", "made", "between", "the", "parties")
	p1.Line("as", "recorded", "in", "book", "12")
	p2 := b.Page(2)
	p2.Line("EXHIBIT", "A")
	p2.Line("Beginning", "at", "the", "northwest", "corner", "of", "lot", "4")
	p2.Line("Thence", "N", "45°30'00\"", "E", "100", "feet")
	return b.Bundle()
}

// NoAnchorDeed returns a bundle without any legal description heading.
func NoAnchorDeed(docID string) *evidence.Bundle {
	b := NewBundle(docID)
	b.Page(1).Line("This", "deed", "is", "made", "between", "the", "parties")
	return b.Bundle()
}

// WriteBundle serializes b as JSON to dir/name and returns the path.
func WriteBundle(dir, name string, b *evidence.Bundle) (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
