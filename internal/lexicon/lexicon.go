// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package lexicon holds the versioned term dictionary used by lexicon fixes.
package lexicon

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"legal-extract/internal/bearings"
)

// Lexicon maps a known OCR misreading of a word to its repaired form.
type Lexicon struct {
	version string
	entries map[string]string
}

// File is the on-disk YAML layout.
type File struct {
	Version string            `yaml:"version"`
	Entries map[string]string `yaml:"entries"`
}

// Empty returns a lexicon with no entries.
func Empty() *Lexicon {
	return &Lexicon{entries: map[string]string{}}
}

// New validates entries and builds a lexicon from them.
func New(version string, entries map[string]string) (*Lexicon, error) {
	if err := Validate(entries); err != nil {
		return nil, err
	}
	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &Lexicon{version: version, entries: copied}, nil
}

// Validate rejects entries that could make a second pass change the text:
// blank or multi-word terms, identity mappings, replacements that are
// themselves terms, and replacements holding glyphs that symbol repair
// rewrites.
func Validate(entries map[string]string) error {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		v := entries[k]
		switch {
		case strings.TrimSpace(k) == "" || strings.ContainsAny(k, " \t\n"):
			errs = append(errs, fmt.Errorf("term %q must be a single word", k))
		case strings.TrimSpace(v) == "":
			errs = append(errs, fmt.Errorf("term %q has an empty replacement", k))
		case k == v:
			errs = append(errs, fmt.Errorf("term %q maps to itself", k))
		case bearings.RepairSymbols(v) != v:
			errs = append(errs, fmt.Errorf("replacement for %q contains a legacy symbol", k))
		default:
			for _, word := range strings.Fields(v) {
				if _, ok := entries[word]; ok {
					errs = append(errs, fmt.Errorf("replacement for %q contains term %q", k, word))
					break
				}
			}
		}
	}
	return errors.Join(errs...)
}

// Parse decodes a YAML lexicon document.
func Parse(data []byte) (*Lexicon, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if f.Version == "" {
		return nil, fmt.Errorf("lexicon is missing a version")
	}
	lex, err := New(f.Version, f.Entries)
	if err != nil {
		return nil, fmt.Errorf("invalid lexicon %s: %w", f.Version, err)
	}
	return lex, nil
}

// Load reads a YAML lexicon file.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}
	return Parse(data)
}

// Version identifies the dictionary revision.
func (l *Lexicon) Version() string { return l.version }

// Len returns the number of terms.
func (l *Lexicon) Len() int { return len(l.entries) }

// Lookup returns the repaired form of word, if the lexicon knows it.
func (l *Lexicon) Lookup(word string) (string, bool) {
	if l == nil {
		return "", false
	}
	v, ok := l.entries[word]
	return v, ok
}

// Replace rewrites every space-separated word that has an entry. Spacing is
// preserved as-is.
func (l *Lexicon) Replace(text string) string {
	if l == nil || len(l.entries) == 0 {
		return text
	}
	words := strings.Split(text, " ")
	for i, w := range words {
		if v, ok := l.entries[w]; ok {
			words[i] = v
		}
	}
	return strings.Join(words, " ")
}
