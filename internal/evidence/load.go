// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package evidence

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed bundle.schema.json
var bundleSchemaJSON []byte

const bundleSchemaURL = "evidence_bundle.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func bundleSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(bundleSchemaURL, bytes.NewReader(bundleSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add bundle schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(bundleSchemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile bundle schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// Load decodes a bundle from JSON, validating it against the bundle schema and
// rejecting duplicate token ids.
func Load(r io.Reader) (*Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	return Decode(data)
}

// LoadFile reads and decodes the bundle stored at path.
func LoadFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading bundle file: %w", err)
	}
	b, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Decode validates and unmarshals raw bundle JSON.
func Decode(data []byte) (*Bundle, error) {
	schema, err := bundleSchema()
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse bundle: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("bundle does not match schema: %w", err)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	if err := CheckUniqueIDs(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// CheckUniqueIDs returns a DuplicateTokenError for the first repeated id.
func CheckUniqueIDs(b *Bundle) error {
	seen := make(map[string]struct{}, b.TokenCount())
	for _, run := range b.Runs {
		for _, page := range run.Pages {
			for _, tok := range page.Tokens {
				if _, dup := seen[tok.TokenID]; dup {
					return &DuplicateTokenError{TokenID: tok.TokenID}
				}
				seen[tok.TokenID] = struct{}{}
			}
		}
	}
	return nil
}
