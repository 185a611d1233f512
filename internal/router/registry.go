// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"fmt"
	"sort"
	"strings"

	"legal-extract/internal/preprocessors"
)

// PreprocessorFactory creates a preprocessor instance
type PreprocessorFactory func() preprocessors.Preprocessor

// PreprocessorRegistry holds preprocessor factories by name. Registering a
// name twice replaces the earlier factory.
type PreprocessorRegistry struct {
	factories map[string]PreprocessorFactory
}

// NewPreprocessorRegistry creates a new preprocessor registry
func NewPreprocessorRegistry() *PreprocessorRegistry {
	return &PreprocessorRegistry{
		factories: make(map[string]PreprocessorFactory),
	}
}

// Register adds a preprocessor factory to the registry
func (r *PreprocessorRegistry) Register(name string, factory PreprocessorFactory) {
	r.factories[name] = factory
}

// GetRegisteredNames returns all registered preprocessor names in sorted order
func (r *PreprocessorRegistry) GetRegisteredNames() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build creates every registered preprocessor in name order. Each extension
// may be claimed by one preprocessor only, so the input format of a file is
// decided by its extension alone.
func (r *PreprocessorRegistry) Build() ([]preprocessors.Preprocessor, error) {
	owners := make(map[string]string)
	var built []preprocessors.Preprocessor
	for _, name := range r.GetRegisteredNames() {
		p := r.factories[name]()
		if p == nil {
			return nil, fmt.Errorf("preprocessor %q: factory returned nil", name)
		}
		for _, ext := range p.GetSupportedExtensions() {
			ext = strings.ToLower(ext)
			if owner, taken := owners[ext]; taken {
				return nil, fmt.Errorf("extension %s claimed by both %s and %s", ext, owner, name)
			}
			owners[ext] = name
		}
		built = append(built, p)
	}
	return built, nil
}
