// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package contract

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed envelope.schema.json
var envelopeSchemaJSON []byte

const envelopeSchemaURL = "extraction_envelope.schema.json"

var (
	envelopeOnce   sync.Once
	envelopeSchema *jsonschema.Schema
	envelopeErr    error
)

func compiledEnvelopeSchema() (*jsonschema.Schema, error) {
	envelopeOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(envelopeSchemaURL, bytes.NewReader(envelopeSchemaJSON)); err != nil {
			envelopeErr = fmt.Errorf("add envelope schema: %w", err)
			return
		}
		envelopeSchema, envelopeErr = compiler.Compile(envelopeSchemaURL)
		if envelopeErr != nil {
			envelopeErr = fmt.Errorf("compile envelope schema: %w", envelopeErr)
		}
	})
	return envelopeSchema, envelopeErr
}

// ValidateEnvelope checks serialized output against the envelope schema: a
// PASS with a description and trace, or a FAIL with a reason, and nothing
// else.
func ValidateEnvelope(data []byte) error {
	schema, err := compiledEnvelopeSchema()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse envelope: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("envelope does not match schema: %w", err)
	}
	return nil
}

// Marshal serializes r and checks the result against the envelope schema.
func Marshal(r Result) ([]byte, error) {
	data, err := json.Marshal(ToEnvelope(r))
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	if err := ValidateEnvelope(data); err != nil {
		return nil, err
	}
	return data, nil
}
