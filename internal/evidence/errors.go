// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package evidence

import (
	"errors"
	"fmt"
)

// ErrTokenNotFound is matched by every MissingTokenError.
var ErrTokenNotFound = errors.New("token id not found in evidence bundle")

// MissingTokenError reports a token id that a stage referenced but the
// bundle does not contain. The bundle is inconsistent when this happens, so
// callers abort instead of degrading the result.
type MissingTokenError struct {
	DocumentID string
	TokenID    string
	Stage      string
}

func (e *MissingTokenError) Error() string {
	msg := fmt.Sprintf("token id not found in evidence bundle %s: %s", e.DocumentID, e.TokenID)
	if e.Stage == "" {
		return msg
	}
	return e.Stage + ": " + msg
}

func (e *MissingTokenError) Is(target error) bool {
	return target == ErrTokenNotFound
}

// DuplicateTokenError is returned by Load when two tokens share an id.
type DuplicateTokenError struct {
	TokenID string
}

func (e *DuplicateTokenError) Error() string {
	return fmt.Sprintf("duplicate token id in evidence bundle: %s", e.TokenID)
}
