// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package bearings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifiers(t *testing.T) {
	tests := []struct {
		text     string
		cardinal bool
		critical bool
		bearing  bool
	}{
		{"N", true, true, true},
		{"W", true, true, true},
		{"n", false, false, false},
		{"NE", false, false, false},
		{"THENCE", false, true, true},
		{"Thence", false, false, true},
		{"45°30'", false, true, true},
		{"45º", false, true, true},
		{"30′", false, true, true},
		{"feet", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.cardinal, IsCardinal(tt.text))
			assert.Equal(t, tt.critical, IsCritical(tt.text))
			assert.Equal(t, tt.bearing, IsBearingToken(tt.text))
		})
	}
}

func TestRepairSymbols(t *testing.T) {
	assert.Equal(t, `N 45°30'15" E`, RepairSymbols("N 45º30′15″ E"))
	assert.Equal(t, "10°", RepairSymbols("10˚"))
	assert.Equal(t, "N 45°30' E", RepairSymbols("N 45°30' E"))
}
