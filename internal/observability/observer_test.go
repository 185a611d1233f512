// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartTiming_DebugWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	o := NewStandardObserver(ObservabilityDebug, &buf)

	done := o.StartTiming("pipeline", "anchors", "doc-1")
	done(true, map[string]interface{}{"anchors": 2})

	var data StandardObservabilityData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, "pipeline", data.Component)
	assert.Equal(t, "anchors", data.Operation)
	assert.Equal(t, "doc-1", data.Target)
	assert.True(t, data.Success)
	assert.Equal(t, o.RequestID(), data.RequestID)
	assert.True(t, strings.HasPrefix(data.RequestID, "req-"))
}

func TestStartTiming_QuietLevels(t *testing.T) {
	for _, level := range []ObservabilityLevel{ObservabilityOff, ObservabilityMetrics} {
		var buf bytes.Buffer
		NewStandardObserver(level, &buf).StartTiming("c", "op", "")(true, nil)
		assert.Zero(t, buf.Len())
	}
}

func TestNilObserversAreNoops(t *testing.T) {
	var o *StandardObserver
	o.StartTiming("c", "op", "")(false, nil)
	o.LogOperation(StandardObservabilityData{})
	assert.Empty(t, o.RequestID())

	var d *DebugObserver
	d.StartStep("c", "step", "")(true, "")
	d.LogDetail("c", "detail")
	d.LogMetric("c", "m", 1)
}

func TestDebugObserver_Indentation(t *testing.T) {
	var buf bytes.Buffer
	d := NewDebugObserver(&buf)
	assert.Same(t, d, d.StandardObserver.DebugObserver)

	outer := d.StartStep("pipeline", "run", "doc")
	d.LogMetric("anchors", "count", 1)
	inner := d.StartStep("pipeline", "validate", "doc")
	inner(false, "no valid spans")
	outer(true, "")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "🔄 pipeline: run"))
	assert.True(t, strings.HasPrefix(lines[1], "     📊 anchors: count = 1"))
	assert.True(t, strings.HasPrefix(lines[2], "  🔄 pipeline: validate"))
	assert.Contains(t, lines[3], "❌ pipeline: validate failed")
	assert.True(t, strings.HasPrefix(lines[4], "✅ pipeline: run completed"))
}
