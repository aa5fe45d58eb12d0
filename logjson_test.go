package emdiff

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emdiff/emdiff/pkg/eventlog"
)

const logFixture = `{
  "attributes": {"source": "test"},
  "traces": [
    {
      "attributes": {"concept:name": "case-1"},
      "events": [
        {"concept:name": "register", "time:timestamp": "2024-03-01T09:00:00Z"},
        {"concept:name": "approve", "time:timestamp": "2024-03-01T09:30:00Z", "amount": 12.5}
      ]
    },
    {"events": [{"concept:name": "register", "time:timestamp": "2024-03-01T10:00:00+01:00"}]}
  ]
}`

func TestReadLog(t *testing.T) {
	log, err := ReadLog(strings.NewReader(logFixture))
	require.NoError(t, err)
	require.Len(t, log.Traces, 2)

	src, ok := log.Attributes["source"].AsString()
	require.True(t, ok)
	assert.Equal(t, "test", src)

	caseID, err := log.Traces[0].StringAttr(eventlog.TraceIDKey)
	require.NoError(t, err)
	assert.Equal(t, "case-1", caseID)

	first := log.Traces[0].Events[0]
	activity, err := first.Activity()
	require.NoError(t, err)
	assert.Equal(t, "register", activity)

	ts, err := first.CompleteTimestamp()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), ts)

	amount, ok := log.Traces[0].Events[1].Attributes["amount"].AsFloat()
	require.True(t, ok)
	assert.Equal(t, 12.5, amount)

	// Timestamps keep their original offset.
	offset, err := log.Traces[1].Events[0].CompleteTimestamp()
	require.NoError(t, err)
	assert.True(t, offset.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))
}

func TestReadLogMalformed(t *testing.T) {
	_, err := ReadLog(strings.NewReader(`{"traces": [`))
	assert.Error(t, err)
}
