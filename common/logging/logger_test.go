package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerCarriesRunId(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	runId := uuid.New()
	logger := NewLogger("resolver", WithOutput(&buf), WithJSON(), WithRunId(runId))
	logger.Warn().Uint64(FieldSharedVersion, 373_000).Msg("Resolved shared object")

	var event map[string]any
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "resolver", event[FieldComponent])
	assert.Equal(t, runId.String(), event[FieldRunId])
	assert.Equal(t, "Resolved shared object", event["message"])
	assert.InDelta(t, 373_000, event[FieldSharedVersion], 0)
	assert.Contains(t, event, "caller")
}

func TestConsoleLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger("submitter", WithOutput(&buf))
	logger.Warn().Msg("Transaction rejected")

	line := buf.String()
	assert.Contains(t, line, "[submitter]")
	assert.Contains(t, line, "Transaction rejected")
	assert.NotContains(t, line, "\x1b[", "a buffer is not a terminal")
	assert.NotContains(t, line, FieldRunId)
	assert.False(t, strings.HasPrefix(line, "{"))
}
