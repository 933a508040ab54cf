package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Configure binds the global logger once per process, so a single test
// exercises both the first call and the no-op repeat.
func TestConfigure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Configure(Config{Level: "debug", Output: &buf}))

	logger := WithComponent("test")
	logger.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rcpilot", entry["service"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "hello", entry["message"])

	var other bytes.Buffer
	require.NoError(t, Configure(Config{Output: &other}))
	base := Base()
	base.Info().Msg("again")
	assert.Zero(t, other.Len(), "later Configure calls must not rebind output")
}
