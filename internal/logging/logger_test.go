package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/aicost/internal/config"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })
	return &buf
}

func decodeEvent(t *testing.T, buf *bytes.Buffer) Event {
	t.Helper()
	var e Event
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &e))
	return e
}

func TestInfo(t *testing.T) {
	buf := captureOutput(t)

	New("test").Info("something_happened", map[string]interface{}{"count": 3})

	e := decodeEvent(t, buf)
	assert.Equal(t, LevelInfo, e.Level)
	assert.Equal(t, "test", e.Component)
	assert.Equal(t, "something_happened", e.Event)
	assert.Equal(t, float64(3), e.Extra["count"])
	assert.NotEmpty(t, e.Timestamp)

	_, err := uuid.Parse(e.EventID)
	assert.NoError(t, err)
}

func TestError(t *testing.T) {
	buf := captureOutput(t)

	New("test").Error("load_failed", errors.New("boom"), nil)

	e := decodeEvent(t, buf)
	assert.Equal(t, LevelError, e.Level)
	assert.Equal(t, "boom", e.Error)
}

func TestDebugGated(t *testing.T) {
	buf := captureOutput(t)

	os.Unsetenv("AICOST_DEBUG")
	config.ResetEnv()
	New("test").Debug("hidden", nil)
	assert.Zero(t, buf.Len())

	// The gate follows config, so resetting the env singleton is what
	// makes the new setting visible.
	os.Setenv("AICOST_DEBUG", "1")
	config.ResetEnv()
	defer func() {
		os.Unsetenv("AICOST_DEBUG")
		config.ResetEnv()
	}()
	New("test").Debug("visible", nil)

	e := decodeEvent(t, buf)
	assert.Equal(t, LevelDebug, e.Level)
	assert.Equal(t, "visible", e.Event)
}
