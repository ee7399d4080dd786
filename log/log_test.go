package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		require.NoError(t, SetFormat("text"))
		SetLevel(InfoLevel)
	})
	return &buf
}

func TestSetFormat_JSON(t *testing.T) {
	buf := capture(t)
	require.NoError(t, SetFormat("json"))

	WithFields(Fields{"username": "admin"}).Info("admin user saved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "admin user saved", entry["msg"])
	assert.Equal(t, "admin", entry["username"])
	assert.Equal(t, "info", entry["level"])
}

func TestSetFormat_Unknown(t *testing.T) {
	assert.Error(t, SetFormat("xml"))
}

func TestSetLevel(t *testing.T) {
	buf := capture(t)

	Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetLevel(DebugLevel)
	Log(DebugLevel, "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithError(t *testing.T) {
	buf := capture(t)
	require.NoError(t, SetFormat("json"))

	WithError(errors.New("disk on fire")).Error("create_form")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "disk on fire", entry["error"])
	assert.Equal(t, "create_form", entry["msg"])
}
