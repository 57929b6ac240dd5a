package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(InfoLevel, JSONFormat, &buf)

	log.Infow("telemetry_ingested", "id", "abc")
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "telemetry_ingested", entry["msg"])
	assert.Equal(t, "abc", entry["id"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "ts")
}

func TestNew_ConsoleFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(WarnLevel, ConsoleFormat, &buf)

	log.Infow("dropped")
	log.Warnw("kept", "k", 1)

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.True(t, strings.HasPrefix(out, "WARN"), out)
	assert.Contains(t, out, `{"k": 1}`)
}

func TestToZapLevel_UnknownFallsBackToInfo(t *testing.T) {
	assert.Equal(t, defaultZapLevel, toZapLevel("verbose"))
}

func TestGet_ReturnsSingleton(t *testing.T) {
	a := Get(DebugLevel, ConsoleFormat)
	b := Get(ErrorLevel, JSONFormat)
	assert.Same(t, a, b)
}

func TestNop(t *testing.T) {
	Nop().Errorw("ignored", "err", "x")
}
