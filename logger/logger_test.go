package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutOutputsIsNop(t *testing.T) {
	l, err := New(Config{Level: DebugLevel})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(parseLevel(ErrorLevel)))
}

func TestConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: WarnLevel, Console: &buf})
	require.NoError(t, err)

	Set(l)
	defer Set(nil)

	Info("hidden")
	Warn("shown", String("song", "42"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "42")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "soniferous.log")
	l, err := New(Config{Level: InfoLevel, OutputPath: path, MaxSize: 1})
	require.NoError(t, err)

	l.Info("written")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written"`)
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, parseLevel(InfoLevel), parseLevel("verbose"))
}
