package log

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewLogger_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	l, err := NewLogger(path, "info", false)
	require.NoError(t, err)
	l.Info().Str("id", "1").Bool("on", true).Msg("device toggled")
	l.Debug().Msg("hidden at info level")
	l.Close()

	content := readFile(t, path)
	assert.Contains(t, content, `"message":"device toggled"`)
	assert.Contains(t, content, `"id":"1"`)
	assert.Contains(t, content, `"on":true`)
	assert.NotContains(t, content, "hidden at info level")
}

func TestNewLogger_DebugLowersLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	l, err := NewLogger(path, "warn", true)
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, zerolog.DebugLevel, l.level)
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(filepath.Join(t.TempDir(), "x.log"), "loud", false)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zerolog.Level
		wantErr bool
	}{
		{input: "", want: zerolog.InfoLevel},
		{input: "debug", want: zerolog.DebugLevel},
		{input: "warn", want: zerolog.WarnLevel},
		{input: "nonsense", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogger_Rotate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rotate.log")
	moved := filepath.Join(dir, "rotate.log.1")

	l, err := NewLogger(path, "info", false)
	require.NoError(t, err)
	defer l.Close()

	l.Info().Msg("before rotation")
	require.NoError(t, os.Rename(path, moved))
	require.NoError(t, l.Rotate())
	l.Info().Msg("after rotation")

	assert.Contains(t, readFile(t, moved), "before rotation")
	assert.Contains(t, readFile(t, path), "after rotation")
	assert.NotContains(t, readFile(t, path), "before rotation")
}

func TestLogger_RotateWhileLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "busy.log")
	l, err := NewLogger(path, "info", false)
	require.NoError(t, err)

	const events = 500
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < events; i++ {
			l.Info().Int("n", i).Msg("tick")
		}
	}()
	for i := 0; i < 50; i++ {
		require.NoError(t, l.Rotate())
	}
	wg.Wait()
	l.Close()

	lines := strings.Split(strings.TrimSpace(readFile(t, path)), "\n")
	assert.Len(t, lines, events)
}

func TestNewLogger_EmptyFilenameWritesNoFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	l, err := NewLogger("", "debug", false)
	require.NoError(t, err)
	l.Info().Msg("nowhere")
	assert.NoError(t, l.Rotate())
	l.Close()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLogger_CloseThenLogIsSafe(t *testing.T) {
	l, err := NewLogger(filepath.Join(t.TempDir(), "closed.log"), "info", false)
	require.NoError(t, err)

	l.Close()
	assert.NotPanics(t, func() { l.Info().Msg("dropped") })
	assert.NoError(t, l.Rotate())
}

func TestSetLogger_NilInstallsNop(t *testing.T) {
	orig := GetLogger()
	t.Cleanup(func() { logger = orig })

	SetLogger(nil)
	require.NotNil(t, GetLogger())
	assert.NotPanics(t, func() { GetLogger().Warn().Msg("ignored") })
}
