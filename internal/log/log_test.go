package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })
	return &buf
}

func TestWrite_Format(t *testing.T) {
	buf := capture(t)

	Info(CatBuffer, "Loaded document", "lines", 3, "dirty", false)

	line := buf.String()
	require.Contains(t, line, "[INFO] [buffer] Loaded document lines=3 dirty=false")
	require.True(t, strings.HasSuffix(line, "\n"))
}

func TestWrite_OrphanKey(t *testing.T) {
	buf := capture(t)

	Debug(CatView, "Scrolled", "top")

	require.Contains(t, buf.String(), "top=<missing>")
}

func TestErrorErr(t *testing.T) {
	buf := capture(t)

	ErrorErr(CatFile, "Save failed", errors.New("disk full"), "path", "a.txt")
	ErrorErr(CatFile, "No error", nil)

	out := buf.String()
	require.Contains(t, out, "[ERROR] [file] Save failed path=a.txt error=disk full")
	require.Contains(t, out, "No error error=<nil>")
}

func TestMinLevel(t *testing.T) {
	buf := capture(t)
	SetMinLevel(LevelWarn)

	Debug(CatUI, "hidden")
	Info(CatUI, "hidden")
	Warn(CatUI, "shown")
	Error(CatUI, "also shown")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "[WARN] [ui] shown")
	require.Contains(t, out, "[ERROR] [ui] also shown")
}

func TestSetEnabled(t *testing.T) {
	buf := capture(t)

	SetEnabled(false)
	Info(CatEditor, "muted")
	SetEnabled(true)
	Info(CatEditor, "audible")

	require.NotContains(t, buf.String(), "muted")
	require.Contains(t, buf.String(), "audible")
}

func TestDisabledByDefault(t *testing.T) {
	SetOutput(nil)

	require.NotPanics(t, func() {
		Info(CatConfig, "nowhere")
		SetMinLevel(LevelError)
		SetEnabled(false)
	})
}

func TestInit_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	cleanup, err := Init(path, "hecto")
	require.NoError(t, err)
	Warn(CatWatcher, "File removed", "path", "x")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[WARN] [watcher] File removed path=x")
	require.Nil(t, current())
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(99).String())
}
