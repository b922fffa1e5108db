package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempo/internal/platform"
	"tempo/internal/storage"
)

var cliNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.Local)

func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	app := &cli{platform: platform.NewService(), now: func() time.Time { return cliNow }}
	root := newRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config-dir", dir}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestNotesLifecycle(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()

			out, err := runCLI(t, dir, "--backend", backend, "notes", "add", "--date", "2026-10-5", "dentist", "at", "3")
			require.NoError(t, err)
			assert.Contains(t, out, "on 2026-10-05")

			out, err = runCLI(t, dir, "--backend", backend, "notes", "add", "standup")
			require.NoError(t, err)
			assert.Contains(t, out, "on 2026-10-18")

			out, err = runCLI(t, dir, "--backend", backend, "notes", "list")
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(out), "\n")
			require.Len(t, lines, 2)
			assert.Contains(t, lines[0], "2026-10-18  standup")
			assert.Contains(t, lines[1], "2026-10-05  dentist at 3")

			out, err = runCLI(t, dir, "--backend", backend, "notes", "list", "--date", "2026-10-05")
			require.NoError(t, err)
			assert.NotContains(t, out, "standup")

			id := strings.Fields(lines[1])[0]
			_, err = runCLI(t, dir, "--backend", backend, "notes", "delete", id)
			require.NoError(t, err)
			_, err = runCLI(t, dir, "--backend", backend, "notes", "delete", id)
			assert.ErrorIs(t, err, errNoteNotFound)

			out, err = runCLI(t, dir, "--backend", backend, "calendar", "--month", "2026-10")
			require.NoError(t, err)
			assert.Contains(t, out, "October 2026")
			assert.Contains(t, out, "18*")
			assert.NotContains(t, out, " 5*")
		})
	}
}

func TestBackendFromSettings(t *testing.T) {
	dir := t.TempDir()
	settings, err := storage.LoadSettings(dir)
	require.NoError(t, err)
	settings.Backend = "sqlite"
	require.NoError(t, storage.SaveSettings(dir, settings))

	_, err = runCLI(t, dir, "notes", "add", "kept in sqlite")
	require.NoError(t, err)
	assert.FileExists(t, storage.SQLitePath(dir))
	assert.NoFileExists(t, filepath.Join(dir, "notes.json"))
}

func TestInvalidInput(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "--backend", "etcd", "notes", "list")
	assert.Error(t, err)

	_, err = runCLI(t, dir, "notes", "add", "--date", "2026-02-30", "nope")
	assert.Error(t, err)

	_, err = runCLI(t, dir, "notes", "delete", "abc")
	assert.Error(t, err)

	_, err = runCLI(t, dir, "calendar", "--month", "October")
	assert.Error(t, err)
}

func TestBlankNoteIsNoop(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "notes", "add", "kept")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "notes", "add", "   ")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = runCLI(t, dir, "notes", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "kept")
}

func TestDataDirOverride(t *testing.T) {
	configDir := t.TempDir()
	dataDir := filepath.Join(t.TempDir(), "data")

	_, err := runCLI(t, configDir, "--data-dir", dataDir, "notes", "add", "elsewhere")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dataDir, "notes.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "elsewhere")
}
