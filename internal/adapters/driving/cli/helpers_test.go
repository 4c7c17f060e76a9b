package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jnphilipp/papis-search-provider/internal/adapters/driven/storage/memory"
	"github.com/jnphilipp/papis-search-provider/internal/core/services"
	"github.com/jnphilipp/papis-search-provider/internal/logger"
)

// setupTestLibrary creates a papis library and points the settings at it.
// It returns the library and index directories.
func setupTestLibrary(t *testing.T) (string, string) {
	t.Helper()

	lib := t.TempDir()
	writeDoc(t, lib, "lecun-2015", `papis_id: lecun2015
title: Deep Learning
author: LeCun, Yann
year: 2015
abstract: Deep learning allows computational models...
files: [paper.pdf]
`)
	writeDoc(t, lib, "vaswani-2017", `papis_id: vaswani2017
title: Attention Is All You Need
author: Vaswani, Ashish
year: 2017
`)

	indexDir := filepath.Join(t.TempDir(), "index")
	store := memory.NewConfigStore(map[string]any{
		"libraries": []string{lib},
		"index.dir": indexDir,
	})

	oldService := settingsService
	settingsService = services.NewSettingsService(store, t.TempDir(), t.TempDir())
	t.Cleanup(func() {
		settingsService = oldService
		logger.SetVerbose(false)
	})

	resetFlags()
	return lib, indexDir
}

func writeDoc(t *testing.T, lib, folder, info string) {
	t.Helper()
	dir := filepath.Join(lib, folder)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "info.yaml"), []byte(info), 0644))
}

// resetFlags restores flag variables shared between Execute calls.
func resetFlags() {
	configDir = ""
	verbose = false
	searchLimit = 10
	searchJSON = false
	searchNoCache = false
	serveBusName = ""
	serveNoCache = false
	serveNoWatch = false
	desktopDir = "."
	desktopExec = ""
	desktopID = DefaultDesktopID
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
