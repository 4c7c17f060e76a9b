package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [terms...]", searchCmd.Use)
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestSearchCmd_NoCache(t *testing.T) {
	setupTestLibrary(t)

	out, err := execute(t, "search", "--no-cache", "deep")

	require.NoError(t, err)
	assert.Contains(t, out, "Deep Learning")
	assert.Contains(t, out, "lecun2015")
	assert.Contains(t, out, "Deep learning allows")
	assert.NotContains(t, out, "Attention")
}

func TestSearchCmd_JSON(t *testing.T) {
	setupTestLibrary(t)

	out, err := execute(t, "search", "--no-cache", "--json")

	require.NoError(t, err)
	var results []searchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "lecun2015", results[0].ID)
	assert.Equal(t, "Attention Is All You Need", results[1].Name)
	assert.Empty(t, results[1].Description)
}

func TestSearchCmd_Limit(t *testing.T) {
	setupTestLibrary(t)

	out, err := execute(t, "search", "--no-cache", "--json", "-n", "1")

	require.NoError(t, err)
	var results []searchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Len(t, results, 1)
}

func TestSearchCmd_NoResults(t *testing.T) {
	setupTestLibrary(t)

	out, err := execute(t, "search", "--no-cache", "quantum")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_UsesIndex(t *testing.T) {
	setupTestLibrary(t)

	out, err := execute(t, "index")
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 2 documents")

	resetFlags()
	out, err = execute(t, "search", "author:vaswani")
	require.NoError(t, err)
	assert.Contains(t, out, "Attention Is All You Need")
}

func TestSearchCmd_EmptyIndex(t *testing.T) {
	setupTestLibrary(t)

	out, err := execute(t, "search", "deep")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "ä", truncate("äöü", 1))
	assert.Equal(t, 5, len([]rune(truncate(strings.Repeat("x", 20), 5))))
}
