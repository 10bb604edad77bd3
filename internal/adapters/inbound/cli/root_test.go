package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pluginpulse")
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "bogus")
	assert.Error(t, err)
}

func TestCacheClearCommand(t *testing.T) {
	srv := fixtureServer(t)
	dir := t.TempDir()

	_, err := run(t, "search", "seo", "--api-url", srv.URL, "--cache-dir", dir)
	require.NoError(t, err)

	out, err := run(t, "cache", "clear", "--cache-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 cached entries")
}

func TestCacheClearSearchesOnly(t *testing.T) {
	srv := fixtureServer(t)
	dir := t.TempDir()

	_, err := run(t, "search", "seo", "--api-url", srv.URL, "--cache-dir", dir)
	require.NoError(t, err)
	_, err = run(t, "score", "good-seo", "--api-url", srv.URL, "--cache-dir", dir)
	require.NoError(t, err)

	out, err := run(t, "cache", "clear", "--searches", "--cache-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 cached entries")
}
