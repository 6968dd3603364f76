package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "none"))
	err := cmd.Execute()
	return out.String(), err
}

func TestExpand(t *testing.T) {
	out, err := run(t, "expand", "margin: 1px 2px !important")
	require.NoError(t, err)
	assert.Contains(t, out, "margin-top: 1px !important\n")
	assert.Contains(t, out, "margin-left: 2px !important\n")

	_, err = run(t, "expand", "margin: nonsense")
	assert.Error(t, err)
}

func TestCompose(t *testing.T) {
	out, err := run(t, "compose", "margin-top:1px; margin-right:2px; margin-bottom:1px; margin-left:2px; color: red")
	require.NoError(t, err)
	assert.Equal(t, "margin:1px 2px; color:red;\n", out)
}

func TestMedia(t *testing.T) {
	out, err := run(t, "media", "screen and (min-width: 500px)", "--width", "800", "--implies", "(min-width: 300px)", "--tree")
	require.NoError(t, err)
	assert.Contains(t, out, "matches: true")
	assert.Contains(t, out, "implies")
	assert.NotContains(t, out, "false")

	out, err = run(t, "media", "(min-width: 500px)", "--width", "300")
	require.NoError(t, err)
	assert.Contains(t, out, "matches: false")

	out, err = run(t, "media", "--supports", "(display: grid) and (not (margin: nonsense))")
	require.NoError(t, err)
	assert.Contains(t, out, "supported: true")
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(`<html><head>
		<link rel="stylesheet" href="base.css">
	</head><body><p class="a">text</p><div>other</div></body></html>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.css"), []byte(`p { color: blue }`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "themes", "dark"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "themes", "dark", "theme.css"), []byte(`.a { color: red }`), 0o644))

	out, err := run(t, "resolve",
		"--html", filepath.Join(dir, "index.html"),
		"--css", filepath.Join(dir, "themes", "**", "*.css"),
		"--select", "p", "--ua-sheet", "none")
	require.NoError(t, err)
	assert.Equal(t, "p.a\n  color:red;\n", out)

	out, err = run(t, "resolve",
		"--html", filepath.Join(dir, "index.html"),
		"--select", "p", "--longhands")
	require.NoError(t, err)
	assert.Contains(t, out, "color: blue (author)")
	assert.Contains(t, out, "display: block (user agent)")

	_, err = run(t, "resolve", "--html", filepath.Join(dir, "index.html"), "--css", filepath.Join(dir, "*.scss"))
	assert.ErrorContains(t, err, "no file matches")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Go-Cascade")
}
