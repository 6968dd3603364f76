package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cascade.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	conf, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *conf)

	env := conf.Environment()
	assert.Equal(t, "screen", env.MediaType())
	w, h := env.ViewportSize()
	assert.Equal(t, 800., w)
	assert.Equal(t, 600., h)
}

func TestFileLoading(t *testing.T) {
	path := writeConfig(t, `
media:
  type: print
  width: 500
  font_size: 12
  features:
    prefers-color-scheme: dark
cascade:
  presentational_hints: true
  user_sheets:
    - user.css
log:
  level: debug
`)
	conf, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "print", conf.Media.Type)
	assert.Equal(t, 500., conf.Media.Width)
	assert.Equal(t, 600., conf.Media.Height) // default kept
	assert.Equal(t, 12., conf.Media.FontSize)
	assert.True(t, conf.Cascade.PresentationalHints)
	assert.Equal(t, []string{"user.css"}, conf.Cascade.UserSheets)
	assert.Equal(t, BuiltinSheet, conf.Cascade.UserAgentSheet)
	assert.Equal(t, "debug", conf.Log.Level)
	assert.Equal(t, "console", conf.Log.Format)

	env := conf.Environment()
	assert.Equal(t, "print", env.MediaType())
	assert.Equal(t, "dark", env.Features["prefers-color-scheme"])
	assert.Equal(t, 12., env.FontMetrics().Em)
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestPrecedence(t *testing.T) {
	path := writeConfig(t, `
media:
  type: print
  width: 500
  height: 400
`)
	t.Setenv("CASCADE_MEDIA__WIDTH", "700")
	t.Setenv("CASCADE_MEDIA__HEIGHT", "300")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--height", "200", "--hints"}))

	conf, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "print", conf.Media.Type) // file
	assert.Equal(t, 700., conf.Media.Width)   // env beats file
	assert.Equal(t, 200., conf.Media.Height)  // flag beats env
	assert.True(t, conf.Cascade.PresentationalHints)
	// unset flags keep their lower precedence value
	assert.Equal(t, 16., conf.Media.FontSize)
}

func TestValidate(t *testing.T) {
	conf := Default()
	conf.Media.Width = -1
	conf.Media.FontSize = 0
	conf.Log.Format = "xml"
	conf.Cascade.UserAgentSheet = filepath.Join(t.TempDir(), "missing.css")
	err := conf.Validate()
	require.Error(t, err)
	for _, msg := range []string{"viewport", "font size", "log format", "user agent sheet"} {
		assert.ErrorContains(t, err, msg)
	}

	path := writeConfig(t, "media:\n  resolution: 0\n")
	_, err = Load(path, nil)
	assert.ErrorContains(t, err, "resolution")
}
