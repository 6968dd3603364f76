// Package config loads the settings of the cascade tools, merging, in
// increasing precedence: built-in defaults, a YAML file, CASCADE_*
// environment variables and command line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/benoitkugler/cascade/css/media"
	"github.com/benoitkugler/cascade/logger"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
)

// EnvPrefix is the prefix of the environment variables read by Load.
// Nested keys are separated by a double underscore, as in
// CASCADE_MEDIA__FONT_SIZE.
const EnvPrefix = "CASCADE_"

// BuiltinSheet selects the embedded user agent style sheet.
const BuiltinSheet = "builtin"

// Media describes the rendering environment used to evaluate
// media queries.
type Media struct {
	Type       string            `koanf:"type"`
	Width      float64           `koanf:"width"`  // in px
	Height     float64           `koanf:"height"` // in px
	Resolution float64           `koanf:"resolution"`
	FontSize   float64           `koanf:"font_size"`
	Color      int               `koanf:"color"`
	Features   map[string]string `koanf:"features"`
}

// Cascade configures the style sheets and the resolver.
type Cascade struct {
	// UserAgentSheet is BuiltinSheet, "none" or the path of a CSS file.
	UserAgentSheet      string   `koanf:"user_agent_sheet"`
	UserSheets          []string `koanf:"user_sheets"`
	PresentationalHints bool     `koanf:"presentational_hints"`
}

type Config struct {
	Media   Media         `koanf:"media"`
	Cascade Cascade       `koanf:"cascade"`
	Log     logger.Config `koanf:"log"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Media: Media{
			Type:       "screen",
			Width:      800,
			Height:     600,
			Resolution: 1,
			FontSize:   16,
			Color:      8,
		},
		Cascade: Cascade{UserAgentSheet: BuiltinSheet},
		Log:     logger.Config{Level: "warn", Format: "console"},
	}
}

// flagKeys maps the command line flags registered by RegisterFlags
// to their configuration key.
var flagKeys = map[string]string{
	"media":      "media.type",
	"width":      "media.width",
	"height":     "media.height",
	"resolution": "media.resolution",
	"font-size":  "media.font_size",
	"ua-sheet":   "cascade.user_agent_sheet",
	"user-css":   "cascade.user_sheets",
	"hints":      "cascade.presentational_hints",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	def := Default()
	fs.String("media", def.Media.Type, "media type used to evaluate media queries")
	fs.Float64("width", def.Media.Width, "viewport width, in px")
	fs.Float64("height", def.Media.Height, "viewport height, in px")
	fs.Float64("resolution", def.Media.Resolution, "resolution, in dppx")
	fs.Float64("font-size", def.Media.FontSize, "initial font size, in px")
	fs.String("ua-sheet", def.Cascade.UserAgentSheet, `user agent style sheet: "builtin", "none" or a CSS file`)
	fs.StringSlice("user-css", nil, "user style sheets")
	fs.Bool("hints", def.Cascade.PresentationalHints, "apply HTML presentational hints")
	fs.String("log-level", def.Log.Level, "log level: none, debug, info, warn, error")
	fs.String("log-format", def.Log.Format, "log format: console or json")
}

// envKey maps CASCADE_MEDIA__FONT_SIZE to media.font_size
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Load reads the configuration file at path (if not empty), the
// environment and the flags explicitly set in flags (which may be nil).
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, fmt.Errorf("loading command flags: %w", err)
		}
	}

	conf := Default()
	if err := k.Unmarshal("", &conf); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate checks the ranges of the settings. All the errors are returned.
func (c *Config) Validate() error {
	var errs error
	if c.Media.Width < 0 || c.Media.Height < 0 {
		errs = multierr.Append(errs, fmt.Errorf("negative viewport size %gx%g", c.Media.Width, c.Media.Height))
	}
	if c.Media.Resolution <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("invalid resolution %g", c.Media.Resolution))
	}
	if c.Media.FontSize <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("invalid font size %g", c.Media.FontSize))
	}
	if c.Media.Color < 0 {
		errs = multierr.Append(errs, fmt.Errorf("invalid color depth %d", c.Media.Color))
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		errs = multierr.Append(errs, fmt.Errorf("invalid log format %q", c.Log.Format))
	}
	if sheet := c.Cascade.UserAgentSheet; sheet != BuiltinSheet && sheet != "none" && sheet != "" {
		if _, err := os.Stat(sheet); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("user agent sheet: %w", err))
		}
	}
	return errs
}

// Environment returns the media environment described by c.
func (c *Config) Environment() *media.StaticEnvironment {
	features := make(map[string]string, len(c.Media.Features))
	for name, value := range c.Media.Features {
		features[strings.ToLower(name)] = value
	}
	return &media.StaticEnvironment{
		Type:       strings.ToLower(c.Media.Type),
		Width:      c.Media.Width,
		Height:     c.Media.Height,
		Resolution: c.Media.Resolution,
		FontSize:   c.Media.FontSize,
		Color:      c.Media.Color,
		Features:   features,
	}
}
