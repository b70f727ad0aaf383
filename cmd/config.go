package cmd

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/pcschart"
	"github.com/etnz/pcschart/agent"
	"github.com/spf13/viper"
)

const defaultServer = "http://localhost:5000"

// Config is the configuration of pcv.
//
// Values come from, by increasing priority: defaults, the YAML config file,
// PCV_* environment variables (PCV_STYLE_DONUT_RATIO for style.donut_ratio)
// and the global flags.
type Config struct {
	Server      string      `mapstructure:"server"`
	SessionFile string      `mapstructure:"session_file"`
	Cache       bool        `mapstructure:"cache"`     // cache GET responses for the day
	CacheDir    string      `mapstructure:"cache_dir"` // system temp dir if empty
	Model       string      `mapstructure:"model"`     // Gemini model of describe and assist
	Width       int         `mapstructure:"width"`
	Height      int         `mapstructure:"height"`
	Font        string      `mapstructure:"font"`      // TTF file for PNG texts, Go fonts if empty
	BoldFont    string      `mapstructure:"bold_font"` // TTF file for PNG titles
	Style       StyleConfig `mapstructure:"style"`
}

// StyleConfig is the configurable part of pcschart.Style.
type StyleConfig struct {
	Palette     []string `mapstructure:"palette"`
	Background  string   `mapstructure:"background"`
	Foreground  string   `mapstructure:"foreground"`
	Positive    string   `mapstructure:"positive"`
	Negative    string   `mapstructure:"negative"`
	DonutRatio  float64  `mapstructure:"donut_ratio"`
	LabelAngle  float64  `mapstructure:"label_angle"` // degrees, clockwise
	Placeholder string   `mapstructure:"placeholder"`
}

// LoadConfig reads the configuration. With an empty path it looks for
// pcv.yaml in the current directory then in the user config directory.
// A missing config file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pcv")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(userConfigDir(), "pcv"))
	}
	v.SetEnvPrefix("PCV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", cfg.Width, cfg.Height)
	}
	return &cfg, nil
}

// setDefaults declares every key, so that the environment can override it.
func setDefaults(v *viper.Viper) {
	st := pcschart.DefaultStyle()
	hex := func(c color.Color) string {
		h, _ := pcschart.Hex(c)
		return h
	}

	v.SetDefault("server", defaultServer)
	v.SetDefault("session_file", filepath.Join(userConfigDir(), "pcv", "session.json"))
	v.SetDefault("cache", false)
	v.SetDefault("cache_dir", "")
	v.SetDefault("model", agent.DefaultModel)
	v.SetDefault("width", 640)
	v.SetDefault("height", 480)
	v.SetDefault("font", "")
	v.SetDefault("bold_font", "")

	v.SetDefault("style.palette", pcschart.DefaultPalette)
	v.SetDefault("style.background", hex(st.Background))
	v.SetDefault("style.foreground", hex(st.Foreground))
	v.SetDefault("style.positive", hex(st.Positive))
	v.SetDefault("style.negative", hex(st.Negative))
	v.SetDefault("style.donut_ratio", st.DonutRatio)
	v.SetDefault("style.label_angle", st.LabelAngle*180/math.Pi)
	v.SetDefault("style.placeholder", st.Placeholder)
}

// ChartStyle returns the chart style configured.
func (c *Config) ChartStyle() (pcschart.Style, error) {
	st := pcschart.DefaultStyle()
	sc := c.Style

	palette, err := pcschart.ParsePalette(sc.Palette)
	if err != nil {
		return st, fmt.Errorf("style.palette: %w", err)
	}
	if len(palette) > 0 {
		st.Palette = palette
	}
	colors := []struct {
		key string
		hex string
		dst *color.Color
	}{
		{"style.background", sc.Background, &st.Background},
		{"style.foreground", sc.Foreground, &st.Foreground},
		{"style.positive", sc.Positive, &st.Positive},
		{"style.negative", sc.Negative, &st.Negative},
	}
	for _, c := range colors {
		if c.hex == "" {
			continue
		}
		col, err := pcschart.ParseColor(c.hex)
		if err != nil {
			return st, fmt.Errorf("%s: %w", c.key, err)
		}
		*c.dst = col
	}

	if sc.DonutRatio < 0 || sc.DonutRatio >= 1 {
		return st, fmt.Errorf("style.donut_ratio: %v is not in [0, 1)", sc.DonutRatio)
	}
	st.DonutRatio = sc.DonutRatio
	st.LabelAngle = sc.LabelAngle * math.Pi / 180
	st.Placeholder = sc.Placeholder
	return st, nil
}

// fonts reads the configured font files.
func (c *Config) fonts() (regular, bold []byte, err error) {
	if c.Font != "" {
		if regular, err = os.ReadFile(c.Font); err != nil {
			return nil, nil, fmt.Errorf("font: %w", err)
		}
	}
	if c.BoldFont != "" {
		if bold, err = os.ReadFile(c.BoldFont); err != nil {
			return nil, nil, fmt.Errorf("bold_font: %w", err)
		}
	}
	return regular, bold, nil
}

func userConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return dir
}

// configPath returns the config file selected by flag or environment.
func configPath() string {
	if *configFile != "" {
		return *configFile
	}
	return os.Getenv(EnvConfig)
}

var loaded *Config

// appConfig loads the configuration once, global flags taking precedence.
func appConfig() (*Config, error) {
	if loaded != nil {
		return loaded, nil
	}
	cfg, err := LoadConfig(configPath())
	if err != nil {
		return nil, err
	}
	if *serverFlag != "" {
		cfg.Server = *serverFlag
	}
	if *sessionFile != "" {
		cfg.SessionFile = *sessionFile
	}
	loaded = cfg
	return cfg, nil
}
