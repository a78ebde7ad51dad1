package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ByLCY/dotqr/codec"
	"github.com/ByLCY/dotqr/derive"
	"github.com/ByLCY/dotqr/logger"
	"github.com/ByLCY/dotqr/style"
)

// ErrInvalid reports a configuration value that can never produce output.
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix prefixes environment overrides, e.g. DOTQR_OUTPUT_DIR.
const EnvPrefix = "DOTQR"

type Config struct {
	Output   Output        `mapstructure:"output"`
	Style    style.Options `mapstructure:"style"`
	Settings Settings      `mapstructure:"settings"`
}

type Output struct {
	Dir         string `mapstructure:"dir"`
	Resolutions []int  `mapstructure:"resolutions"`
	JPEGQuality int    `mapstructure:"jpeg-quality"`
	// DumpLayout writes the primitive lists as JSON next to the artifacts.
	DumpLayout bool `mapstructure:"dump-layout"`
}

type Settings struct {
	Debug     bool   `mapstructure:"debug"`
	TimeZone  string `mapstructure:"timezone"`
	LogToFile bool   `mapstructure:"log-to-file"`
	LogsDir   string `mapstructure:"logs-dir"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"out":                    "output.dir",
	"resolutions":            "output.resolutions",
	"jpeg-quality":           "output.jpeg-quality",
	"dump-layout":            "output.dump-layout",
	"debug":                  "settings.debug",
	"module-color":           "style.module-color",
	"eye-frame-color":        "style.eye-frame-color",
	"pixels-per-module":      "style.pixels-per-module",
	"dot-size-factor":        "style.dot-size-factor",
	"dot-size-variance":      "style.dot-size-variance",
	"eye-frame-mid-radius":   "style.eye-frame-mid-radius",
	"eye-frame-pupil-radius": "style.eye-frame-pupil-radius",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.dir", "output")
	v.SetDefault("output.resolutions", derive.DefaultWidths)
	v.SetDefault("output.jpeg-quality", codec.DefaultJPEGQuality)
	v.SetDefault("output.dump-layout", false)
	v.SetDefault("style.module-color", "black")
	v.SetDefault("style.eye-frame-color", "black")
	v.SetDefault("style.pixels-per-module", style.DefaultPixelsPerModule)
	v.SetDefault("style.dot-size-factor", style.DefaultDotSizeFactor)
	v.SetDefault("style.dot-size-variance", 0.0)
	v.SetDefault("style.eye-frame-mid-radius", style.DefaultEyeMidRadiusRatio)
	v.SetDefault("style.eye-frame-pupil-radius", style.DefaultEyePupilRadiusRatio)
	v.SetDefault("settings.debug", false)
	v.SetDefault("settings.timezone", "GMT+0")
	v.SetDefault("settings.log-to-file", false)
	v.SetDefault("settings.logs-dir", "logs")
}

// Load reads defaults, then the YAML file at path (or an optional
// ./config.yaml when path is empty), then DOTQR_* environment variables,
// then any changed flags in flags.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("style.batch-seed"); err != nil {
		return nil, err
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	// the seed is optional, so only an explicitly set flag overrides it
	if f := flagsLookup(flags, "batch-seed"); f != nil && f.Changed {
		seed, err := flags.GetInt("batch-seed")
		if err != nil {
			return nil, fmt.Errorf("flag batch-seed: %w", err)
		}
		cfg.Style.BatchSeed = &seed
	}
	if len(cfg.Output.Resolutions) == 0 {
		cfg.Output.Resolutions = append([]int(nil), derive.DefaultWidths...)
	}
	for _, w := range cfg.Output.Resolutions {
		if w <= 0 {
			return nil, fmt.Errorf("%w: output.resolutions: width must be positive, got %d", ErrInvalid, w)
		}
	}
	return &cfg, nil
}

// Logger returns the logger configuration from the settings section.
func (c *Config) Logger() logger.Config {
	return logger.Config{
		Debug:     c.Settings.Debug,
		TimeZone:  c.Settings.TimeZone,
		LogToFile: c.Settings.LogToFile,
		LogsDir:   c.Settings.LogsDir,
	}
}

func flagsLookup(flags *pflag.FlagSet, name string) *pflag.Flag {
	if flags == nil {
		return nil
	}
	return flags.Lookup(name)
}
