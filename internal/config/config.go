// Package config loads config.yaml from the config directory, with OTF_
// environment overrides (api.timeout -> OTF_API_TIMEOUT).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/julianstephens/otfkit/internal/constants"
)

type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Export ExportConfig `mapstructure:"export"`
	Log    LogConfig    `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	IOBaseURL        string        `mapstructure:"io_base_url"`
	TelemetryBaseURL string        `mapstructure:"telemetry_base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	// Location is a *.json file, a postgres:// URL, or a sqlite file path.
	Location     string        `mapstructure:"location"`
	Disabled     bool          `mapstructure:"disabled"`
	SummaryTTL   time.Duration `mapstructure:"summary_ttl"`
	TelemetryTTL time.Duration `mapstructure:"telemetry_ttl"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
}

type ExportConfig struct {
	Dir string   `mapstructure:"dir"`
	S3  S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

const (
	DefaultBaseURL          = "https://api.orangetheory.co"
	DefaultIOBaseURL        = "https://api.orangetheory.io"
	DefaultTelemetryBaseURL = "https://api.yuzu.orangetheory.com"
	EnvPrefix               = "OTF"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.io_base_url", DefaultIOBaseURL)
	v.SetDefault("api.telemetry_base_url", DefaultTelemetryBaseURL)
	v.SetDefault("api.timeout", constants.DefaultHTTPTimeout.String())

	v.SetDefault("cache.location", constants.DefaultCachePath)
	v.SetDefault("cache.disabled", false)
	v.SetDefault("cache.summary_ttl", constants.SummaryCacheTTL.String())
	v.SetDefault("cache.telemetry_ttl", constants.SummaryCacheTTL.String())
	v.SetDefault("cache.default_ttl", constants.DefaultCacheTTL.String())

	v.SetDefault("export.dir", ".")
	// S3 keys need defaults so AutomaticEnv can see them during Unmarshal.
	v.SetDefault("export.s3.endpoint", "")
	v.SetDefault("export.s3.region", "us-east-1")
	v.SetDefault("export.s3.access_key_id", "")
	v.SetDefault("export.s3.secret_access_key", "")
	v.SetDefault("export.s3.bucket", "")
	v.SetDefault("export.s3.prefix", "otf/")
	v.SetDefault("export.s3.use_path_style", false)

	v.SetDefault("log.level", "")
}

// Load reads config.yaml from dir. A missing file is not an error; defaults
// and environment variables still apply.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings no command can work with.
func (c Config) Validate() error {
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	for name, u := range map[string]string{
		"api.base_url":           c.API.BaseURL,
		"api.io_base_url":        c.API.IOBaseURL,
		"api.telemetry_base_url": c.API.TelemetryBaseURL,
	} {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("%s must be an http(s) URL, got %q", name, u)
		}
	}
	return nil
}

// S3Enabled reports whether enough S3 settings are present to upload exports.
func (c ExportConfig) S3Enabled() bool {
	return c.S3.Bucket != ""
}
