package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/tsalign/tsalign/internal/utils"
)

// Load reads configuration from file with environment variable overrides
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/tsalign")
	}

	v.SetEnvPrefix("TSALIGN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file found, rely on defaults and env vars
	}

	return parseConfig(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.api_keys", []string{})

	v.SetDefault("align.time_field", "date_time")
	v.SetDefault("align.layout", "2006-01-02 15:04:05")
	v.SetDefault("align.timezone", "")
	v.SetDefault("align.max_points", utils.DefaultMaxPoints)
	v.SetDefault("align.downsample_threshold", utils.DefaultDownsampleThreshold)
	v.SetDefault("align.range_interval", "5m")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")
}

func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
