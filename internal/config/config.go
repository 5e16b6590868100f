// Package config loads dashboard settings from configs/config.yml and
// DASHBOARD_* environment variables.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "DASHBOARD"

// Config is the decoded application configuration.
type Config struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`

	Telemetry struct {
		URL           string        `mapstructure:"url"`
		PollInterval  time.Duration `mapstructure:"poll_interval"`
		FrameInterval time.Duration `mapstructure:"frame_interval"`
	} `mapstructure:"telemetry"`

	StaticDir string `mapstructure:"static_dir"`

	// TestMode replaces the telemetry server with the built-in simulator.
	TestMode bool          `mapstructure:"testmode"`
	SimTick  time.Duration `mapstructure:"sim_tick"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("db.path", "dashboard.db")
	v.SetDefault("telemetry.url", "ws://localhost:5000/socket")
	v.SetDefault("telemetry.poll_interval", 600*time.Millisecond)
	v.SetDefault("telemetry.frame_interval", 50*time.Millisecond)
	v.SetDefault("static_dir", "static")
	v.SetDefault("testmode", false)
	v.SetDefault("sim_tick", time.Second)
}

// Load reads the config file at path, or configs/config.yml when path is
// empty. A missing default file is not an error; defaults and environment
// still apply.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
