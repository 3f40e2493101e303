package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIURL is the hosted DAE API used when nothing else is configured.
const DefaultAPIURL = "https://focused-presence-production-6e28.up.railway.app/api"

// CLIConfig holds the settings of the pnc command-line client.
type CLIConfig struct {
	APIURL    string        `mapstructure:"api_url"`
	StorePath string        `mapstructure:"store_path"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// LoadCLI reads ~/.pnc/config.toml (or the given file) and PNC_* environment
// variables. A missing config file is not an error.
func LoadCLI(path string) (*CLIConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".pnc")

	v := viper.New()
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("store_path", filepath.Join(base, "store"))
	v.SetDefault("timeout", "0s")

	v.SetEnvPrefix("PNC")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(base)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read cli config: %w", err)
		}
	}

	var cfg CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode cli config: %w", err)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	return &cfg, nil
}
