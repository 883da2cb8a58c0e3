package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader loads a Config from YAML file(s) and environment variables
// via Viper, overlaid on [DefaultConfig].
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a Loader ready to load configuration.
func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

// Load resolves configuration with the following priority (highest
// first): environment variables with a DIFFPAINT_ prefix, the config
// file named by DIFFPAINT_CONFIG_PATH, diffpaint.yaml in the user config
// directory's diffpaint folder (e.g. ~/.config/diffpaint/diffpaint.yaml),
// ./diffpaint.yaml in the current directory, and finally DefaultConfig.
// Feature bundles named in Features are then expanded (see features.go);
// style references in Styles are left unresolved here. A missing config
// file is not an error, but an unreadable one, or a feature cycle, is.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	l.v.SetConfigType("yaml")
	l.v.SetEnvPrefix("DIFFPAINT")
	l.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	l.v.AutomaticEnv()

	if configPath := os.Getenv("DIFFPAINT_CONFIG_PATH"); configPath != "" {
		l.v.SetConfigFile(configPath)
	} else {
		l.v.SetConfigName("diffpaint")
		if userConfigDir, err := os.UserConfigDir(); err == nil {
			l.v.AddConfigPath(filepath.Join(userConfigDir, "diffpaint"))
		}
		l.v.AddConfigPath(".")
	}

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling config: %w", err)
	}

	if err := Finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from an explicit YAML file path,
// bypassing default-location search and environment variables.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	l.v.SetConfigFile(path)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading config file %s: %w", path, err)
	}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling config: %w", err)
	}
	if err := Finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize expands cfg.Features into cfg.Styles/option overrides in
// place, via ResolveFeatures, so that later ResolveStyles calls see the
// fully-merged style table. It does not resolve styles itself (callers
// needing resolved style.Style values call ResolveStyles separately,
// since handlers.Config wants them pre-resolved but a re-exec of Finalize
// on an already-resolved Config must stay idempotent and cheap).
func Finalize(cfg *Config) error {
	overrides, err := ResolveFeatures(cfg.Features, cfg.FeatureBundles)
	if err != nil {
		return err
	}
	for k, v := range overrides {
		switch k {
		case "line-numbers":
			if b, ok := v.(bool); ok {
				cfg.ShowLineNumbers = b
			}
		case "side-by-side":
			if b, ok := v.(bool); ok {
				cfg.SideBySide = b
			}
		default:
			if s, ok := v.(string); ok {
				cfg.Styles[k] = s
			}
		}
	}
	return nil
}
