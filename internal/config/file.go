package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadFile merges a YAML config file into cfg. Keys absent from the file keep
// their current values. A missing file is only an error when required is set.
func LoadFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrapf(err, "failed to read config file %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "failed to parse config file %s", path)
	}

	return nil
}

// Load builds the configuration in precedence order: defaults, the YAML file,
// then the environment. An empty path selects the default config file, which
// may be absent.
func Load(path string) (*Config, error) {
	cfg := New()

	required := path != ""
	if !required {
		path = cfg.ConfigFile()
	}

	if err := LoadFile(cfg, path, required); err != nil {
		return nil, err
	}

	LoadFromEnv(cfg)
	return cfg, nil
}
