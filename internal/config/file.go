package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const configFilename = "bidindex.toml"

func defaultLookupPaths() []string {
	var xdg string
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		xdg = filepath.Join(v, "bidindex", configFilename)
	}

	var home string
	if v := os.Getenv("HOME"); v != "" {
		home = filepath.Join(v, ".config", "bidindex", configFilename)
	}

	return []string{
		filepath.Join(string(os.PathSeparator), "etc", configFilename),
		xdg,
		home,
	}
}

// fromFile decodes a config file, picking the format by extension.
func fromFile(path string) (*Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return fromYamlFile(path)
	default:
		return fromTomlFile(path)
	}
}

func fromTomlFile(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// fromYamlFile reuses the toml table decoders on the generic yaml tree.
func fromYamlFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, err
	}

	var cfg Config
	if m == nil {
		return &cfg, nil
	}

	if err := cfg.UnmarshalTOML(m); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func searchConfigFile(customPath string, lookupPaths []string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err != nil {
			return "", fmt.Errorf("no such file: %s", customPath)
		}

		return customPath, nil
	}

	for _, p := range lookupPaths {
		if p == "" {
			continue
		}

		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	// a missing config file is not an error
	return "", nil
}
