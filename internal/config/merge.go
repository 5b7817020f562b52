package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyAPI     = "api"
	keyTable   = "table"
	keyCache   = "cache"
	keyServer  = "server"
	keyLogging = "logging"
)

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Keys present in the overlay replace entire sections
// in the target; absent keys and unknown keys leave it unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = applySection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// applySection decodes node into a fresh value of the section's type so the
// section is replaced, not merged field by field.
func applySection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyAPI:
		var v APIConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.API = v
	case keyTable:
		var v TableConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Table = v
	case keyCache:
		var v CacheConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Cache = v
	case keyServer:
		var v ServerConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Server = v
	case keyLogging:
		var v LoggingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	}
	return nil
}
