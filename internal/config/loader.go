package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadEngine loads the engine configuration and validates it.
// Search order: customPath -> ~/.fog/configs/engine.yaml -> ./configs/engine.yaml -> embedded default
func LoadEngine(customPath string) (EngineConfig, error) {
	cfg, err := loadEngineRaw(customPath)
	if err != nil {
		return cfg, err
	}
	cfg.Validate()
	return cfg, nil
}

func loadEngineRaw(customPath string) (EngineConfig, error) {
	// Unset keys keep their default values
	cfg := DefaultEngineConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("engine.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultEngineConfig()
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "engine.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultEngineConfig()
	}

	embedded, err := loadEmbedded()
	if err != nil {
		return DefaultEngineConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fog", "configs", filename)
}

func loadEmbedded() (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	err := yaml.Unmarshal(defaultEngineYAML, &cfg)
	return cfg, err
}
