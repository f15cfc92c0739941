package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadSettings reads settings.toml, creating it from the template when missing.
func LoadSettings() (*Settings, error) {
	settingsPath := GetSettingsFilePath()

	if !FileExists(settingsPath) {
		if err := CreateDefaultSettings(); err != nil {
			return nil, fmt.Errorf("failed to create settings: %w", err)
		}
		return DefaultSettings(), nil
	}

	return decodeSettings(settingsPath)
}

func decodeSettings(path string) (*Settings, error) {
	cfg := &Settings{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return cfg, nil
}

func CreateDefaultSettings() error {
	if err := EnsureDir(GetConfigDir()); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	settingsPath := GetSettingsFilePath()
	if FileExists(settingsPath) {
		return nil
	}

	if err := os.WriteFile(settingsPath, []byte(GenerateSettingsTemplate()), 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
