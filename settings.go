// settings.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cutroomapp/cutroom/internal/dnd"
	"github.com/cutroomapp/cutroom/internal/state"
	"github.com/cutroomapp/cutroom/internal/timeline"
)

// AppConfig is the persisted editor configuration. Composition fields apply
// to the next launch; snapping changes take effect immediately.
type AppConfig struct {
	SnapEnabled   bool `json:"snapEnabled"`
	SnapThreshold int  `json:"snapThreshold"`

	DefaultVideoDurationFrames int `json:"defaultVideoDurationFrames"`
	DefaultAudioDurationFrames int `json:"defaultAudioDurationFrames"`
	DefaultImageDurationFrames int `json:"defaultImageDurationFrames"`

	CompositionWidth  int     `json:"compositionWidth"`
	CompositionHeight int     `json:"compositionHeight"`
	FPS               float64 `json:"fps"`
	DurationFrames    int     `json:"durationInFrames"`
}

func defaultConfig() AppConfig {
	return AppConfig{
		SnapEnabled:                true,
		SnapThreshold:              timeline.DefaultSnapThreshold,
		DefaultVideoDurationFrames: dnd.DefaultVideoDurationFrames,
		DefaultAudioDurationFrames: dnd.DefaultAudioDurationFrames,
		DefaultImageDurationFrames: dnd.DefaultImageDurationFrames,
		CompositionWidth:           state.DefaultCompositionWidth,
		CompositionHeight:          state.DefaultCompositionHeight,
		FPS:                        state.DefaultFPS,
		DurationFrames:             state.DefaultDurationFrames,
	}
}

// loadOrInitConfig reads the config file, creating it with defaults if it
// doesn't exist yet.
func loadOrInitConfig(path string) (AppConfig, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := defaultConfig()
			if writeErr := writeConfig(path, cfg); writeErr != nil {
				return AppConfig{}, writeErr
			}
			return cfg, nil
		}
		return AppConfig{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg AppConfig
	if unmarshalErr := json.Unmarshal(fileBytes, &cfg); unmarshalErr != nil {
		return AppConfig{}, fmt.Errorf("failed to unmarshal config file %s: %w", path, unmarshalErr)
	}
	return cfg, nil
}

func writeConfig(path string, cfg AppConfig) error {
	jsonData, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config data for saving: %w", err)
	}

	dir := filepath.Dir(path)
	if mkDirErr := os.MkdirAll(dir, 0755); mkDirErr != nil {
		return fmt.Errorf("failed to create config directory %s for saving: %w", dir, mkDirErr)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// GetConfig reads the config file. Creates it with defaults if it doesn't
// exist.
func (a *App) GetConfig() (AppConfig, error) {
	a.configMu.Lock()
	defer a.configMu.Unlock()
	return loadOrInitConfig(a.configPath)
}

// SaveConfig persists the configuration and applies what can change at
// runtime.
func (a *App) SaveConfig(cfg AppConfig) error {
	a.configMu.Lock()
	err := writeConfig(a.configPath, cfg)
	a.configMu.Unlock()
	if err != nil {
		return err
	}

	a.drag.SetSnapEnabled(cfg.SnapEnabled)
	return nil
}
