package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// DefaultTickRate is used when a stage file leaves tick_rate unset.
const DefaultTickRate = 60

// LoadStage loads and validates a stage configuration.
// Search order: customPath -> ~/.shmup/stages/<id>.yaml -> ./stages/<id>.yaml -> embedded default
//
// A custom path that cannot be read or parsed is an error. Broken files in
// the user and local directories are skipped with a warning.
func LoadStage(stageID, customPath string, logger *log.Logger) (StageConfig, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	filename := stageID + ".yaml"

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return StageConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseStage(stageID, data)
		if err != nil {
			return StageConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		logger.Debug("stage loaded", "stage", stageID, "source", customPath)
		return cfg, nil
	}

	candidates := []string{filepath.Join("stages", filename)}
	if userPath := userStagePath(filename); userPath != "" {
		candidates = append([]string{userPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := parseStage(stageID, data)
		if err != nil {
			logger.Warn("skipping stage file", "path", path, "err", err)
			continue
		}
		logger.Debug("stage loaded", "stage", stageID, "source", path)
		return cfg, nil
	}

	// Use embedded default YAML
	data := GetDefaultYAML(stageID)
	if data == nil {
		return StageConfig{}, fmt.Errorf("config: %w: %s", ErrUnknownStage, stageID)
	}
	cfg, err := parseStage(stageID, data)
	if err != nil {
		return StageConfig{}, fmt.Errorf("config: embedded %s: %w", stageID, err)
	}
	logger.Debug("stage loaded", "stage", stageID, "source", "embedded")
	return cfg, nil
}

// parseStage decodes, fills defaults and validates one stage document.
func parseStage(stageID string, data []byte) (StageConfig, error) {
	var cfg StageConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return StageConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if cfg.ID == "" {
		cfg.ID = stageID
	}
	if cfg.Title == "" {
		cfg.Title = cfg.ID
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	for i := range cfg.Encounters {
		if cfg.Encounters[i].Name == "" {
			cfg.Encounters[i].Name = fmt.Sprintf("encounter-%d", i+1)
		}
	}
	if err := cfg.Validate(); err != nil {
		return StageConfig{}, err
	}
	return cfg, nil
}

// userStagePath returns the path to a user stage file, or empty if home is unavailable.
func userStagePath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shmup", "stages", filename)
}
