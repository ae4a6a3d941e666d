package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/orb-field.yaml
var defaultOrbFieldYAML []byte

//go:embed defaults/warden.yaml
var defaultWardenYAML []byte

// Built-in stage identifiers.
const (
	StageOrbField = "orb-field"
	StageWarden   = "warden"
)

// StageIDs returns the built-in stages in play order.
func StageIDs() []string {
	return []string{StageOrbField, StageWarden}
}

// GetDefaultYAML returns the embedded default YAML for a stage.
func GetDefaultYAML(stageID string) []byte {
	switch stageID {
	case StageOrbField:
		return defaultOrbFieldYAML
	case StageWarden:
		return defaultWardenYAML
	default:
		return nil
	}
}

// BuiltinTitle returns the title of an embedded stage, or the id itself
// when the stage is unknown or has no title.
func BuiltinTitle(stageID string) string {
	var head struct {
		Title string `yaml:"title"`
	}
	if err := yaml.Unmarshal(GetDefaultYAML(stageID), &head); err != nil || head.Title == "" {
		return stageID
	}
	return head.Title
}
