package recommend

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed settings.yaml
var defaultSettingsYAML []byte

const defaultSettingsKey = "default"

// NicheSettings are the upload recommendations and description extras for one niche.
type NicheSettings struct {
	OptimalMinutes []int    `yaml:"optimal_minutes"`
	UploadTimes    []string `yaml:"upload_times"`
	Category       string   `yaml:"category"`
	Tags           string   `yaml:"tags"`
	CardPlacement  string   `yaml:"card_placement"`
	CallsToAction  []string `yaml:"calls_to_action"`
	Hashtags       []string `yaml:"hashtags"`
}

// SettingsTable maps niche names to settings. It always has a "default" entry.
type SettingsTable map[string]NicheSettings

var defaultSettings = mustParseSettings(defaultSettingsYAML)

func mustParseSettings(data []byte) SettingsTable {
	table, err := ParseSettings(data)
	if err != nil {
		panic(err)
	}
	return table
}

// ParseSettings decodes a settings document. Unknown keys are rejected.
func ParseSettings(data []byte) (SettingsTable, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var table SettingsTable
	if err := dec.Decode(&table); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if _, ok := table[defaultSettingsKey]; !ok {
		return nil, fmt.Errorf("settings have no %q entry", defaultSettingsKey)
	}

	for niche, s := range table {
		if len(s.OptimalMinutes) != 2 || s.OptimalMinutes[0] <= 0 || s.OptimalMinutes[0] > s.OptimalMinutes[1] {
			return nil, fmt.Errorf("settings for %s: optimal_minutes must be [min, max], got %v", niche, s.OptimalMinutes)
		}
		if s.Category == "" {
			return nil, fmt.Errorf("settings for %s: category is required", niche)
		}
	}
	return table, nil
}

// For returns the niche's settings, or the default entry.
func (t SettingsTable) For(niche string) NicheSettings {
	if s, ok := t[niche]; ok {
		return s
	}
	return t[defaultSettingsKey]
}
