package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	YouTube  YouTubeConfig  `yaml:"youtube"`
	AI       AIConfig       `yaml:"ai"`
	Storage  StorageConfig  `yaml:"storage"`
	Patterns PatternsConfig `yaml:"patterns"`
	Niches   NichesConfig   `yaml:"niches"`
}

type YouTubeConfig struct {
	APIKey     string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	MaxResults int64  `yaml:"max_results"`
	RegionCode string `yaml:"region_code"`
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string `yaml:"model"`
}

type StorageConfig struct {
	DataDir string `yaml:"data_dir" env:"CONTENT_DNA_DATA_DIR"`
}

// PatternsConfig points at a pattern document overriding the built-in one.
type PatternsConfig struct {
	File string `yaml:"file"`
}

type NichesConfig struct {
	// SearchTerms maps a niche to the default YouTube search query.
	SearchTerms map[string]string `yaml:"search_terms"`
}

var defaultSearchTerms = map[string]string{
	"productivity":   "productivity tips",
	"health_fitness": "fitness workout",
	"ai_tech":        "AI technology tutorial",
}

// Load reads .env, then the YAML config file named by CONFIG_FILE (default
// config.yaml). The file is optional; environment variables fill any gaps.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	explicit := configFile != ""
	if !explicit {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file; run on environment and defaults.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if c.YouTube.APIKey == "" {
		c.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if c.AI.GeminiAPIKey == "" {
		c.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = os.Getenv("CONTENT_DNA_DATA_DIR")
	}
	if c.Patterns.File == "" {
		c.Patterns.File = os.Getenv("CONTENT_DNA_PATTERNS_FILE")
	}
}

func (c *Config) applyDefaults() {
	if c.YouTube.MaxResults == 0 {
		c.YouTube.MaxResults = 10
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = filepath.Join(xdg.DataHome, "content-dna")
	}
	if c.Niches.SearchTerms == nil {
		c.Niches.SearchTerms = make(map[string]string)
	}
	for niche, term := range defaultSearchTerms {
		if _, ok := c.Niches.SearchTerms[niche]; !ok {
			c.Niches.SearchTerms[niche] = term
		}
	}
}

func (c *Config) validate() error {
	if c.YouTube.MaxResults < 1 || c.YouTube.MaxResults > 50 {
		return fmt.Errorf("youtube.max_results must be between 1 and 50, got %d", c.YouTube.MaxResults)
	}
	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage data directory is required (set CONTENT_DNA_DATA_DIR or storage.data_dir)")
	}
	return nil
}

// ValidateYouTube checks the settings needed by commands that call the YouTube API.
func (c *Config) ValidateYouTube() error {
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("YouTube API key is required (set YOUTUBE_API_KEY or youtube.api_key)")
	}
	return nil
}

// ValidateAI checks the settings needed for Gemini title drafting.
func (c *Config) ValidateAI() error {
	if c.AI.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or ai.gemini_api_key)")
	}
	return nil
}

// SearchTerm returns the default search query for a niche.
func (c *Config) SearchTerm(niche string) string {
	if term := strings.TrimSpace(c.Niches.SearchTerms[niche]); term != "" {
		return term
	}
	return strings.ReplaceAll(niche, "_", " ")
}
