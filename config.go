package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultConfigDir = ".controversy-analyzer"

// Embedded configuration files
//
//go:embed config/settings.yaml
var defaultSettings string

//go:embed config/classifier-system-prompt.md
var defaultClassifierPrompt string

//go:embed config/classifier-output-schema.json
var defaultClassifierSchema string

//go:embed config/keywords.txt
var defaultKeywords string

// AgentSettings holds the model parameters for one agent
type AgentSettings struct {
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// Settings represents the YAML configuration structure
type Settings struct {
	OutputFile string `yaml:"output_file"`
	MaxPosts   int    `yaml:"max_posts"`
	Agents     struct {
		Classifier AgentSettings `yaml:"classifier"`
	} `yaml:"agents"`
}

// ConfigOverrides holds file path and value overrides for the loaded settings
type ConfigOverrides struct {
	SettingsPath *string
	PromptPath   *string
	SchemaPath   *string
	KeywordsPath *string
	MaxPosts     *int
}

// Config holds settings and overrides
type Config struct {
	Settings  *Settings
	Overrides *ConfigOverrides
}

// NewConfig loads settings and wires in overrides
func NewConfig(overrides *ConfigOverrides) (*Config, error) {
	if err := ensureConfigExists(); err != nil {
		return nil, fmt.Errorf("ensuring config files exist: %w", err)
	}

	var settings *Settings
	var err error
	if overrides != nil && overrides.SettingsPath != nil {
		// Explicit settings file must exist
		settings, err = loadSettingsRequired(*overrides.SettingsPath)
		if err != nil {
			return nil, fmt.Errorf("settings file missing: %s: %w", *overrides.SettingsPath, err)
		}
	} else {
		settings, err = loadSettings(getConfigPath("settings.yaml"))
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
	}

	applyOverrideValues(settings, overrides)

	return &Config{
		Settings:  settings,
		Overrides: overrides,
	}, nil
}

// applyOverrideValues applies value overrides on top of the loaded settings
func applyOverrideValues(settings *Settings, overrides *ConfigOverrides) {
	if overrides == nil {
		return
	}
	if overrides.MaxPosts != nil && *overrides.MaxPosts > 0 {
		settings.MaxPosts = *overrides.MaxPosts
	}
}

// ClassifierSystemPrompt returns the classifier prompt (from override file or embedded)
func (c *Config) ClassifierSystemPrompt() string {
	if c.Overrides != nil && c.Overrides.PromptPath != nil {
		if content, err := os.ReadFile(*c.Overrides.PromptPath); err == nil {
			return string(content)
		}
	}
	return defaultClassifierPrompt
}

// ClassifierSchema returns the structured-output schema (from override file or embedded)
func (c *Config) ClassifierSchema() string {
	if c.Overrides != nil && c.Overrides.SchemaPath != nil {
		if content, err := os.ReadFile(*c.Overrides.SchemaPath); err == nil {
			return string(content)
		}
	}
	return defaultClassifierSchema
}

// KeywordSet builds the keyword set (from override file or embedded)
func (c *Config) KeywordSet() (*KeywordSet, error) {
	if c.Overrides != nil && c.Overrides.KeywordsPath != nil {
		content, err := os.ReadFile(*c.Overrides.KeywordsPath)
		if err != nil {
			return nil, fmt.Errorf("reading keywords file %s: %w", *c.Overrides.KeywordsPath, err)
		}
		return NewKeywordSet(string(content))
	}
	return NewKeywordSet(defaultKeywords)
}

// loadSettings loads settings from a YAML file with fallback to defaults
func loadSettings(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		// Return default settings if file doesn't exist
		settings := &Settings{
			OutputFile: "controversy_analysis.json",
			MaxPosts:   200,
		}
		settings.Agents.Classifier = AgentSettings{
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   500,
			Temperature: 0.3,
		}
		return settings, nil
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	applySettingsDefaults(&settings)

	return &settings, nil
}

// loadSettingsRequired loads settings from a YAML file, failing if it doesn't exist
func loadSettingsRequired(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	applySettingsDefaults(&settings)

	return &settings, nil
}

func applySettingsDefaults(settings *Settings) {
	if settings.OutputFile == "" {
		settings.OutputFile = "controversy_analysis.json"
	}
	if settings.MaxPosts <= 0 {
		settings.MaxPosts = 200
	}
	if settings.Agents.Classifier.Model == "" {
		settings.Agents.Classifier.Model = "claude-sonnet-4-20250514"
	}
	if settings.Agents.Classifier.MaxTokens <= 0 {
		settings.Agents.Classifier.MaxTokens = 500
	}
}

// getConfigPath returns the path to a config file in the config directory
func getConfigPath(filename string) string {
	return filepath.Join(defaultConfigDir, filename)
}

// ensureConfigExists creates the config directory and writes settings.yaml if needed
func ensureConfigExists() error {
	if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write settings.yaml - this should be customized by users
	settingsFile := getConfigPath("settings.yaml")
	if _, err := os.Stat(settingsFile); os.IsNotExist(err) {
		if err := os.WriteFile(settingsFile, []byte(defaultSettings), 0644); err != nil {
			return fmt.Errorf("writing settings.yaml: %w", err)
		}
	}

	return nil
}
