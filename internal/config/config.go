// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"legal-extract/internal/lexicon"
	"legal-extract/internal/paths"
	"legal-extract/internal/pipeline"
	"legal-extract/internal/scoring"
	"legal-extract/internal/spans"

	"gopkg.in/yaml.v3"
)

// Supported output formats.
var validFormats = map[string]bool{"json": true, "yaml": true, "text": true}

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults Defaults `yaml:"defaults"`

	// Candidate expansion policy
	Expansion spans.Policy `yaml:"expansion"`

	// Ranking heuristic weights
	Scoring scoring.Weights `yaml:"scoring"`

	Lexicon struct {
		Path string `yaml:"path"`
	} `yaml:"lexicon"`

	Watch struct {
		Debounce     string `yaml:"debounce"`
		OutputSuffix string `yaml:"output_suffix"`
	} `yaml:"watch"`

	// Profiles for different extraction scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Defaults are the CLI settings used when no flag overrides them.
type Defaults struct {
	Format  string `yaml:"format"`
	NoColor bool   `yaml:"no_color"`
	Debug   bool   `yaml:"debug"`
	Workers int    `yaml:"workers"`
}

// Profile represents a named set of overrides for Defaults.
type Profile struct {
	Format      string `yaml:"format"`
	NoColor     *bool  `yaml:"no_color"`
	Debug       *bool  `yaml:"debug"`
	Workers     int    `yaml:"workers"`
	Description string `yaml:"description"`
}

func defaultConfig() *Config {
	config := &Config{
		Profiles:  make(map[string]Profile),
		Expansion: spans.DefaultPolicy(),
		Scoring:   scoring.DefaultWeights(),
	}
	config.Defaults.Format = "json"
	config.Defaults.Workers = 4
	config.Watch.Debounce = "500ms"
	config.Watch.OutputSuffix = ".result.json"

	noColor := true
	config.Profiles["review"] = Profile{
		Format:      "text",
		NoColor:     &noColor,
		Description: "Human-readable output for manual review of extracted descriptions",
	}
	return config
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	config := defaultConfig()

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	defaultStopAtAnchor := config.Expansion.StopAtAnchor

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Restore defaults if not explicitly set in config file
	if !containsField(data, "expansion", "stop_at_anchor") {
		config.Expansion.StopAtAnchor = defaultStopAtAnchor
	}
	if config.Profiles == nil {
		config.Profiles = make(map[string]Profile)
	}
	config.Lexicon.Path = paths.NormalizePath(config.Lexicon.Path)

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	for _, name := range []string{"legal-extract.yaml", "legal-extract.yml", ".legal-extract.yaml", ".legal-extract.yml"} {
		if fileExists(name) {
			return name
		}
	}

	if standard := paths.GetConfigFile(); fileExists(standard) {
		return standard
	}
	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns the available profile names in sorted order.
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// ApplyProfile overlays the named profile onto Defaults.
func (c *Config) ApplyProfile(name string) error {
	profile := c.GetProfile(name)
	if profile == nil {
		return fmt.Errorf("unknown profile %q (available: %v)", name, c.ListProfiles())
	}
	if profile.Format != "" {
		c.Defaults.Format = profile.Format
	}
	if profile.NoColor != nil {
		c.Defaults.NoColor = *profile.NoColor
	}
	if profile.Debug != nil {
		c.Defaults.Debug = *profile.Debug
	}
	if profile.Workers > 0 {
		c.Defaults.Workers = profile.Workers
	}
	return ValidateConfig(c)
}

// DebounceDuration parses the watch debounce interval.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// LoadLexicon loads the configured lexicon, or an empty one when no path is
// set.
func (c *Config) LoadLexicon() (*lexicon.Lexicon, error) {
	if c.Lexicon.Path == "" {
		return lexicon.Empty(), nil
	}
	return lexicon.Load(c.Lexicon.Path)
}

// PipelineOptions returns the pipeline parameters this config describes.
func (c *Config) PipelineOptions(lex *lexicon.Lexicon) pipeline.Options {
	policy := c.Expansion
	weights := c.Scoring
	return pipeline.Options{Policy: &policy, Weights: &weights, Lexicon: lex}
}

// containsField checks if a nested field exists in the YAML data
func containsField(data []byte, path ...string) bool {
	var yamlData map[string]interface{}
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return false
	}

	current := yamlData
	for i, key := range path {
		if i == len(path)-1 {
			_, exists := current[key]
			return exists
		}
		next, ok := current[key].(map[string]interface{})
		if !ok {
			return false
		}
		current = next
	}
	return false
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if !validFormats[config.Defaults.Format] {
		return fmt.Errorf("unsupported format %q (json, yaml or text)", config.Defaults.Format)
	}
	if config.Defaults.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", config.Defaults.Workers)
	}
	for name, profile := range config.Profiles {
		if profile.Format != "" && !validFormats[profile.Format] {
			return fmt.Errorf("profile '%s': unsupported format %q", name, profile.Format)
		}
	}

	if config.Expansion.MaxTokens < 1 {
		return fmt.Errorf("expansion.max_tokens must be positive, got %d", config.Expansion.MaxTokens)
	}
	if config.Expansion.MaxPageSpan < 0 {
		return fmt.Errorf("expansion.max_page_span cannot be negative, got %d", config.Expansion.MaxPageSpan)
	}
	for name, penalty := range config.Scoring.Penalties {
		if penalty < 0 {
			return fmt.Errorf("scoring.penalties.%s cannot be negative", name)
		}
	}

	if _, err := time.ParseDuration(config.Watch.Debounce); err != nil {
		return fmt.Errorf("invalid watch.debounce: %w", err)
	}
	if err := paths.ValidateResultSuffix(config.Watch.OutputSuffix); err != nil {
		return fmt.Errorf("invalid watch.output_suffix: %w", err)
	}

	if err := paths.ValidatePath(config.Lexicon.Path); err != nil {
		return fmt.Errorf("invalid lexicon path: %w", err)
	}
	return nil
}

// LoadConfigOrDefault loads configuration from configFile, or from the first
// file FindConfigFile discovers when configFile is empty. When that file
// cannot be loaded the default configuration is returned together with the
// load error, so callers can warn and carry on.
func LoadConfigOrDefault(configFile string) (*Config, error) {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return defaultConfig(), fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}
