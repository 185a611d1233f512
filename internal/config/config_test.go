// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"legal-extract/internal/anchors"
	"legal-extract/internal/paths"
	"legal-extract/internal/scoring"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("expected default format=json, got %q", cfg.Defaults.Format)
	}
	if cfg.Defaults.Workers != 4 {
		t.Errorf("expected default workers=4, got %d", cfg.Defaults.Workers)
	}
	if cfg.Expansion.MaxTokens != 400 || cfg.Expansion.MaxPageSpan != 3 || !cfg.Expansion.StopAtAnchor {
		t.Errorf("unexpected expansion defaults: %+v", cfg.Expansion)
	}
	if cfg.DebounceDuration() != 500*time.Millisecond {
		t.Errorf("expected 500ms debounce, got %v", cfg.DebounceDuration())
	}
	if _, ok := cfg.Profiles["review"]; !ok {
		t.Error("expected 'review' profile to exist in defaults")
	}
}

func TestLoadConfig_PartialOverrides(t *testing.T) {
	configPath := writeConfig(t, `
defaults:
  format: yaml
expansion:
  max_tokens: 120
scoring:
  bearing: 3.5
  penalties:
    TABLE_LIKE: 0
watch:
  debounce: 2s
`)
	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Format != "yaml" {
		t.Errorf("expected format=yaml, got %q", cfg.Defaults.Format)
	}
	if cfg.Expansion.MaxTokens != 120 {
		t.Errorf("expected max_tokens=120, got %d", cfg.Expansion.MaxTokens)
	}
	if !cfg.Expansion.StopAtAnchor {
		t.Error("stop_at_anchor should keep its default when not set")
	}
	if cfg.Scoring.Bearing != 3.5 {
		t.Errorf("expected bearing weight 3.5, got %v", cfg.Scoring.Bearing)
	}
	if cfg.Scoring.Penalties[scoring.NoiseTableLike] != 0 {
		t.Errorf("expected TABLE_LIKE penalty 0, got %v", cfg.Scoring.Penalties[scoring.NoiseTableLike])
	}
	if cfg.Scoring.Penalties[scoring.NoiseNotaryBlock] != 1.0 {
		t.Errorf("expected NOTARY_BLOCK penalty to keep default, got %v", cfg.Scoring.Penalties[scoring.NoiseNotaryBlock])
	}
	if cfg.Scoring.Anchor[anchors.TypeExhibitA] != 0.8 {
		t.Errorf("expected anchor weights to keep defaults, got %v", cfg.Scoring.Anchor)
	}
	if cfg.DebounceDuration() != 2*time.Second {
		t.Errorf("expected 2s debounce, got %v", cfg.DebounceDuration())
	}
}

func TestLoadConfig_StopAtAnchorExplicitFalse(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "expansion:\n  stop_at_anchor: false\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Expansion.StopAtAnchor {
		t.Error("expected stop_at_anchor=false")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"format":          "defaults:\n  format: xml\n",
		"workers":         "defaults:\n  workers: 0\n",
		"max tokens":      "expansion:\n  max_tokens: 0\n",
		"penalty":         "scoring:\n  penalties:\n    NOTARY_BLOCK: -1\n",
		"debounce":        "watch:\n  debounce: soon\n",
		"bare suffix":     "watch:\n  output_suffix: .json\n",
		"suffix no dot":   "watch:\n  output_suffix: result.json\n",
		"suffix dir":      "watch:\n  output_suffix: .out/x.json\n",
		"profile format":  "profiles:\n  odd:\n    format: xml\n",
		"not yaml at all": ":::invalid yaml:::",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadConfigOrDefault_Fallbacks(t *testing.T) {
	cfg, err := LoadConfigOrDefault("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected the load error for a missing file")
	}
	if cfg == nil || cfg.Defaults.Format != "json" {
		t.Fatal("expected default config for a missing file")
	}

	cfg, err = LoadConfigOrDefault(writeConfig(t, "defaults:\n  format: xml\n"))
	if err == nil {
		t.Error("expected the validation error for an invalid file")
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("expected fallback to defaults on invalid config, got %q", cfg.Defaults.Format)
	}

	cfg, err = LoadConfigOrDefault(writeConfig(t, "defaults:\n  format: yaml\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Format != "yaml" {
		t.Errorf("expected yaml, got %q", cfg.Defaults.Format)
	}
}

func TestApplyProfile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
profiles:
  bulk:
    workers: 16
    debug: true
    description: large batch runs
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(cfg.ListProfiles(), ","); got != "bulk,review" {
		t.Errorf("unexpected profiles %q", got)
	}

	if err := cfg.ApplyProfile("bulk"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Workers != 16 || !cfg.Defaults.Debug {
		t.Errorf("profile not applied: %+v", cfg.Defaults)
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("format should be untouched, got %q", cfg.Defaults.Format)
	}

	if err := cfg.ApplyProfile("review"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Format != "text" || !cfg.Defaults.NoColor {
		t.Errorf("review profile not applied: %+v", cfg.Defaults)
	}

	if err := cfg.ApplyProfile("missing"); err == nil {
		t.Error("expected an error for an unknown profile")
	}
}

func TestLoadLexicon(t *testing.T) {
	cfg, _ := LoadConfig("")
	lex, err := cfg.LoadLexicon()
	if err != nil || lex.Len() != 0 {
		t.Fatalf("expected empty lexicon, got %v, %v", lex, err)
	}

	lexPath := filepath.Join(t.TempDir(), "terms.yaml")
	if err := os.WriteFile(lexPath, []byte("version: v1\nentries:\n  comer: corner\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(writeConfig(t, "lexicon:\n  path: "+lexPath+"\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lex, err = cfg.LoadLexicon()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lex.Version() != "v1" || lex.Len() != 1 {
		t.Errorf("unexpected lexicon %s with %d entries", lex.Version(), lex.Len())
	}

	opts := cfg.PipelineOptions(lex)
	if opts.Lexicon != lex || opts.Policy == nil || opts.Weights == nil {
		t.Errorf("pipeline options not populated: %+v", opts)
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(paths.ConfigDirEnv, filepath.Join(dir, "cfg"))

	if got := FindConfigFile(); got != "" {
		t.Errorf("expected no config file, got %q", got)
	}

	if err := os.MkdirAll(filepath.Join(dir, "cfg"), 0700); err != nil {
		t.Fatal(err)
	}
	standard := filepath.Join(dir, "cfg", "config.yaml")
	if err := os.WriteFile(standard, []byte("defaults: {}\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(); got != standard {
		t.Errorf("expected %q, got %q", standard, got)
	}

	if err := os.WriteFile(".legal-extract.yaml", []byte("defaults: {}\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(); got != ".legal-extract.yaml" {
		t.Errorf("expected project config to win, got %q", got)
	}
}
