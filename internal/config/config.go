// Package config loads the tool configuration from YAML plus environment
// overrides.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Scan struct {
		Root     string `yaml:"root"`
		Language string `yaml:"language"`
	} `yaml:"scan"`
	Path struct {
		// Exclude lists tables removed from every path query by default.
		Exclude []string `yaml:"exclude"`
		Format  string   `yaml:"format"`
	} `yaml:"path"`
	AI struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"ai"`
}

// LoadConfig reads the config file, falling back to defaults when the file
// is absent, and applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	// Load .env if exists
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Scan.Root = "."
	cfg.Scan.Language = "go"
	cfg.Path.Format = "mermaid"
	cfg.AI.Model = "gemini-2.0-flash"

	if file, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	}

	if apiKey := os.Getenv("SCHEMAPATH_API_KEY"); apiKey != "" {
		cfg.AI.APIKey = apiKey
	}
	if model := os.Getenv("SCHEMAPATH_AI_MODEL"); model != "" {
		cfg.AI.Model = model
	}
	if exclude := os.Getenv("SCHEMAPATH_EXCLUDE"); exclude != "" {
		cfg.Path.Exclude = splitList(exclude)
	}

	return cfg, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
