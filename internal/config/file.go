package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"daily-briefing/internal/domain/entity"
)

// FileConfig is the optional settings file. YAML is a superset of JSON, so the
// camelCase config.json written by older installs loads unchanged.
type FileConfig struct {
	Summarizer                string                    `yaml:"summarizer"`
	GeminiAPIKey              string                    `yaml:"geminiApiKey"`
	OpenAIAPIKey              string                    `yaml:"openaiApiKey"`
	AnthropicAPIKey           string                    `yaml:"anthropicApiKey"`
	ElevenLabsAPIKey          string                    `yaml:"elevenLabsApiKey"`
	ElevenLabsVoices          string                    `yaml:"elevenLabsVoices"`
	InworldAPIKey             string                    `yaml:"inworldApiKey"`
	InworldSecret             string                    `yaml:"inworldSecret"`
	InworldVoices             string                    `yaml:"inworldVoices"`
	InworldVoicePersonalities []entity.VoicePersonality `yaml:"inworldVoicePersonalities"`
	CategoryPriorities        []string                  `yaml:"categoryPriorities"`
}

// LoadFile reads a settings file.
// The path comes from the operator (env var), not from request input.
func LoadFile(path string) (*FileConfig, error) {
	// #nosec G304 -- operator supplied path
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &fc, nil
}
