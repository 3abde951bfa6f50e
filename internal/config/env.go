package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeys holds all API keys loaded from environment
type APIKeys struct {
	OpenAI string
	Gemini string
}

// envPaths are tried in order; the first existing file wins.
var envPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// LoadEnv loads the first .env file found and returns its path, or "" when
// there is none. Variables already set in the process are not overridden.
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}
	return "", nil
}

// GetAPIKeys reads API keys from the environment and rejects malformed ones.
// Missing keys are fine; the provider that needs one reports it.
func GetAPIKeys() (*APIKeys, error) {
	apiKeys := &APIKeys{
		OpenAI: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Gemini: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
	}

	if apiKeys.OpenAI != "" {
		if err := ValidateAPIKey(apiKeys.OpenAI, "OpenAI"); err != nil {
			return nil, fmt.Errorf("OPENAI_API_KEY: %w", err)
		}
	}
	if apiKeys.Gemini != "" {
		if err := ValidateAPIKey(apiKeys.Gemini, "Gemini"); err != nil {
			return nil, fmt.Errorf("GEMINI_API_KEY: %w", err)
		}
	}

	return apiKeys, nil
}

// Available lists the services with a configured key.
func (k *APIKeys) Available() []string {
	var available []string
	if k.OpenAI != "" {
		available = append(available, "OpenAI")
	}
	if k.Gemini != "" {
		available = append(available, "Gemini")
	}
	return available
}

// InitializeConfig loads .env and validates API keys.
func InitializeConfig() (*APIKeys, string, error) {
	loaded, err := LoadEnv()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load environment: %w", err)
	}

	apiKeys, err := GetAPIKeys()
	if err != nil {
		return nil, loaded, fmt.Errorf("failed to get API keys: %w", err)
	}

	return apiKeys, loaded, nil
}
