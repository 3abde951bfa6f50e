package openai

import (
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// NewClient builds an OpenAI client. An empty apiKey falls back to OPENAI_API_KEY.
func NewClient(apiKey, baseURL string) (*openai.Client, error) {
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config), nil
}
