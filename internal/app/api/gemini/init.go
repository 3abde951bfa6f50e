package gemini

import (
	"context"

	"audio2num/internal/app/api"
	"audio2num/internal/app/api/provider"
)

func init() {
	provider.RegisterProvider(providerName, createGeminiProvider)
}

func createGeminiProvider(config map[string]interface{}) (api.Transcriber, error) {
	settings := provider.Settings(config)

	return NewTranscriber(context.Background(), Config{
		APIKey:  provider.String(provider.Auth(config), "api_key", ""),
		Model:   provider.String(settings, "model", ""),
		Prompt:  provider.String(settings, "prompt", ""),
		BaseURL: provider.String(settings, "base_url", ""),
		Timeout: provider.Seconds(settings, "timeout", 0),
	})
}
