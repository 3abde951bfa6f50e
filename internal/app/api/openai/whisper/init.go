package whisper

import (
	"audio2num/internal/app/api"
	openaiclient "audio2num/internal/app/api/openai"
	"audio2num/internal/app/api/provider"
)

func init() {
	// Register openai provider with the factory
	provider.RegisterProvider(providerName, createOpenAIProvider)
}

// createOpenAIProvider creates an OpenAI Whisper provider from configuration
func createOpenAIProvider(config map[string]interface{}) (api.Transcriber, error) {
	settings := provider.Settings(config)

	client, err := openaiclient.NewClient(
		provider.String(provider.Auth(config), "api_key", ""),
		provider.String(settings, "base_url", ""),
	)
	if err != nil {
		return nil, err
	}

	return NewRemoteTranscriber(client, Options{
		Model:       provider.String(settings, "model", ""),
		Language:    provider.String(settings, "language", ""),
		Prompt:      provider.String(settings, "prompt", ""),
		Temperature: float32(provider.Float(settings, "temperature", 0)),
	}), nil
}
