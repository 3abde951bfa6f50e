package whisper_server

import (
	"fmt"
	"time"

	"audio2num/internal/app/api"
	"audio2num/internal/app/api/provider"
)

func init() {
	provider.RegisterProvider(providerName, createWhisperServerProvider)
}

func createWhisperServerProvider(config map[string]interface{}) (api.Transcriber, error) {
	settings := provider.Settings(config)

	baseURL := provider.String(settings, "base_url", "")
	if baseURL == "" {
		return nil, fmt.Errorf("whisper_server provider requires 'base_url' setting")
	}

	headers := provider.StringMap(settings, "custom_headers")
	if token := provider.String(provider.Auth(config), "token", ""); token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	return NewWhisperServerProvider(WhisperServerConfig{
		BaseURL:       baseURL,
		InferencePath: provider.String(settings, "inference_path", ""),
		Timeout:       provider.Seconds(settings, "timeout", 60*time.Second),
		Language:      provider.String(settings, "language", ""),
		Temperature:   provider.Float(settings, "temperature", 0),
		CustomHeaders: headers,
	}), nil
}
