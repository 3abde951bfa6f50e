package provider

import (
	"fmt"
	"sort"
	"sync"

	"audio2num/internal/app/api"
)

// ProviderCreator is a function that creates a transcriber from configuration.
//
// config carries two optional maps, "auth" and "settings", mirroring the
// provider section of the YAML config file.
type ProviderCreator func(config map[string]interface{}) (api.Transcriber, error)

// providerRegistry stores provider creation functions
var (
	providerRegistry = make(map[string]ProviderCreator)
	registryMutex    sync.RWMutex
)

// RegisterProvider registers a provider creator function
func RegisterProvider(providerType string, creator ProviderCreator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	providerRegistry[providerType] = creator
}

// GetProviderCreator returns the creator function for a provider type
func GetProviderCreator(providerType string) (ProviderCreator, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	creator, ok := providerRegistry[providerType]
	if !ok {
		return nil, fmt.Errorf("provider type %s not registered", providerType)
	}
	return creator, nil
}

// ListRegisteredProviders returns all registered provider types, sorted
func ListRegisteredProviders() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, providerType)
	}
	sort.Strings(providers)
	return providers
}

// NewTranscriber builds the transcriber registered under providerType.
func NewTranscriber(providerType string, config map[string]interface{}) (api.Transcriber, error) {
	creator, err := GetProviderCreator(providerType)
	if err != nil {
		return nil, err
	}

	if config == nil {
		config = make(map[string]interface{})
	}
	transcriber, err := creator(config)
	if err != nil {
		return nil, fmt.Errorf("create %s provider: %w", providerType, err)
	}
	return transcriber, nil
}
