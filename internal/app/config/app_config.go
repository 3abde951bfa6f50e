package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	envconfig "audio2num/internal/config"
)

// DefaultConfigPath is used when neither --config nor A2N_CONFIG is set.
const DefaultConfigPath = "config/a2n.yaml"

// AppConfig is the YAML configuration file.
type AppConfig struct {
	DefaultProvider string                    `yaml:"default_provider" validate:"required"`
	Providers       map[string]ProviderConfig `yaml:"providers"`
	Audio           AudioConfig               `yaml:"audio"`
	Store           StoreConfig               `yaml:"store"`
	Server          ServerConfig              `yaml:"server"`
}

// ProviderConfig is one transcription provider section.
type ProviderConfig struct {
	Auth     map[string]interface{} `yaml:"auth,omitempty"`
	Settings map[string]interface{} `yaml:"settings,omitempty"`
}

// AudioConfig controls conversion.
type AudioConfig struct {
	FFmpegPath   string `yaml:"ffmpeg_path"`
	FFprobePath  string `yaml:"ffprobe_path"`
	SampleRate   int    `yaml:"sample_rate" validate:"gt=0"`
	Channels     int    `yaml:"channels" validate:"min=1,max=2"`
	TempDir      string `yaml:"temp_dir"`
	SourceFormat string `yaml:"source_format"`
}

// StoreConfig selects where results are kept.
type StoreConfig struct {
	Driver string `yaml:"driver" validate:"oneof=none sqlite postgres"`
	DSN    string `yaml:"dsn" validate:"required_unless=Driver none"`
}

// ServerConfig configures `a2n serve`.
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec" validate:"gte=0"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec" validate:"gte=0"`
	MaxUploadMB     int    `yaml:"max_upload_mb" validate:"gt=0"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSec) * time.Second
}

func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSec) * time.Second
}

// Default returns the configuration used when no file exists.
func Default() *AppConfig {
	return &AppConfig{
		DefaultProvider: "openai",
		Providers: map[string]ProviderConfig{
			"openai": {
				Auth:     map[string]interface{}{"api_key": "${OPENAI_API_KEY}"},
				Settings: map[string]interface{}{"model": "whisper-1", "language": "en"},
			},
			"gemini": {
				Auth:     map[string]interface{}{"api_key": "${GEMINI_API_KEY}"},
				Settings: map[string]interface{}{"model": "gemini-2.0-flash"},
			},
		},
		Audio: AudioConfig{
			FFmpegPath:  "ffmpeg",
			FFprobePath: "ffprobe",
			SampleRate:  16000,
			Channels:    1,
		},
		Store: StoreConfig{
			Driver: "sqlite",
			DSN:    "data/results.db",
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeoutSec:  30,
			WriteTimeoutSec: 120,
			MaxUploadMB:     25,
		},
	}
}

// ResolvePath picks the config file: explicit path, then $A2N_CONFIG, then
// DefaultConfigPath.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if path := os.Getenv("A2N_CONFIG"); path != "" {
		return path
	}
	return DefaultConfigPath
}

// Load reads the YAML file at configPath over Default(). A missing file is
// not an error unless it was named explicitly by the caller.
func Load(configPath string, mustExist bool) (*AppConfig, error) {
	config := Default()
	configPath = os.ExpandEnv(configPath)

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist) && !mustExist:
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	config.expandEnvironmentVariables()
	config.setDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// expandEnvironmentVariables replaces "${VAR}" string values in provider
// sections with the variable's value.
func (c *AppConfig) expandEnvironmentVariables() {
	for _, provider := range c.Providers {
		expandMap(provider.Auth)
		expandMap(provider.Settings)
	}
	c.Store.DSN = os.ExpandEnv(c.Store.DSN)
}

func expandMap(m map[string]interface{}) {
	for key, value := range m {
		strValue, ok := value.(string)
		if ok && strings.HasPrefix(strValue, "${") && strings.HasSuffix(strValue, "}") {
			envVar := strings.TrimSuffix(strings.TrimPrefix(strValue, "${"), "}")
			m[key] = os.Getenv(envVar)
		}
	}
}

func (c *AppConfig) setDefaults() {
	if c.Audio.FFmpegPath == "" {
		c.Audio.FFmpegPath = "ffmpeg"
	}
	if c.Audio.FFprobePath == "" {
		c.Audio.FFprobePath = "ffprobe"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "none"
	}
	if c.Providers == nil {
		c.Providers = make(map[string]ProviderConfig)
	}
}

var validate = validator.New()

// Validate checks struct tags, then the rules tags cannot express.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			msgs := make([]string, 0, len(validationErrs))
			for _, fe := range validationErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	if err := envconfig.ValidateSampleRate(c.Audio.SampleRate); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	if c.Server.ReadTimeoutSec > 0 {
		if err := envconfig.ValidateTimeout(c.Server.ReadTimeout(), "server read"); err != nil {
			return err
		}
	}
	if c.Server.WriteTimeoutSec > 0 {
		if err := envconfig.ValidateTimeout(c.Server.WriteTimeout(), "server write"); err != nil {
			return err
		}
	}
	if ws, ok := c.Providers["whisper_server"]; ok {
		if url, _ := ws.Settings["base_url"].(string); url != "" {
			if err := envconfig.ValidateURL(url, "whisper_server"); err != nil {
				return err
			}
		}
	}
	return nil
}

// ProviderSettings returns the config map handed to the provider registry.
func (c *AppConfig) ProviderSettings(name string) map[string]interface{} {
	p := c.Providers[name]
	auth := p.Auth
	if auth == nil {
		auth = make(map[string]interface{})
	}
	settings := p.Settings
	if settings == nil {
		settings = make(map[string]interface{})
	}
	return map[string]interface{}{
		"auth":     auth,
		"settings": settings,
	}
}
