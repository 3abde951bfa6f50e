package whisper_server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"audio2num/internal/app/api"
)

const providerName = "whisper_server"

// WhisperServerProvider implements transcription via HTTP to a whisper-server instance
type WhisperServerProvider struct {
	config WhisperServerConfig
	client *http.Client
}

// WhisperServerConfig represents configuration for whisper-server HTTP API
type WhisperServerConfig struct {
	BaseURL       string            `yaml:"base_url"`       // Base URL of whisper-server (e.g., "http://192.168.1.100:8080")
	InferencePath string            `yaml:"inference_path"` // Inference endpoint path (default: "/inference")
	Timeout       time.Duration     `yaml:"timeout"`        // Request timeout
	Language      string            `yaml:"language"`       // Default language code
	Temperature   float64           `yaml:"temperature"`    // Decoding temperature (0.0-1.0)
	CustomHeaders map[string]string `yaml:"custom_headers"` // Custom HTTP headers
}

// WhisperServerResponse represents the json response from whisper-server
type WhisperServerResponse struct {
	Text     string  `json:"text,omitempty"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// NewWhisperServerProvider creates a new whisper-server HTTP provider
func NewWhisperServerProvider(config WhisperServerConfig) *WhisperServerProvider {
	if config.InferencePath == "" {
		config.InferencePath = "/inference"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.CustomHeaders == nil {
		config.CustomHeaders = make(map[string]string)
	}
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")

	return &WhisperServerProvider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// ServiceName implements api.Named.
func (wsp *WhisperServerProvider) ServiceName() string {
	return "whisper-server at " + wsp.config.BaseURL
}

// Transcript posts the file to the inference endpoint.
func (wsp *WhisperServerProvider) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	if _, err := os.Stat(inputFilePath); err != nil {
		return "", wsp.fail("file_not_found", 0, false, fmt.Errorf("input file not found: %s", inputFilePath))
	}

	body, contentType, err := wsp.createMultipartForm(inputFilePath)
	if err != nil {
		return "", wsp.fail("form_creation_failed", 0, false, err)
	}

	url := wsp.config.BaseURL + wsp.config.InferencePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", wsp.fail("request_creation_failed", 0, false, err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	for key, value := range wsp.config.CustomHeaders {
		httpReq.Header.Set(key, value)
	}

	resp, err := wsp.client.Do(httpReq)
	if err != nil {
		return "", wsp.fail("request_failed", 0, true, fmt.Errorf("HTTP request failed: %w", err))
	}
	defer resp.Body.Close()

	responseData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", wsp.fail("response_read_failed", resp.StatusCode, true, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", wsp.fail("api_error", resp.StatusCode, resp.StatusCode >= 500,
			fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(responseData))))
	}

	var parsed WhisperServerResponse
	if err := json.Unmarshal(responseData, &parsed); err != nil {
		return "", wsp.fail("response_parse_failed", resp.StatusCode, false, fmt.Errorf("failed to parse JSON response: %w", err))
	}

	text := strings.TrimSpace(parsed.Text)
	if text == "" || isBlankAudioMarker(text) {
		return "", api.ErrUnintelligible
	}
	return text, nil
}

// createMultipartForm creates the multipart form for the API request
func (wsp *WhisperServerProvider) createMultipartForm(inputFilePath string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	file, err := os.Open(inputFilePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(inputFilePath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to copy file content: %w", err)
	}

	params := map[string]string{
		"response_format": "json",
		"temperature":     fmt.Sprintf("%.2f", wsp.config.Temperature),
	}
	if wsp.config.Language != "" {
		params["language"] = wsp.config.Language
	}
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}

func (wsp *WhisperServerProvider) fail(code string, status int, retryable bool, err error) error {
	return &api.ServiceError{
		Provider:   providerName,
		Code:       code,
		StatusCode: status,
		Retryable:  retryable,
		Err:        err,
	}
}

// whisper.cpp answers silence with a bracketed marker instead of an empty string.
func isBlankAudioMarker(text string) bool {
	switch strings.ToUpper(text) {
	case "[BLANK_AUDIO]", "[SILENCE]", "(SILENCE)":
		return true
	}
	return false
}
