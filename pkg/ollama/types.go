package ollama

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ErrMalformedResponse is returned when the generate envelope cannot be decoded
var ErrMalformedResponse = errors.New("ollama: malformed response")

// Config holds Ollama client configuration
type Config struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("ollama: invalid BaseURL %q: %w", c.BaseURL, err)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return nil
}

// ollamaImpl is the internal implementation of IOllama
type ollamaImpl struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// GenerateRequest represents a generation request
type GenerateRequest struct {
	Prompt string
	// Format constrains the output; FormatJSON or empty
	Format string
}

// GenerateResponse is the non-streaming /api/generate envelope
type GenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// StatusError is returned when the server answers with a non-200 status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ollama: API error %d: %s", e.StatusCode, e.Body)
}

// generateBody is the wire format of a generate request
type generateBody struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}
