package ollama

import "time"

const (
	// DefaultModel is the default Ollama model
	DefaultModel = "qwen2.5:7b"

	// DefaultBaseURL is the default local Ollama endpoint
	DefaultBaseURL = "http://localhost:11434"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 15 * time.Second

	// FormatJSON asks the model to emit a single JSON value
	FormatJSON = "json"

	generatePath = "/api/generate"
	tagsPath     = "/api/tags"
)
