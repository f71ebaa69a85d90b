package ollama

import "context"

// IOllama defines the interface for the Ollama generate API.
// Implementations are safe for concurrent use.
type IOllama interface {
	// Generate sends a non-streaming completion request
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// Health checks that the server answers its model listing
	Health(ctx context.Context) error

	// Model returns the model being used
	Model() string
}

// New creates a new Ollama client with the given configuration
func New(cfg Config) (IOllama, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newOllamaImpl(cfg), nil
}
