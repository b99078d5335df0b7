package llm

import (
	"fmt"
	"sync"

	"github.com/nguyentantai21042004/textlab/internal/logger"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

// Config selects the Gemini models and the API keys to rotate through.
type Config struct {
	APIKeys    []string
	Model      string
	EmbedModel string
	// BaseURL overrides the Gemini endpoint.
	BaseURL string
}

type implClient struct {
	apiKeys    []string
	mu         sync.Mutex
	currentKey int
	logger     logger.Logger
	model      string
	embedModel string
	baseURL    string
}

// New creates a Client that rotates through the supplied Gemini API keys.
func New(cfg Config, log logger.Logger) (Client, error) {
	if len(cfg.APIKeys) == 0 {
		return nil, fmt.Errorf("gemini api keys: %w", apperrors.ErrInvalidInput)
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = "text-embedding-004"
	}
	return &implClient{
		apiKeys:    cfg.APIKeys,
		logger:     log,
		model:      cfg.Model,
		embedModel: cfg.EmbedModel,
		baseURL:    cfg.BaseURL,
	}, nil
}
