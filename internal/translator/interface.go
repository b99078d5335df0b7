package translator

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/textlab/internal/llm"
)

// Translator translates text into the language named by an ISO 639-1 code.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// Generator is the part of the LM client a translator needs.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) ([]string, error)
}

// Store is a string key/value store with expiry. *cache.Client implements it.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	IsMiss(err error) bool
}
