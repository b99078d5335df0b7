package llm

import "context"

// Client is the language-model boundary used for summaries, translation,
// entity extraction, embeddings and question answering.
type Client interface {
	// Generate returns one text per requested candidate.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) ([]string, error)
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Answer(ctx context.Context, question string, passages []string) (string, error)
}

// GenerateOptions tunes a single completion. Zero values fall back to the
// client defaults.
type GenerateOptions struct {
	Model       string
	MaxTokens   int
	Temperature *float32
	Candidates  int
	Stop        []string
}
