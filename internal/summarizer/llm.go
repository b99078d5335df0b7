package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/textlab/internal/llm"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

// Summarize returns the first candidate, trimmed.
func (s *implLLM) Summarize(ctx context.Context, text string) (string, error) {
	all, err := s.SummarizeFull(ctx, text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(all[0]), nil
}

// SummarizeFull returns every candidate the model produced.
func (s *implLLM) SummarizeFull(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("summarize: %w", apperrors.ErrEmptyInput)
	}
	prompt := s.opts.Prefix + text + s.opts.Suffix
	out, err := s.client.Generate(ctx, prompt, llm.GenerateOptions{
		Model:       s.opts.Model,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
		Candidates:  s.opts.Candidates,
		Stop:        s.opts.Stop,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("summarize: no candidates: %w", apperrors.ErrUnavailable)
	}
	return out, nil
}
