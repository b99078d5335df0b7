package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
	"google.golang.org/genai"
)

const answerPrompt = `Answer the question using only the passages below. If the passages do not contain the answer, say so.

Passages:
---
%s
---

Question: %s
Answer:`

// Generate sends prompt to Gemini and returns the text of every candidate.
// Rotates API keys on 429 / quota errors.
func (c *implClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) ([]string, error) {
	model := opts.Model
	if model == "" {
		model = c.model
	}
	cfg := &genai.GenerateContentConfig{
		Temperature:   opts.Temperature,
		StopSequences: opts.Stop,
	}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.Candidates > 1 {
		cfg.CandidateCount = int32(opts.Candidates)
	}

	var texts []string
	err := c.withRotation(ctx, func(client *genai.Client) error {
		result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
		if err != nil {
			return err
		}
		texts = texts[:0]
		if result != nil {
			for _, cand := range result.Candidates {
				if cand == nil || cand.Content == nil {
					continue
				}
				var b strings.Builder
				for _, part := range cand.Content.Parts {
					if part != nil && part.Text != "" {
						b.WriteString(part.Text)
					}
				}
				texts = append(texts, b.String())
			}
		}
		if len(texts) == 0 {
			return fmt.Errorf("empty response from Gemini: %w", apperrors.ErrUnavailable)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	return texts, nil
}

// Embed returns one embedding vector per input text, in input order.
func (c *implClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, genai.NewContentFromText(t, genai.RoleUser))
	}

	var vectors [][]float32
	err := c.withRotation(ctx, func(client *genai.Client) error {
		result, err := client.Models.EmbedContent(ctx, c.embedModel, contents, nil)
		if err != nil {
			return err
		}
		if result == nil || len(result.Embeddings) != len(texts) {
			return fmt.Errorf("embedding count mismatch: %w", apperrors.ErrUnavailable)
		}
		vectors = make([][]float32, len(result.Embeddings))
		for i, e := range result.Embeddings {
			if e != nil {
				vectors[i] = e.Values
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	return vectors, nil
}

// Answer asks the model to answer question from the given passages.
func (c *implClient) Answer(ctx context.Context, question string, passages []string) (string, error) {
	prompt := fmt.Sprintf(answerPrompt, strings.Join(passages, "\n---\n"), question)
	out, err := c.Generate(ctx, prompt, GenerateOptions{})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out[0]), nil
}

// withRotation runs call with a client for the current key, moving to the
// next key when the current one is rate limited. Every key is tried once.
func (c *implClient) withRotation(ctx context.Context, call func(*genai.Client) error) error {
	attempts := len(c.apiKeys)
	var lastErr error

	for range attempts {
		idx, key := c.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:      key,
			Backend:     genai.BackendGeminiAPI,
			HTTPOptions: genai.HTTPOptions{BaseURL: c.baseURL},
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			c.rotateKey(idx)
			continue
		}

		err = call(client)
		if err == nil {
			return nil
		}
		if isRateLimited(err) {
			c.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
			c.rotateKey(idx)
			lastErr = err
			continue
		}
		return err
	}

	return fmt.Errorf("all API keys exhausted: %w: %w", apperrors.ErrRateLimited, lastErr)
}

func (c *implClient) key() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentKey, c.apiKeys[c.currentKey]
}

// rotateKey advances past idx unless another caller already did.
func (c *implClient) rotateKey(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentKey == idx {
		c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
	}
}

func isRateLimited(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
