package entities

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/textlab/internal/llm"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

const entityPrompt = `Extract the named entities from the %s text below.
Reply with a JSON array only, each item {"text": "...", "label": "..."} where label is one of PER, ORG, LOC, MISC.

Text:
---
%s
---`

func (r *implLLM) Recognize(ctx context.Context, text, lang string) ([]Entity, error) {
	if lang == "" {
		lang = "input"
	}
	zero := float32(0)
	out, err := r.client.Generate(ctx, fmt.Sprintf(entityPrompt, lang, text), llm.GenerateOptions{Temperature: &zero})
	if err != nil {
		return nil, fmt.Errorf("recognize entities: %w", err)
	}
	return parseEntities(out[0])
}

// parseEntities reads the first JSON array in reply, tolerating code fences
// and chatter around it.
func parseEntities(reply string) ([]Entity, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("entity reply has no JSON array: %w", apperrors.ErrTypeMismatch)
	}
	var raw []Entity
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("decode entity reply: %w: %v", apperrors.ErrTypeMismatch, err)
	}
	out := make([]Entity, 0, len(raw))
	for _, e := range raw {
		e.Text = strings.TrimSpace(e.Text)
		e.Label = strings.ToUpper(strings.TrimSpace(e.Label))
		if e.Text == "" {
			continue
		}
		if e.Label == "" {
			e.Label = "MISC"
		}
		out = append(out, e)
	}
	return out, nil
}
