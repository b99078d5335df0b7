package translator

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/textlab/internal/llm"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

const keyPrefix = "translate:"

const translatePrompt = `Translate the following text to the language with ISO 639-1 code %q.
Reply with the translation only.

%s`

func (t *implLLM) Translate(ctx context.Context, text, target string) (string, error) {
	if err := validate(text, target); err != nil {
		return "", err
	}
	temp := float32(0.2)
	out, err := t.gen.Generate(ctx, fmt.Sprintf(translatePrompt, target, text), llm.GenerateOptions{
		Temperature: &temp,
		Candidates:  1,
	})
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", target, err)
	}
	if len(out) == 0 {
		return "", fmt.Errorf("translate to %s: no candidates: %w", target, apperrors.ErrUnavailable)
	}
	return strings.TrimSpace(out[0]), nil
}

func (t *implCached) Translate(ctx context.Context, text, target string) (string, error) {
	if err := validate(text, target); err != nil {
		return "", err
	}
	key := buildKey(text, target)

	if v, ok := t.get(ctx, key); ok {
		return v, nil
	}
	v, err, _ := t.group.Do(key, func() (interface{}, error) {
		if v, ok := t.get(ctx, key); ok {
			return v, nil
		}
		out, err := t.inner.Translate(ctx, text, target)
		if err != nil {
			return "", err
		}
		if err := t.store.Set(ctx, key, out, t.ttl); err != nil {
			t.l.Warn(ctx, "translator.Translate: cache set failed for %s: %v", key, err)
		}
		return out, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// get treats store failures as misses.
func (t *implCached) get(ctx context.Context, key string) (string, bool) {
	v, err := t.store.Get(ctx, key)
	if err == nil {
		return v, true
	}
	if !t.store.IsMiss(err) {
		t.l.Warn(ctx, "translator.Translate: cache get failed for %s: %v", key, err)
	}
	return "", false
}

func validate(text, target string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("nothing to translate: %w", apperrors.ErrEmptyInput)
	}
	if strings.TrimSpace(target) == "" {
		return fmt.Errorf("target language is required: %w", apperrors.ErrInvalidInput)
	}
	return nil
}

func buildKey(text, target string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(target)) + "\x00" + text))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
