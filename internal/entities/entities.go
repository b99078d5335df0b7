package entities

import (
	"context"
	"strings"
)

// Extract runs rec over text with newlines flattened and removes duplicate
// (text, label) pairs, keeping first-seen order.
func Extract(ctx context.Context, rec Recognizer, text, lang string) ([]Entity, error) {
	found, err := rec.Recognize(ctx, strings.ReplaceAll(text, "\n", " "), lang)
	if err != nil {
		return nil, err
	}
	return dedupe(found), nil
}

func dedupe(in []Entity) []Entity {
	seen := make(map[Entity]struct{}, len(in))
	out := make([]Entity, 0, len(in))
	for _, e := range in {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
