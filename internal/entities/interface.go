package entities

import "context"

// Entity is a named entity found in a text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Recognizer finds named entities in text written in lang ("english",
// "portuguese" or an ISO 639-1 code).
type Recognizer interface {
	Recognize(ctx context.Context, text, lang string) ([]Entity, error)
}
