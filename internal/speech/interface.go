package speech

import "context"

// Recognizer turns an audio file into text.
type Recognizer interface {
	Recognize(ctx context.Context, audioPath string) (string, error)
}

// Synthesizer speaks text into a WAV file.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, outPath string) error
}
