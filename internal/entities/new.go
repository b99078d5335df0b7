package entities

import "github.com/nguyentantai21042004/textlab/internal/llm"

type implLLM struct {
	client llm.Client
}

// NewLLM creates a Recognizer that asks a language model for entities.
func NewLLM(client llm.Client) Recognizer {
	return &implLLM{client: client}
}

type implHeuristic struct{}

// NewHeuristic creates an offline Recognizer that tags runs of capitalized
// words which do not start a sentence.
func NewHeuristic() Recognizer {
	return &implHeuristic{}
}
