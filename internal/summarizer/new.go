package summarizer

import (
	"github.com/nguyentantai21042004/textlab/internal/llm"
	"github.com/nguyentantai21042004/textlab/internal/logger"
)

const (
	DefaultPrefix      = "Please summarize the following text:\n\n"
	DefaultSuffix      = "\n\nSummary:"
	DefaultMaxTokens   = 1024
	DefaultTemperature = 0.5
)

// Options shape the completion prompt. Zero values take the defaults above.
type Options struct {
	Model       string
	Prefix      string
	Suffix      string
	MaxTokens   int
	Temperature *float32
	Candidates  int
	Stop        []string
}

type implLLM struct {
	client llm.Client
	opts   Options
}

// NewLLM creates a Summarizer backed by a language model.
func NewLLM(client llm.Client, opts Options) FullSummarizer {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.Suffix == "" {
		opts.Suffix = DefaultSuffix
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.Temperature == nil {
		t := float32(DefaultTemperature)
		opts.Temperature = &t
	}
	if opts.Candidates <= 0 {
		opts.Candidates = 1
	}
	return &implLLM{client: client, opts: opts}
}

type implExtractive struct {
	sentences int
}

// NewExtractive creates a Summarizer that keeps the n highest-scoring
// sentences of the input.
func NewExtractive(n int) Summarizer {
	if n <= 0 {
		n = 3
	}
	return &implExtractive{sentences: n}
}

type implBatch struct {
	summarizer Summarizer
	logger     logger.Logger
}

// NewBatch creates a Batch that runs s over folders of .txt files.
func NewBatch(s Summarizer, log logger.Logger) Batch {
	return &implBatch{
		summarizer: s,
		logger:     log,
	}
}
