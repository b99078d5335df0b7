package summarizer

import "context"

// Summarizer condenses a text into a shorter one.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// FullSummarizer also exposes every candidate a language model produced.
type FullSummarizer interface {
	Summarizer
	SummarizeFull(ctx context.Context, text string) ([]string, error)
}

// Batch summarizes every text file of a folder into markdown and docx files.
type Batch interface {
	SummarizeAll(ctx context.Context, srcDir, destDir string) error
}
