package analysis

import "context"

// Runner performs the full prototype analysis of a corpus.
type Runner interface {
	// Run imports every document in folder and analyzes the concatenated text.
	Run(ctx context.Context, folder string, mode Mode) (*Report, error)
	// RunText analyzes text directly; source labels the report.
	RunText(ctx context.Context, source, text string, mode Mode) (*Report, error)
}
