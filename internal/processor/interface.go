package processor

import (
	"context"

	"github.com/nguyentantai21042004/textlab/internal/analysis"
	"github.com/nguyentantai21042004/textlab/internal/events"
)

// Processor analyzes corpus and audio files dropped into the input folder.
type Processor interface {
	Process(ctx context.Context, path string) error
	// ProcessBacklog processes files already present in the input folder.
	ProcessBacklog(ctx context.Context) error
}

// ReportSaver persists a report and returns its run id.
type ReportSaver interface {
	SaveReport(ctx context.Context, r *analysis.Report) (int64, error)
}

// Publisher announces finished analyses.
type Publisher interface {
	PublishAnalysis(ctx context.Context, ev events.AnalysisCompleted) error
}
