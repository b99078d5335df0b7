package analysis

import (
	"github.com/nguyentantai21042004/textlab/internal/entities"
	"github.com/nguyentantai21042004/textlab/internal/logger"
	"github.com/nguyentantai21042004/textlab/internal/metrics"
)

// Options configures a Runner.
type Options struct {
	// Recognizer extracts named entities; nil uses the offline heuristic.
	Recognizer entities.Recognizer
	// Disjoint disables copying peripheral words into earlier zones.
	Disjoint bool
	// Workers bounds concurrent file reads during import.
	Workers int
	Metrics *metrics.Metrics
}

type implRunner struct {
	recognizer entities.Recognizer
	disjoint   bool
	workers    int
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// New creates a Runner.
func New(opts Options, log logger.Logger) Runner {
	if opts.Recognizer == nil {
		opts.Recognizer = entities.NewHeuristic()
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &implRunner{
		recognizer: opts.Recognizer,
		disjoint:   opts.Disjoint,
		workers:    opts.Workers,
		metrics:    opts.Metrics,
		logger:     log,
	}
}
