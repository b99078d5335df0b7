package processor

import (
	"sync"

	"github.com/nguyentantai21042004/textlab/internal/analysis"
	"github.com/nguyentantai21042004/textlab/internal/config"
	"github.com/nguyentantai21042004/textlab/internal/logger"
	"github.com/nguyentantai21042004/textlab/internal/speech"
)

// Deps are the collaborators of a Processor. Recognizer, Saver and
// Publisher are optional.
type Deps struct {
	Runner     analysis.Runner
	Recognizer speech.Recognizer
	Saver      ReportSaver
	Publisher  Publisher
}

type implProcessor struct {
	cfg    *config.Config
	deps   Deps
	mode   analysis.Mode
	logger logger.Logger

	// sem bounds analyses across every caller of Process (watcher and
	// backlog alike); inFlight holds the paths currently claimed.
	sem      *semaphore
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Deps, log logger.Logger) Processor {
	mode, err := analysis.ParseMode(cfg.Analysis.Mode)
	if err != nil {
		mode = analysis.ModeHapax
	}
	return &implProcessor{
		cfg:    cfg,
		deps:   deps,
		mode:     mode,
		logger:   log,
		sem:      newSemaphore(cfg.Performance.MaxConcurrent),
		inFlight: make(map[string]struct{}),
	}
}
