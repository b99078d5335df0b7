package processor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nguyentantai21042004/textlab/internal/corpus"
	"github.com/nguyentantai21042004/textlab/internal/events"
	"github.com/nguyentantai21042004/textlab/internal/logger"
	"github.com/nguyentantai21042004/textlab/internal/report"
	"github.com/nguyentantai21042004/textlab/internal/speech"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

// Supported reports whether the daemon handles path.
func Supported(path string) bool {
	return corpus.SupportedExt(path) || speech.AudioExt(path)
}

// Process runs one file through transcription (audio only), analysis and
// output, then archives it. At most performance.max_concurrent files are
// analyzed at once, and a path already being processed, or already
// archived, is skipped.
func (p *implProcessor) Process(ctx context.Context, path string) error {
	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	ctx = logger.WithRunID(ctx, stem)

	if !p.claim(path) {
		p.logger.Debug(ctx, "Already processing %s, skipping", path)
		return nil
	}
	defer p.unclaim(path)

	if err := p.sem.acquire(ctx); err != nil {
		return err
	}
	defer p.sem.release()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		p.logger.Debug(ctx, "%s is gone, skipping", path)
		return nil
	}

	startTime := time.Now()
	p.logger.Info(ctx, "Starting analysis: %s", path)

	text, err := p.readText(ctx, path)
	if err != nil {
		return err
	}

	rep, err := p.deps.Runner.RunText(ctx, name, text, p.mode)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", name, err)
	}

	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	jsonPath := filepath.Join(p.cfg.Paths.Output, stem+".json")
	if err := report.WriteJSON(jsonPath, rep); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	docxPath := filepath.Join(p.cfg.Paths.Output, stem+".docx")
	if err := report.WriteDOCX(docxPath, stem, rep, ""); err != nil {
		return fmt.Errorf("write docx report: %w", err)
	}
	if speech.AudioExt(path) {
		txtPath := filepath.Join(p.cfg.Paths.Output, stem+".txt")
		if err := os.WriteFile(txtPath, []byte(text), 0644); err != nil {
			p.logger.Warn(ctx, "Failed to save transcript %s: %v", txtPath, err)
		}
	}

	var runID int64
	if p.deps.Saver != nil {
		runID, err = p.deps.Saver.SaveReport(ctx, rep)
		if err != nil {
			return fmt.Errorf("save report: %w", err)
		}
	}
	if p.deps.Publisher != nil {
		if err := p.deps.Publisher.PublishAnalysis(ctx, events.Digest(rep, runID)); err != nil {
			p.logger.Warn(ctx, "Failed to publish analysis event: %v", err)
		}
	}

	if err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	counts := rep.Counts()
	p.logger.Info(ctx, "Analysis completed in %s: %d words, zones %v, report %s",
		time.Since(startTime), rep.OME.Tokens, counts, docxPath)
	return nil
}

func (p *implProcessor) claim(path string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.inFlight[path]; ok {
		return false
	}
	p.inFlight[path] = struct{}{}
	return true
}

func (p *implProcessor) unclaim(path string) {
	p.mu.Lock()
	delete(p.inFlight, path)
	p.mu.Unlock()
}

func (p *implProcessor) readText(ctx context.Context, path string) (string, error) {
	if speech.AudioExt(path) {
		if p.deps.Recognizer == nil {
			return "", fmt.Errorf("no speech recognizer configured for %s: %w", path, apperrors.ErrInvalidInput)
		}
		text, err := p.deps.Recognizer.Recognize(ctx, path)
		if err != nil {
			return "", fmt.Errorf("transcribe: %w", err)
		}
		return text, nil
	}
	text, err := corpus.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return text, nil
}

func (p *implProcessor) ProcessBacklog(ctx context.Context) error {
	entries, err := os.ReadDir(p.cfg.Paths.Input)
	if err != nil {
		return fmt.Errorf("read input dir: %w", err)
	}

	var wg sync.WaitGroup
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !Supported(e.Name()) {
			continue
		}
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			if err := p.Process(ctx, path); err != nil && !errors.Is(err, context.Canceled) {
				p.logger.Error(ctx, "Failed to process %s: %v", path, err)
			}
		}(filepath.Join(p.cfg.Paths.Input, e.Name()))
	}
	wg.Wait()
	return ctx.Err()
}

