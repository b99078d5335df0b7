package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/textlab/internal/cleaner"
	"github.com/nguyentantai21042004/textlab/internal/corpus"
	"github.com/nguyentantai21042004/textlab/internal/entities"
	"github.com/nguyentantai21042004/textlab/internal/language"
	"github.com/nguyentantai21042004/textlab/internal/ome"
	"github.com/nguyentantai21042004/textlab/internal/prototype"
)

func (r *implRunner) Run(ctx context.Context, folder string, mode Mode) (*Report, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	text, err := corpus.ImportFolderWithWorkers(ctx, folder, r.workers)
	if err != nil {
		return nil, fmt.Errorf("import corpus: %w", err)
	}
	return r.RunText(ctx, folder, text, mode)
}

func (r *implRunner) RunText(ctx context.Context, source, text string, mode Mode) (rep *Report, err error) {
	start := time.Now()
	defer func() {
		r.metrics.ObserveAnalysis(string(mode), err, time.Since(start))
	}()

	if _, err = ParseMode(string(mode)); err != nil {
		return nil, err
	}

	lang := language.Detect(text)
	r.logger.Debug(ctx, "Detected language %s (%.2f) for %s", lang.Code, lang.Confidence, source)

	ents, nerErr := entities.Extract(ctx, r.recognizer, text, lang.Short)
	if nerErr != nil {
		r.logger.Warn(ctx, "Entity extraction failed for %s: %v", source, nerErr)
		ents = []entities.Entity{}
	}

	cleaned := cleaner.Clean(text, lang.Short)
	words := cleaned.Words
	if mode == ModeNoHapax {
		words = cleaned.WordsNoHapax
	}

	res, err := ome.Compute(words)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", source, err)
	}
	zones, err := prototype.ClassifyWith(res.Ranked, res.Table, prototype.Options{Disjoint: r.disjoint})
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", source, err)
	}

	rep = &Report{
		Source:    source,
		Mode:      mode,
		Language:  lang,
		Entities:  ents,
		Cleaned:   cleaned,
		OME:       res,
		Zones:     zones,
		CreatedAt: start.UTC(),
		Duration:  time.Since(start),
		Text:      text,
	}
	c := rep.Counts()
	r.logger.Info(ctx, "Analyzed %s (%s): %d words, core=%d z1=%d z2=%d z3=%d",
		source, mode, len(words), c[0], c[1], c[2], c[3])
	return rep, nil
}
