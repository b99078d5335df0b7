package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/textlab/internal/analysis"
	"github.com/nguyentantai21042004/textlab/internal/cache"
	"github.com/nguyentantai21042004/textlab/internal/corpus"
	"github.com/nguyentantai21042004/textlab/internal/entities"
	"github.com/nguyentantai21042004/textlab/internal/language"
	"github.com/nguyentantai21042004/textlab/internal/report"
	"github.com/nguyentantai21042004/textlab/internal/speech"
	"github.com/nguyentantai21042004/textlab/internal/store"
	"github.com/nguyentantai21042004/textlab/internal/summarizer"
	"github.com/nguyentantai21042004/textlab/internal/translator"
	"github.com/nguyentantai21042004/textlab/pkg/executor"
)

func (a *app) analyze(ctx context.Context, args []string) error {
	fs := a.newFlags("analyze")
	dir := fs.String("dir", a.cfg.Paths.Input, "corpus folder")
	mode := fs.String("mode", a.cfg.Analysis.Mode, "hap keeps hapaxes, no_hap drops them")
	disjoint := fs.Bool("disjoint", a.cfg.Analysis.Disjoint, "do not copy peripheral words into earlier zones")
	docxOut := fs.String("docx", "", "write a DOCX report to this path")
	jsonOut := fs.String("json", "", "write the JSON report to this path")
	dbPath := fs.String("db", a.cfg.Database.Path, "persist the run to this sqlite file")
	useLLM := fs.Bool("llm", false, "use Gemini for named entities")
	if err := fs.Parse(args); err != nil {
		return err
	}
	m, err := analysis.ParseMode(*mode)
	if err != nil {
		return err
	}

	opts := analysis.Options{Disjoint: *disjoint, Workers: a.cfg.Performance.ImportWorkers}
	if *useLLM {
		c, err := a.client()
		if err != nil {
			return err
		}
		opts.Recognizer = entities.NewLLM(c)
	}
	rep, err := analysis.New(opts, a.log).Run(ctx, *dir, m)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Idioma: %s (%.2f)\n", rep.Language.Short, rep.Language.Confidence)
	fmt.Fprintf(a.stdout, "Palavras: %d, hapax: %d, média OME: %.3f\n\n",
		rep.OME.Tokens, len(rep.Cleaned.Hapaxes), rep.Zones.MeanOME)
	if err := analysis.RenderTable(a.stdout, rep); err != nil {
		return err
	}

	if *docxOut != "" {
		if err := report.WriteDOCX(*docxOut, filepath.Base(*dir), rep, ""); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "\nDOCX: %s\n", *docxOut)
	}
	if *jsonOut != "" {
		if err := report.WriteJSON(*jsonOut, rep); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "JSON: %s\n", *jsonOut)
	}
	if *dbPath != "" {
		st, err := store.Open(*dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		id, err := st.SaveReport(ctx, rep)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Run %d saved to %s\n", id, *dbPath)
	}
	return nil
}

func (a *app) summarize(ctx context.Context, args []string) error {
	fs := a.newFlags("summarize")
	file := fs.String("file", "", "text, PDF or DOCX file to summarize")
	extractive := fs.Int("extractive", 0, "keep the N best sentences instead of calling Gemini")
	htmlOut := fs.String("html", "", "with -extractive, write the highlighted text as HTML")
	dir := fs.String("dir", "", "summarize every .txt file of this folder")
	out := fs.String("out", a.cfg.Paths.Output, "with -dir, the destination folder")
	candidates := fs.Int("candidates", 1, "number of Gemini candidates to print")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var s summarizer.Summarizer
	var full summarizer.FullSummarizer
	if *extractive > 0 {
		s = summarizer.NewExtractive(*extractive)
	} else {
		c, err := a.client()
		if err != nil {
			return err
		}
		full = summarizer.NewLLM(c, summarizer.Options{Model: a.cfg.Gemini.Model, Candidates: *candidates})
		s = full
	}

	if *dir != "" {
		return summarizer.NewBatch(s, a.log).SummarizeAll(ctx, *dir, *out)
	}
	if err := a.required(fs, "file", *file); err != nil {
		return err
	}
	text, err := corpus.ReadFile(*file)
	if err != nil {
		return err
	}

	if *extractive > 0 && *htmlOut != "" {
		sentences, best := summarizer.Rank(text, *extractive)
		page := summarizer.Highlight(filepath.Base(*file), sentences, best)
		if err := os.WriteFile(*htmlOut, []byte(page), 0644); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
	}
	if full != nil && *candidates > 1 {
		all, err := full.SummarizeFull(ctx, text)
		if err != nil {
			return err
		}
		for i, c := range all {
			fmt.Fprintf(a.stdout, "--- %d ---\n%s\n", i+1, strings.TrimSpace(c))
		}
		return nil
	}
	summary, err := s.Summarize(ctx, text)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, summary)
	return nil
}

func (a *app) translate(ctx context.Context, args []string) error {
	fs := a.newFlags("translate")
	to := fs.String("to", "pt", "target language (ISO 639-1)")
	file := fs.String("file", "", "text file to translate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.required(fs, "file", *file); err != nil {
		return err
	}
	text, err := corpus.ReadFile(*file)
	if err != nil {
		return err
	}
	c, err := a.client()
	if err != nil {
		return err
	}

	t := translator.NewLLM(c)
	if a.cfg.Redis.Addr != "" {
		rc, err := cache.NewClient(cache.Config{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err != nil {
			a.log.Warn(ctx, "translate: cache disabled: %v", err)
		} else {
			defer rc.Close()
			t = translator.NewCached(t, rc, a.cfg.Redis.CacheTTL, a.log)
		}
	}

	out, err := t.Translate(ctx, text, *to)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, out)
	return nil
}

func (a *app) speak(ctx context.Context, args []string) error {
	fs := a.newFlags("speak")
	file := fs.String("file", "", "text file to read aloud")
	save := fs.Bool("save", false, "keep a timestamped file instead of overwriting audio.wav")
	outDir := fs.String("out", a.cfg.Paths.Output, "folder for the WAV file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.required(fs, "file", *file); err != nil {
		return err
	}
	text, err := corpus.ReadFile(*file)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		return err
	}
	outPath := filepath.Join(*outDir, speech.OutputName(*save, time.Now()))

	synth := speech.NewEspeak(speech.EspeakConfig{
		BinaryPath: a.cfg.TTS.BinaryPath,
		Voice:      a.cfg.TTS.Voice,
		Player:     a.cfg.TTS.Player,
	}, executor.New(), a.log)
	if err := synth.Synthesize(ctx, text, outPath); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, outPath)
	return nil
}

func (a *app) transcribe(ctx context.Context, args []string) error {
	fs := a.newFlags("transcribe")
	audio := fs.String("audio", "", "audio file (.wav, .mp3, .m4a, .ogg, .flac)")
	model := fs.String("model", a.cfg.Whisper.ModelPath, "whisper.cpp model path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.required(fs, "audio", *audio); err != nil {
		return err
	}
	if err := a.required(fs, "model", *model); err != nil {
		return err
	}

	rec := speech.NewWhisper(speech.WhisperConfig{
		FFmpegPath: a.cfg.FFmpeg.BinaryPath,
		BinaryPath: a.cfg.Whisper.BinaryPath,
		ModelPath:  *model,
		Language:   a.cfg.Whisper.Language,
		Prompt:     a.cfg.Whisper.Prompt,
		Threads:    a.cfg.Whisper.Threads,
		TempDir:    a.cfg.Paths.Temp,
	}, executor.New(), a.log)
	text, err := rec.Recognize(ctx, *audio)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, text)
	return nil
}

func (a *app) entities(ctx context.Context, args []string) error {
	fs := a.newFlags("entities")
	file := fs.String("file", "", "text, PDF or DOCX file")
	useLLM := fs.Bool("llm", false, "use Gemini instead of the offline heuristic")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.required(fs, "file", *file); err != nil {
		return err
	}
	text, err := corpus.ReadFile(*file)
	if err != nil {
		return err
	}

	rec := entities.NewHeuristic()
	if *useLLM {
		c, err := a.client()
		if err != nil {
			return err
		}
		rec = entities.NewLLM(c)
	}
	found, err := entities.Extract(ctx, rec, text, language.Detect(text).Short)
	if err != nil {
		return err
	}
	for _, e := range found {
		fmt.Fprintf(a.stdout, "%s\t%s\n", e.Text, e.Label)
	}
	return nil
}
