package summarizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nguyentantai21042004/textlab/internal/report"
)

// SummarizeAll reads every .txt file in srcDir, summarizes it and writes
// <name>.md and <name>.docx into destDir. Files that already have a
// markdown summary are skipped. Per-file failures are logged and counted.
func (b *implBatch) SummarizeAll(ctx context.Context, srcDir, destDir string) error {
	files, err := b.discoverTextFiles(srcDir)
	if err != nil {
		return fmt.Errorf("discover text files: %w", err)
	}

	if len(files) == 0 {
		b.logger.Info(ctx, "No text files found in %s", srcDir)
		return nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	b.logger.Info(ctx, "Found %d text files to summarize", len(files))

	successCount := 0
	failCount := 0
	skipCount := 0

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		mdPath := filepath.Join(destDir, name+".md")
		if _, err := os.Stat(mdPath); err == nil {
			b.logger.Debug(ctx, "Skipping %s, summary exists", name)
			skipCount++
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			b.logger.Warn(ctx, "Failed to stat %s: %v", mdPath, err)
		}

		b.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(files), name)

		content, err := os.ReadFile(path)
		if err != nil {
			b.logger.Error(ctx, "Failed to read %s: %v", path, err)
			failCount++
			continue
		}

		summary, err := b.summarizer.Summarize(ctx, string(content))
		if err != nil {
			b.logger.Error(ctx, "Failed to summarize %s: %v", name, err)
			failCount++
			continue
		}

		md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
			name,
			time.Now().Format("2006-01-02 15:04"),
			strings.TrimSpace(summary),
		)

		if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
			b.logger.Error(ctx, "Failed to write %s: %v", mdPath, err)
			failCount++
			continue
		}

		docxPath := filepath.Join(destDir, name+".docx")
		if err := report.MarkdownToDOCX(name, md, docxPath); err != nil {
			b.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
		}

		b.logger.Info(ctx, "[DONE] %s -> %s", name, mdPath)
		successCount++
	}

	b.logger.Info(ctx, "Summary complete: %d success, %d skipped, %d failed", successCount, skipCount, failCount)
	return nil
}

func (b *implBatch) discoverTextFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) == ".txt" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
