// Package corpus loads the documents an analysis runs over: plain text,
// PDF and DOCX files from a folder.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

// Document is one file of a corpus.
type Document struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Text string `json:"text"`
}

// SupportedExt reports whether path has an extension ReadFile understands.
func SupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".pdf", ".docx":
		return true
	}
	return false
}

// ImportFolder concatenates the text of every supported file in dir, in
// lexical file-name order, with no separator between files.
func ImportFolder(ctx context.Context, dir string) (string, error) {
	return ImportFolderWithWorkers(ctx, dir, defaultWorkers)
}

// ImportFolderWithWorkers is ImportFolder with a bound on concurrent reads.
func ImportFolderWithWorkers(ctx context.Context, dir string, workers int) (string, error) {
	docs, err := LoadDocuments(ctx, dir, workers)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, d := range docs {
		b.WriteString(d.Text)
	}
	return b.String(), nil
}

// LoadDocuments reads every supported file in dir (non-recursive) using at
// most workers goroutines. The result is sorted by file name.
func LoadDocuments(ctx context.Context, dir string, workers int) ([]Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("folder %s: %w", dir, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("stat folder %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a folder: %w", dir, apperrors.ErrInvalidInput)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !SupportedExt(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	if workers <= 0 {
		workers = defaultWorkers
	}
	docs := make([]Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := ReadFile(p)
			if err != nil {
				return err
			}
			docs[i] = Document{Name: filepath.Base(p), Path: p, Text: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// ReadFile extracts the text of a single .txt, .pdf or .docx file. Plain
// text is returned verbatim.
func ReadFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt":
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(raw), nil
	case ".docx":
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		text, err := parseDOCX(raw)
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
		return normalizeWhitespace(text), nil
	case ".pdf":
		text, err := parsePDF(path)
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
		return normalizeWhitespace(text), nil
	default:
		return "", fmt.Errorf("unsupported file type %q: %w", ext, apperrors.ErrInvalidInput)
	}
}

func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
