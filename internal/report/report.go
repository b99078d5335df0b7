// Package report renders analysis results as markdown, docx and JSON files.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/textlab/internal/analysis"
	"github.com/nguyentantai21042004/textlab/internal/prototype"
)

// Markdown renders r (and an optional summary) as markdown under a level-1
// title heading.
func Markdown(title string, r *analysis.Report, summary string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Fonte:** %s\n", r.Source)
	fmt.Fprintf(&b, "**Modo:** %s\n", r.Mode)
	if r.Language.Code != "" {
		fmt.Fprintf(&b, "**Idioma:** %s (%s, %.2f)\n", r.Language.Short, r.Language.Code, r.Language.Confidence)
	}
	fmt.Fprintf(&b, "**Palavras:** %d  **Distintas:** %d  **OME média:** %.2f\n",
		r.OME.Tokens, len(r.OME.Ranked), r.Zones.MeanOME)
	if !r.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "_%s_\n", r.CreatedAt.Format("2006-01-02 15:04"))
	}

	zones := []struct {
		name    string
		entries []prototype.Entry
	}{
		{"Núcleo Central", r.Zones.Core},
		{"Zona Periférica 1", r.Zones.Zone1},
		{"Zona Periférica 2", r.Zones.Zone2},
		{"Zona Periférica 3", r.Zones.Zone3},
	}
	for _, z := range zones {
		fmt.Fprintf(&b, "\n## %s (%d)\n\n", z.name, len(z.entries))
		for _, e := range z.entries {
			fmt.Fprintf(&b, "- %s (%.3f)\n", e.Word, e.Normalized)
		}
	}

	if len(r.Entities) > 0 {
		b.WriteString("\n## Entidades\n\n")
		for _, e := range r.Entities {
			fmt.Fprintf(&b, "- %s (%s)\n", e.Text, e.Label)
		}
	}

	if s := strings.TrimSpace(summary); s != "" {
		b.WriteString("\n## Resumo\n\n")
		b.WriteString(s)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteDOCX writes the markdown rendering of r to a docx file at path.
func WriteDOCX(path, title string, r *analysis.Report, summary string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := MarkdownToDOCX(title, Markdown(title, r, summary), path); err != nil {
		return fmt.Errorf("write docx %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes r as indented JSON to path.
func WriteJSON(path string, r *analysis.Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write json %s: %w", path, err)
	}
	return nil
}
