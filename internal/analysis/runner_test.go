package analysis

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/textlab/internal/entities"
	"github.com/nguyentantai21042004/textlab/internal/logger"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

type fakeRecognizer struct {
	ents []entities.Entity
	err  error
}

func (f fakeRecognizer) Recognize(ctx context.Context, text, lang string) ([]entities.Entity, error) {
	return f.ents, f.err
}


func TestRunText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		mode       Mode
		wantRanked []string
		wantCounts [4]int
		wantErr    error
	}{
		{
			name:       "hapax kept",
			text:       "apple banana apple cherry apple",
			mode:       ModeHapax,
			wantRanked: []string{"cherry", "apple", "banana"},
			wantCounts: [4]int{1, 2, 2, 0},
		},
		{
			name:       "hapax dropped",
			text:       "apple banana apple cherry apple",
			mode:       ModeNoHapax,
			wantRanked: []string{"apple"},
			wantCounts: [4]int{0, 1, 0, 0},
		},
		{
			name:    "unknown mode",
			text:    "apple",
			mode:    Mode("both"),
			wantErr: apperrors.ErrInvalidInput,
		},
		{
			name:    "nothing left after cleaning",
			text:    " ... ",
			mode:    ModeHapax,
			wantErr: apperrors.ErrEmptyInput,
		},
		{
			name:    "only hapaxes without hapax mode",
			text:    "apple banana cherry",
			mode:    ModeNoHapax,
			wantErr: apperrors.ErrEmptyInput,
		},
	}

	runner := New(Options{Recognizer: fakeRecognizer{}}, logger.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := runner.RunText(context.Background(), "inline", tt.text, tt.mode)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("RunText() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("RunText() error = %v", err)
			}
			if !reflect.DeepEqual(rep.OME.Ranked, tt.wantRanked) {
				t.Errorf("Ranked = %v, want %v", rep.OME.Ranked, tt.wantRanked)
			}
			if got := rep.Counts(); got != tt.wantCounts {
				t.Errorf("Counts() = %v, want %v", got, tt.wantCounts)
			}
			if rep.Mode != tt.mode || rep.Source != "inline" {
				t.Errorf("report header = %q/%q", rep.Mode, rep.Source)
			}
		})
	}
}

func TestRunTextDisjoint(t *testing.T) {
	runner := New(Options{Recognizer: fakeRecognizer{}, Disjoint: true}, logger.Nop())
	rep, err := runner.RunText(context.Background(), "inline", "apple banana apple cherry apple", ModeHapax)
	if err != nil {
		t.Fatal(err)
	}
	if got := rep.Counts(); got != [4]int{1, 0, 2, 0} {
		t.Errorf("Counts() = %v, want [1 0 2 0]", got)
	}
}

func TestRunTextEntityFailureIsNotFatal(t *testing.T) {
	runner := New(Options{Recognizer: fakeRecognizer{err: errors.New("offline")}}, logger.Nop())
	rep, err := runner.RunText(context.Background(), "inline", "apple apple", ModeHapax)
	if err != nil {
		t.Fatalf("RunText() error = %v", err)
	}
	if rep.Entities == nil || len(rep.Entities) != 0 {
		t.Errorf("Entities = %#v, want empty", rep.Entities)
	}
}

func TestRunTextEntitiesDeduped(t *testing.T) {
	rec := fakeRecognizer{ents: []entities.Entity{{Text: "Ana", Label: "PER"}, {Text: "Ana", Label: "PER"}}}
	rep, err := New(Options{Recognizer: rec}, logger.Nop()).RunText(context.Background(), "x", "apple", ModeHapax)
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Entities) != 1 {
		t.Errorf("Entities = %v, want one", rep.Entities)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("apple banana "), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("apple cherry apple"), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := New(Options{Recognizer: fakeRecognizer{}}, logger.Nop())
	rep, err := runner.Run(context.Background(), dir, ModeHapax)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if want := []string{"cherry", "apple", "banana"}; !reflect.DeepEqual(rep.OME.Ranked, want) {
		t.Errorf("Ranked = %v, want %v", rep.OME.Ranked, want)
	}

	_, err = runner.Run(context.Background(), filepath.Join(dir, "missing"), ModeHapax)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Run(missing) error = %v, want ErrNotFound", err)
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"hap", "no_hap"} {
		if _, err := ParseMode(s); err != nil {
			t.Errorf("ParseMode(%q) error = %v", s, err)
		}
	}
	if _, err := ParseMode("HAP"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("ParseMode(HAP) error = %v", err)
	}
}

func TestRenderTable(t *testing.T) {
	runner := New(Options{Recognizer: fakeRecognizer{}}, logger.Nop())
	rep, err := runner.RunText(context.Background(), "inline", "apple banana apple cherry apple", ModeHapax)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := RenderTable(&buf, rep); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	got := strings.Fields(lines[1])
	want := strings.Fields("Núcleo Central 1 Zona Periférica 1 2 Zona Periférica 2 2 Zona Periférica 3 0")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("row = %v, want %v", got, want)
	}
	if strings.Count(lines[0], "Nº de Palavras") != 4 {
		t.Errorf("header = %q", lines[0])
	}
}
