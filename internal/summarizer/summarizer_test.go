package summarizer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/textlab/internal/llm"
	"github.com/nguyentantai21042004/textlab/internal/logger"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

type fakeClient struct {
	prompt string
	opts   llm.GenerateOptions
	reply  []string
	err    error
}

func (f *fakeClient) Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) ([]string, error) {
	f.prompt = prompt
	f.opts = opts
	return f.reply, f.err
}

func (f *fakeClient) Embed(ctx context.Context, texts []string) ([][]float32, error) { return nil, nil }

func (f *fakeClient) Answer(ctx context.Context, q string, p []string) (string, error) { return "", nil }

func TestLLMSummarizeDefaults(t *testing.T) {
	c := &fakeClient{reply: []string{"  resumo curto \n", "outro"}}
	s := NewLLM(c, Options{})

	got, err := s.Summarize(context.Background(), "texto longo")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "resumo curto" {
		t.Errorf("Summarize() = %q", got)
	}
	if c.prompt != DefaultPrefix+"texto longo"+DefaultSuffix {
		t.Errorf("prompt = %q", c.prompt)
	}
	if c.opts.MaxTokens != DefaultMaxTokens || c.opts.Candidates != 1 {
		t.Errorf("opts = %+v", c.opts)
	}
	if c.opts.Temperature == nil || *c.opts.Temperature != float32(DefaultTemperature) {
		t.Errorf("temperature = %v", c.opts.Temperature)
	}
}

func TestLLMSummarizeFull(t *testing.T) {
	c := &fakeClient{reply: []string{"um", "dois"}}
	temp := float32(0.9)
	s := NewLLM(c, Options{Prefix: "P:", Suffix: ":S", Candidates: 2, Temperature: &temp})

	all, err := s.SummarizeFull(context.Background(), "x")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(all, []string{"um", "dois"}) {
		t.Errorf("SummarizeFull() = %v", all)
	}
	if c.prompt != "P:x:S" || c.opts.Candidates != 2 || *c.opts.Temperature != 0.9 {
		t.Errorf("prompt = %q, opts = %+v", c.prompt, c.opts)
	}
}

func TestLLMSummarizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
		text   string
		want   error
	}{
		{"blank text", &fakeClient{}, "   ", apperrors.ErrEmptyInput},
		{"no candidates", &fakeClient{}, "texto", apperrors.ErrUnavailable},
		{"client error", &fakeClient{err: apperrors.ErrRateLimited}, "texto", apperrors.ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLLM(tt.client, Options{}).Summarize(context.Background(), tt.text)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

const catText = "Gatos gostam de peixe. Gatos gostam de leite. Amanhã vai chover muito."

func TestRank(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"none requested", 0, []string{}},
		{"negative count", -1, []string{}},
		{"single best", 1, []string{"Gatos gostam de peixe."}},
		{"two best in text order", 2, []string{"Gatos gostam de peixe.", "Gatos gostam de leite."}},
		{"n beyond sentence count", 5, []string{"Gatos gostam de peixe.", "Gatos gostam de leite.", "Amanhã vai chover muito."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sentences, best := Rank(catText, tt.n)
			if len(sentences) != 3 {
				t.Fatalf("sentences = %v", sentences)
			}
			if !reflect.DeepEqual(best, tt.want) {
				t.Errorf("best = %v, want %v", best, tt.want)
			}
		})
	}
}

func TestExtractiveSummarize(t *testing.T) {
	got, err := NewExtractive(1).Summarize(context.Background(), catText)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Gatos gostam de peixe." {
		t.Errorf("Summarize() = %q", got)
	}
	if _, err := NewExtractive(1).Summarize(context.Background(), " "); !errors.Is(err, apperrors.ErrEmptyInput) {
		t.Errorf("blank text: err = %v", err)
	}
}

func TestHighlight(t *testing.T) {
	got := Highlight("A & B", []string{"Um.", "Dois <b>."}, []string{"Dois <b>."})
	want := "<h1>Resumo do texto - A &amp; B</h1>\n<p>Um. <mark>Dois &lt;b&gt;.</mark></p>\n"
	if got != want {
		t.Errorf("Highlight() =\n%q\nwant\n%q", got, want)
	}
}

type upperSummarizer struct{}

func (upperSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if strings.Contains(text, "falha") {
		return "", errors.New("boom")
	}
	return strings.ToUpper(text), nil
}

func TestSummarizeAll(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "out")
	files := map[string]string{
		"a.txt":     "primeiro texto",
		"b.txt":     "falha aqui",
		"c.txt":     "já resumido",
		"notas.csv": "ignorado",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(src, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dest, "c.md"), []byte("antigo"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := NewBatch(upperSummarizer{}, logger.Nop()).SummarizeAll(context.Background(), src, dest); err != nil {
		t.Fatalf("SummarizeAll() error = %v", err)
	}

	md, err := os.ReadFile(filepath.Join(dest, "a.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(md), "# a\n") || !strings.Contains(string(md), "PRIMEIRO TEXTO") {
		t.Errorf("a.md = %q", md)
	}
	if _, err := os.Stat(filepath.Join(dest, "a.docx")); err != nil {
		t.Errorf("a.docx: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "b.md")); err == nil {
		t.Error("failed summary should not be written")
	}
	old, _ := os.ReadFile(filepath.Join(dest, "c.md"))
	if string(old) != "antigo" {
		t.Error("existing summary was overwritten")
	}
}

func TestSummarizeAllMissingDir(t *testing.T) {
	err := NewBatch(upperSummarizer{}, logger.Nop()).SummarizeAll(context.Background(), filepath.Join(t.TempDir(), "nope"), t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing source folder")
	}
}
