package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/nguyentantai21042004/textlab/internal/logger"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
	"google.golang.org/genai"
)

// fakeGemini answers generateContent calls, rejecting the keys in limited
// with a RESOURCE_EXHAUSTED error.
func fakeGemini(t *testing.T, limited map[string]bool, reply string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if limited[r.Header.Get("x-goog-api-key")] {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`)
			return
		}
		fmt.Fprintf(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":%q}]}}]}`, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestNewRequiresKeys(t *testing.T) {
	_, err := New(Config{}, logger.Nop())
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("New() error = %v, want ErrInvalidInput", err)
	}
}

func TestGenerateRotatesKeys(t *testing.T) {
	srv, calls := fakeGemini(t, map[string]bool{"k1": true}, "resumo")
	c, err := New(Config{APIKeys: []string{"k1", "k2"}, BaseURL: srv.URL}, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}

	out, err := c.Generate(context.Background(), "texto", GenerateOptions{MaxTokens: 16})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(out) != 1 || out[0] != "resumo" {
		t.Errorf("Generate() = %v, want [resumo]", out)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("server calls = %d, want 2", n)
	}

	// The working key is remembered.
	if _, err := c.Generate(context.Background(), "texto", GenerateOptions{}); err != nil {
		t.Fatal(err)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("server calls = %d, want 3", n)
	}
}

func TestGenerateAllKeysExhausted(t *testing.T) {
	srv, _ := fakeGemini(t, map[string]bool{"k1": true, "k2": true}, "")
	c, err := New(Config{APIKeys: []string{"k1", "k2"}, BaseURL: srv.URL}, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Generate(context.Background(), "texto", GenerateOptions{})
	if !errors.Is(err, apperrors.ErrRateLimited) {
		t.Errorf("Generate() error = %v, want ErrRateLimited", err)
	}
}

func TestAnswer(t *testing.T) {
	srv, _ := fakeGemini(t, nil, "  Lisboa \n")
	c, err := New(Config{APIKeys: []string{"k"}, BaseURL: srv.URL}, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.Answer(context.Background(), "Capital?", []string{"Lisboa é a capital."})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if got != "Lisboa" {
		t.Errorf("Answer() = %q, want Lisboa", got)
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"api error 429", genai.APIError{Code: 429}, true},
		{"wrapped api error", fmt.Errorf("call: %w", genai.APIError{Code: 429}), true},
		{"quota message", errors.New("quota exceeded for project"), true},
		{"resource exhausted", errors.New("RESOURCE_EXHAUSTED"), true},
		{"server error", genai.APIError{Code: 500, Message: "internal"}, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRateLimited(tt.err); got != tt.want {
				t.Errorf("isRateLimited() = %v, want %v", got, tt.want)
			}
		})
	}
}
