package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/textlab/internal/logger"
)

func TestWatcherDispatchesFilteredFiles(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var got []string
	done := make(chan struct{}, 4)
	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		got = append(got, filepath.Base(path))
		mu.Unlock()
		done <- struct{}{}
		return nil
	}
	w, err := New(dir, handler, logger.Nop(), Options{
		Settle: 10 * time.Millisecond,
		Filter: func(p string) bool { return strings.HasSuffix(p, ".txt") },
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	// give the watcher loop a moment to start receiving
	time.Sleep(50 * time.Millisecond)
	for _, name := range []string{"skip.csv", ".hidden.txt", "corpus.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}
	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() = %v, want context.Canceled", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "corpus.txt" {
		t.Errorf("handled = %v, want [corpus.txt]", got)
	}
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope"), nil, logger.Nop(), Options{}); err == nil {
		t.Fatal("New() should fail for a missing folder")
	}
}
