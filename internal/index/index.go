// Package index is a small in-memory vector index over corpus documents,
// persisted as a single JSON file.
package index

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"sync"

	"github.com/nguyentantai21042004/textlab/internal/corpus"
	"github.com/nguyentantai21042004/textlab/internal/metrics"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

// Embedder turns texts into vectors, one per text, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Answerer produces an answer to question from retrieved passages.
type Answerer interface {
	Answer(ctx context.Context, question string, passages []string) (string, error)
}

type Document struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	Vector []float32 `json:"vector"`
}

// Hit is a query match with its cosine similarity.
type Hit struct {
	Document
	Score float64 `json:"score"`
}

type Index struct {
	mu       sync.RWMutex
	embedder Embedder
	docs     []Document
	metrics  *metrics.Metrics
}

// Option configures an Index.
type Option func(*Index)

// WithMetrics counts added documents on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(ix *Index) { ix.metrics = m }
}

func New(e Embedder, opts ...Option) *Index {
	ix := &Index{embedder: e}
	for _, o := range opts {
		o(ix)
	}
	return ix
}

// FromFolder builds an index from every supported file in dir.
func FromFolder(ctx context.Context, dir string, e Embedder, opts ...Option) (*Index, error) {
	files, err := corpus.LoadDocuments(ctx, dir, 4)
	if err != nil {
		return nil, err
	}
	ix := New(e, opts...)
	docs := make([]Document, 0, len(files))
	for _, f := range files {
		docs = append(docs, Document{ID: f.Name, Text: f.Text})
	}
	if err := ix.Add(ctx, docs...); err != nil {
		return nil, err
	}
	return ix, nil
}

func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// Add embeds documents that carry no vector yet and appends them. A
// document whose ID is already indexed replaces the old entry.
func (ix *Index) Add(ctx context.Context, docs ...Document) error {
	if len(docs) == 0 {
		return nil
	}
	var texts []string
	var pending []int
	for i, d := range docs {
		if d.ID == "" {
			return fmt.Errorf("document %d has no id: %w", i, apperrors.ErrInvalidInput)
		}
		if len(d.Vector) == 0 {
			texts = append(texts, d.Text)
			pending = append(pending, i)
		}
	}
	if len(texts) > 0 {
		vecs, err := ix.embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed documents: %w", err)
		}
		if len(vecs) != len(texts) {
			return fmt.Errorf("embedder returned %d vectors for %d texts: %w", len(vecs), len(texts), apperrors.ErrShapeMismatch)
		}
		for j, i := range pending {
			docs[i].Vector = vecs[j]
		}
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	pos := make(map[string]int, len(ix.docs))
	for i, d := range ix.docs {
		pos[d.ID] = i
	}
	for _, d := range docs {
		if i, ok := pos[d.ID]; ok {
			ix.docs[i] = d
			continue
		}
		pos[d.ID] = len(ix.docs)
		ix.docs = append(ix.docs, d)
	}
	ix.metrics.AddIndexed(len(docs))
	return nil
}

// AddFile reads one .txt/.pdf/.docx file and indexes it under its base name.
func (ix *Index) AddFile(ctx context.Context, path string) error {
	text, err := corpus.ReadFile(path)
	if err != nil {
		return err
	}
	return ix.Add(ctx, Document{ID: filepath.Base(path), Text: text})
}

// Query returns the k documents most similar to question, best first.
// Equal scores keep insertion order.
func (ix *Index) Query(ctx context.Context, question string, k int) ([]Hit, error) {
	ix.mu.RLock()
	docs := append([]Document(nil), ix.docs...)
	ix.mu.RUnlock()
	if len(docs) == 0 {
		return nil, fmt.Errorf("query index: %w", apperrors.ErrEmptyInput)
	}
	if k <= 0 {
		k = 1
	}

	vecs, err := ix.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for the question: %w", len(vecs), apperrors.ErrShapeMismatch)
	}

	hits := make([]Hit, len(docs))
	for i, d := range docs {
		hits[i] = Hit{Document: d, Score: cosine(vecs[0], d.Vector)}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].Score > hits[b].Score })
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Respond answers question from the top k passages.
func (ix *Index) Respond(ctx context.Context, a Answerer, question string, k int) (string, error) {
	hits, err := ix.Query(ctx, question, k)
	if err != nil {
		return "", err
	}
	passages := make([]string, len(hits))
	for i, h := range hits {
		passages[i] = h.Text
	}
	return a.Answer(ctx, question, passages)
}

// cosine returns 0 when either vector is zero or the lengths differ.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
