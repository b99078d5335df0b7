package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

const fileName = "index.json"

type snapshot struct {
	Version   int        `json:"version"`
	Documents []Document `json:"documents"`
}

// Save writes the index to <dir>/index.json, creating dir if needed.
func (ix *Index) Save(dir string) error {
	ix.mu.RLock()
	snap := snapshot{Version: 1, Documents: ix.docs}
	data, err := json.Marshal(snap)
	ix.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	tmp := filepath.Join(dir, fileName+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(dir, fileName)); err != nil {
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}

// Load reads an index saved by Save. Queries and additions use e.
func Load(dir string, e Embedder, opts ...Option) (*Index, error) {
	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("index in %s: %w", dir, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode index: %w: %v", apperrors.ErrTypeMismatch, err)
	}
	ix := New(e, opts...)
	ix.docs = snap.Documents
	return ix, nil
}
