package translator

import (
	"time"

	"github.com/nguyentantai21042004/textlab/internal/logger"
	"golang.org/x/sync/singleflight"
)

type implLLM struct {
	gen Generator
}

// NewLLM creates a Translator that prompts the LM.
func NewLLM(gen Generator) Translator {
	return &implLLM{gen: gen}
}

type implCached struct {
	inner Translator
	store Store
	ttl   time.Duration
	l     logger.Logger
	group singleflight.Group
}

// NewCached memoizes inner's translations in store for ttl.
func NewCached(inner Translator, store Store, ttl time.Duration, l logger.Logger) Translator {
	return &implCached{
		inner: inner,
		store: store,
		ttl:   ttl,
		l:     l,
	}
}
