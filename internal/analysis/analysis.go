// Package analysis provides the text analysis backend: tokenization, sentence
// segmentation, noun chunk extraction and embedding-based similarity.
package analysis

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Embedder produces vector embeddings for texts. Implementations are expected
// to handle multiple texts in a single call.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float64, error)
	Model() string
}

// Backend bundles the local linguistic pipeline with a vector embedder. It is
// constructed once per process and is safe for concurrent use: the pipeline is
// stateless and the embedding cache is guarded by a lock.
type Backend struct {
	embedder Embedder
	logger   *zap.Logger

	cacheMu sync.RWMutex
	vectors map[string][]float64
}

// New creates a backend around the provided embedder.
func New(embedder Embedder, logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Backend{
		embedder: embedder,
		logger:   logger,
		vectors:  make(map[string][]float64),
	}
}

// Tokenize exposes the local tokenizer as part of the backend capability set.
func (b *Backend) Tokenize(text string) []string { return Tokenize(text) }

// Sentences exposes local sentence segmentation.
func (b *Backend) Sentences(text string) []string { return Sentences(text) }

// NounChunks exposes local noun chunk extraction.
func (b *Backend) NounChunks(text string) []string { return NounChunks(text) }

// Model reports the embedding model identifier of the underlying embedder.
func (b *Backend) Model() string {
	if b.embedder == nil {
		return ""
	}
	return b.embedder.Model()
}

// Similarity embeds both texts and returns their cosine similarity. Blank
// input on either side yields 0 without calling the embedder.
func (b *Backend) Similarity(ctx context.Context, a, c string) (float64, error) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(c) == "" {
		return 0, nil
	}

	vectors, err := b.EmbedTexts(ctx, []string{a, c})
	if err != nil {
		return 0, err
	}

	return Cosine(vectors[0], vectors[1]), nil
}

// EmbedTexts returns one vector per input text, reusing cached vectors and
// embedding all cache misses in a single backend call.
func (b *Backend) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	if b.embedder == nil {
		return nil, fmt.Errorf("no embedder configured")
	}

	vectors := make([][]float64, len(texts))

	misses := make([]string, 0, len(texts))
	seen := make(map[string]struct{}, len(texts))

	b.cacheMu.RLock()
	for _, text := range texts {
		if _, ok := b.vectors[text]; ok {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		misses = append(misses, text)
	}
	b.cacheMu.RUnlock()

	if len(misses) > 0 {
		embedded, err := b.embedder.EmbedTexts(ctx, misses)
		if err != nil {
			return nil, fmt.Errorf("embed %d texts: %w", len(misses), err)
		}
		if len(embedded) != len(misses) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(embedded), len(misses))
		}

		b.cacheMu.Lock()
		for i, text := range misses {
			b.vectors[text] = embedded[i]
		}
		b.cacheMu.Unlock()

		b.logger.Debug("embedded texts",
			zap.Int("requested", len(texts)),
			zap.Int("cache_misses", len(misses)),
		)
	}

	b.cacheMu.RLock()
	defer b.cacheMu.RUnlock()
	for i, text := range texts {
		vectors[i] = b.vectors[text]
	}

	return vectors, nil
}

// Cosine returns the cosine similarity of two vectors. Mismatched or zero
// vectors yield 0.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
