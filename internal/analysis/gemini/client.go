// Package gemini implements the embedding backend on top of the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/cv-ranker/internal/utils"
)

const (
	defaultModel   = "gemini-embedding-001"
	defaultRetries = 2
	retryBaseDelay = 500 * time.Millisecond
	maxLogLength   = 120
)

// wait is swapped out in tests to avoid real backoff delays.
var wait = utils.WaitFor

// embedCaller is the seam over the genai SDK used for testing.
type embedCaller interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

type genaiModels struct {
	models *genai.Models
}

func (g genaiModels) EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	return g.models.EmbedContent(ctx, model, contents, config)
}

// Embedder wraps the Google GenAI client to provide batched text embeddings.
type Embedder struct {
	models     embedCaller
	modelName  string
	maxRetries int
	logger     *zap.Logger
}

// NewEmbedder creates an Embedder configured for the Gemini API backend.
func NewEmbedder(ctx context.Context, apiKey, model string, maxRetries int, logger *zap.Logger) (*Embedder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if maxRetries <= 0 {
		maxRetries = defaultRetries
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Embedder{
		models:     genaiModels{models: client.Models},
		modelName:  model,
		maxRetries: maxRetries,
		logger:     logger,
	}, nil
}

// EmbedTexts sends all texts to the Gemini API in one request and returns one
// vector per text. Failed requests are retried with a growing delay.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	if e == nil || e.models == nil {
		return nil, errors.New("gemini embedder is not initialized")
	}

	if len(texts) == 0 {
		return nil, errors.New("texts must not be empty")
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = &genai.Content{
			Role: genai.RoleUser,
			Parts: []*genai.Part{{
				Text: text,
			}},
		}
	}

	e.logger.Debug("sending embed content request",
		zap.Int("texts", len(texts)),
		zap.String("first_text", utils.TruncateForLog(texts[0], maxLogLength)),
	)

	var resp *genai.EmbedContentResponse
	var err error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			e.logger.Debug("retrying embed content request",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			if waitErr := wait(ctx, time.Duration(attempt)*retryBaseDelay); waitErr != nil {
				return nil, waitErr
			}
		}

		resp, err = e.models.EmbedContent(ctx, e.modelName, contents, nil)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini api returned %d embeddings for %d texts", len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float64, len(resp.Embeddings))
	for i, embedding := range resp.Embeddings {
		if embedding == nil || len(embedding.Values) == 0 {
			return nil, fmt.Errorf("gemini api returned an empty embedding at index %d", i)
		}

		vector := make([]float64, len(embedding.Values))
		for j, value := range embedding.Values {
			vector[j] = float64(value)
		}
		vectors[i] = vector
	}

	return vectors, nil
}

// Model reports the configured embedding model identifier.
func (e *Embedder) Model() string {
	if e == nil {
		return ""
	}
	return e.modelName
}
