package openai

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/spigell/job-match/internal/embedding"
)

const (
	ProviderName = "openai"
	defaultModel = "text-embedding-3-small"
	maxBatchSize = 100
)

// ErrAPIKeyNotSet is returned when no OpenAI key is configured.
var ErrAPIKeyNotSet = errors.New("openai api key is required")

type embeddingsAPI interface {
	New(ctx context.Context, body openai.EmbeddingNewParams, opts ...option.RequestOption) (*openai.CreateEmbeddingResponse, error)
}

// Embedder uses the OpenAI embeddings API.
type Embedder struct {
	api       embeddingsAPI
	model     string
	dimension int
	logger    *zap.Logger
}

var _ embedding.BatchEmbedder = (*Embedder)(nil)

func New(apiKey, model string, dimension int, logger *zap.Logger, opts ...option.RequestOption) (*Embedder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrAPIKeyNotSet
	}

	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)

	return newEmbedder(&client.Embeddings, model, dimension, logger), nil
}

func newEmbedder(api embeddingsAPI, model string, dimension int, logger *zap.Logger) *Embedder {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Embedder{api: api, model: model, dimension: dimension, logger: logger}
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.BatchEmbed(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	return vectors[0], nil
}

// BatchEmbed embeds up to 100 texts in one request.
func (e *Embedder) BatchEmbed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, errors.New("no texts provided")
	}
	if len(texts) > maxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds maximum of %d", len(texts), maxBatchSize)
	}

	params := openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
	}

	if len(texts) == 1 {
		params.Input = openai.EmbeddingNewParamsInputUnion{OfString: openai.String(texts[0])}
	} else {
		params.Input = openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts}
	}

	if e.dimension > 0 {
		params.Dimensions = openai.Int(int64(e.dimension))
	}

	e.logger.Debug("openai embeddings request", zap.Int("texts", len(texts)))

	resp, err := e.api.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("generate embeddings: %w", err)
	}

	if resp == nil || len(resp.Data) != len(texts) {
		got := 0
		if resp != nil {
			got = len(resp.Data)
		}
		return nil, fmt.Errorf("openai api returned %d embeddings for %d texts", got, len(texts))
	}

	data := resp.Data
	sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	vectors := make([][]float32, len(data))
	for i, item := range data {
		if len(item.Embedding) == 0 {
			return nil, fmt.Errorf("openai api returned empty embedding at index %d", i)
		}
		vector := make([]float32, len(item.Embedding))
		for j, v := range item.Embedding {
			vector[j] = float32(v)
		}
		vectors[i] = vector
	}

	return vectors, nil
}

func (e *Embedder) MaxBatchSize() int { return maxBatchSize }

func (e *Embedder) Provider() string { return ProviderName }

func (e *Embedder) Model() string { return e.model }
