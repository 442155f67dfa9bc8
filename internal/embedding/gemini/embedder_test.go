package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeModels struct {
	calls   []embedCall
	vectors map[string][]float32
	err     error
	// short drops the last embedding from the response
	short bool
}

type embedCall struct {
	model  string
	texts  []string
	config *genai.EmbedContentConfig
}

func (f *fakeModels) EmbedContent(_ context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	call := embedCall{model: model, config: config}
	resp := &genai.EmbedContentResponse{}
	for _, content := range contents {
		text := content.Parts[0].Text
		call.texts = append(call.texts, text)
		resp.Embeddings = append(resp.Embeddings, &genai.ContentEmbedding{Values: f.vectors[text]})
	}
	f.calls = append(f.calls, call)

	if f.err != nil {
		return nil, f.err
	}
	if f.short {
		resp.Embeddings = resp.Embeddings[:len(resp.Embeddings)-1]
	}
	return resp, nil
}

func TestBatchEmbedPreservesOrder(t *testing.T) {
	models := &fakeModels{vectors: map[string][]float32{
		"go developer": {1, 0},
		"chef":         {0, 1},
	}}
	e := newEmbedder(models, "", 0, zap.NewNop())

	vectors, err := e.BatchEmbed(context.Background(), []string{"chef", "go developer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(vectors) != 2 || vectors[0][1] != 1 || vectors[1][0] != 1 {
		t.Fatalf("unexpected vectors: %v", vectors)
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected a single call, got %d", len(models.calls))
	}

	call := models.calls[0]
	if call.model != defaultModel {
		t.Fatalf("expected default model, got %q", call.model)
	}
	if call.config.TaskType != taskType {
		t.Fatalf("unexpected task type %q", call.config.TaskType)
	}
	if call.config.OutputDimensionality != nil {
		t.Fatalf("expected model default dimensionality")
	}
}

func TestEmbedSetsDimension(t *testing.T) {
	models := &fakeModels{vectors: map[string][]float32{"query": {0.5, 0.5, 0.5}}}
	e := newEmbedder(models, "text-embedding-004", 3, zap.NewNop())

	vector, err := e.Embed(context.Background(), "query")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vector) != 3 {
		t.Fatalf("unexpected vector %v", vector)
	}

	dim := models.calls[0].config.OutputDimensionality
	if dim == nil || *dim != 3 {
		t.Fatalf("expected output dimensionality 3, got %v", dim)
	}
	if e.Model() != "text-embedding-004" || e.Provider() != ProviderName {
		t.Fatalf("unexpected description %s/%s", e.Provider(), e.Model())
	}
}

func TestBatchEmbedErrors(t *testing.T) {
	apiErr := errors.New("quota exceeded")
	e := newEmbedder(&fakeModels{err: apiErr}, "", 0, zap.NewNop())

	if _, err := e.Embed(context.Background(), "x"); !errors.Is(err, apiErr) {
		t.Fatalf("expected wrapped api error, got %v", err)
	}

	if _, err := e.BatchEmbed(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty input")
	}

	tooMany := make([]string, maxBatchSize+1)
	if _, err := e.BatchEmbed(context.Background(), tooMany); err == nil {
		t.Fatal("expected error for oversized batch")
	}

	short := newEmbedder(&fakeModels{short: true, vectors: map[string][]float32{"a": {1}, "b": {1}}}, "", 0, nil)
	_, err := short.BatchEmbed(context.Background(), []string{"a", "b"})
	if err == nil || !strings.Contains(err.Error(), "1 embeddings for 2 texts") {
		t.Fatalf("expected count mismatch error, got %v", err)
	}

	empty := newEmbedder(&fakeModels{vectors: map[string][]float32{}}, "", 0, nil)
	if _, err := empty.Embed(context.Background(), "unknown"); err == nil {
		t.Fatal("expected error for empty embedding")
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(context.Background(), "  ", "", 0, nil); err == nil {
		t.Fatal("expected error without api key")
	}
}
