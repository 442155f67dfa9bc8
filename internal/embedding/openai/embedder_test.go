package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

type stubEmbeddings struct {
	last openai.EmbeddingNewParams
	resp *openai.CreateEmbeddingResponse
	err  error
}

func (s *stubEmbeddings) New(_ context.Context, body openai.EmbeddingNewParams, _ ...option.RequestOption) (*openai.CreateEmbeddingResponse, error) {
	s.last = body
	return s.resp, s.err
}

func TestBatchEmbedOrdersByIndex(t *testing.T) {
	stub := &stubEmbeddings{resp: &openai.CreateEmbeddingResponse{Data: []openai.Embedding{
		{Index: 1, Embedding: []float64{0, 1}},
		{Index: 0, Embedding: []float64{1, 0}},
	}}}
	e := newEmbedder(stub, "", 256, zap.NewNop())

	vectors, err := e.BatchEmbed(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if vectors[0][0] != 1 || vectors[1][1] != 1 {
		t.Fatalf("vectors not aligned with input: %v", vectors)
	}

	if len(stub.last.Input.OfArrayOfStrings) != 2 {
		t.Fatalf("expected array input, got %+v", stub.last.Input)
	}
	if string(stub.last.Model) != defaultModel {
		t.Fatalf("unexpected model %q", stub.last.Model)
	}
	if stub.last.Dimensions.Value != 256 {
		t.Fatalf("expected dimensions to be set, got %v", stub.last.Dimensions.Value)
	}
}

func TestEmbedSingleText(t *testing.T) {
	stub := &stubEmbeddings{resp: &openai.CreateEmbeddingResponse{Data: []openai.Embedding{
		{Index: 0, Embedding: []float64{0.25, 0.75}},
	}}}
	e := newEmbedder(stub, "text-embedding-3-large", 0, nil)

	vector, err := e.Embed(context.Background(), "backend engineer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(vector) != 2 || vector[1] != 0.75 {
		t.Fatalf("unexpected vector %v", vector)
	}
	if stub.last.Input.OfString.Value != "backend engineer" {
		t.Fatalf("expected string input, got %+v", stub.last.Input)
	}
	if e.Model() != "text-embedding-3-large" {
		t.Fatalf("unexpected model %q", e.Model())
	}
}

func TestBatchEmbedErrors(t *testing.T) {
	apiErr := errors.New("rate limited")
	e := newEmbedder(&stubEmbeddings{err: apiErr}, "", 0, nil)
	if _, err := e.Embed(context.Background(), "x"); !errors.Is(err, apiErr) {
		t.Fatalf("expected wrapped error, got %v", err)
	}

	e = newEmbedder(&stubEmbeddings{resp: &openai.CreateEmbeddingResponse{}}, "", 0, nil)
	if _, err := e.Embed(context.Background(), "x"); err == nil {
		t.Fatal("expected error for missing data")
	}

	if _, err := New("", "", 0, nil); !errors.Is(err, ErrAPIKeyNotSet) {
		t.Fatalf("expected ErrAPIKeyNotSet, got %v", err)
	}
}
