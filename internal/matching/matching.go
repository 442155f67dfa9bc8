// Package matching ranks job listings against a search query by embedding similarity.
package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-match/internal/embedding"
	"github.com/spigell/job-match/internal/jsearch"
	"github.com/spigell/job-match/internal/util"
)

const (
	DefaultLimit     = 10
	DefaultBatchSize = 100

	defaultMaxLogLength = 120
)

// JobSearcher fetches one page of listings for a query.
type JobSearcher interface {
	Search(ctx context.Context, query string) (*jsearch.Jobs, error)
}

type Options struct {
	// Limit caps the number of returned matches.
	Limit int
	// BatchSize caps texts per embedding call for batch-capable providers.
	BatchSize    int
	MaxLogLength int
}

// Service is stateless and safe for concurrent use.
type Service struct {
	searcher  JobSearcher
	embedder  embedding.Embedder
	logger    *zap.Logger
	limit     int
	batchSize int
	maxLogLen int
}

func New(searcher JobSearcher, embedder embedding.Embedder, logger *zap.Logger, opts Options) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.MaxLogLength <= 0 {
		opts.MaxLogLength = defaultMaxLogLength
	}

	return &Service{
		searcher:  searcher,
		embedder:  embedder,
		logger:    logger,
		limit:     opts.Limit,
		batchSize: opts.BatchSize,
		maxLogLen: opts.MaxLogLength,
	}
}

// SearchJobs fetches listings for the request and returns the best matches.
func (s *Service) SearchJobs(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if req == nil {
		return nil, errors.New("search request is required")
	}

	query := req.EffectiveQuery()
	logger := s.logger.With(zap.String("query", util.TruncateForLog(query, s.maxLogLen)))

	jobs, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	logger.Debug("got listings from provider", zap.Int("count", jobs.Len()))

	if jobs.Len() == 0 {
		logger.Info("no listings found")
		return emptyResponse(), nil
	}

	queryVector, err := s.embedQuery(ctx, query)
	if err != nil {
		return nil, &ScoringError{Err: fmt.Errorf("embed query: %w", err)}
	}

	step := dropUndescribed(jobs, logger)
	logger.Debug("pipeline step", step.fields()...)

	if jobs.Len() == 0 {
		return emptyResponse(), nil
	}

	descriptions := make([]string, 0, jobs.Len())
	for _, job := range jobs.Items {
		descriptions = append(descriptions, job.GetDescription())
	}

	vectors, err := s.embedAll(ctx, descriptions)
	if err != nil {
		return nil, &ScoringError{Err: err}
	}

	matches := make([]Match, 0, jobs.Len())
	for i, job := range jobs.Items {
		var similarity float64
		if queryVector != nil {
			similarity, err = embedding.Cosine(queryVector, vectors[i])
			if err != nil {
				return nil, &ScoringError{Err: fmt.Errorf("listing %q: %w", job.GetTitle(), err)}
			}
		}

		matches = append(matches, Match{
			Title:      job.Title,
			Company:    job.EmployerName,
			Location:   job.City,
			URL:        job.ApplyLink,
			MatchScore: Score(similarity),
		})
	}

	scored := len(matches)
	matches = rank(matches, s.limit)

	logger.Info("ranked listings",
		zap.Int("scored", scored),
		zap.Int("returned", len(matches)),
	)

	return &SearchResponse{Matches: matches}, nil
}

// embedQuery returns nil for a blank query. Hosted providers reject empty
// input, and a blank query is treated as a zero vector that matches nothing.
func (s *Service) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	return s.embedder.Embed(ctx, query)
}

// embedAll returns one vector per text, index-aligned with texts. Providers that
// support batching are called in chunks.
func (s *Service) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	batcher, ok := s.embedder.(embedding.BatchEmbedder)
	if !ok {
		for i, text := range texts {
			vector, err := s.embedder.Embed(ctx, text)
			if err != nil {
				return nil, fmt.Errorf("embed listing %d: %w", i, err)
			}
			vectors = append(vectors, vector)
		}
		return vectors, nil
	}

	size := s.batchSize
	if limit := batcher.MaxBatchSize(); limit > 0 && limit < size {
		size = limit
	}

	for start := 0; start < len(texts); start += size {
		end := min(start+size, len(texts))

		batch, err := batcher.BatchEmbed(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embed listings %d-%d: %w", start, end-1, err)
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("embed listings %d-%d: got %d vectors", start, end-1, len(batch))
		}

		vectors = append(vectors, batch...)
	}

	return vectors, nil
}
