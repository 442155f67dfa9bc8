package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/spigell/job-match/internal/matching"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Detail string `json:"detail"`
}

// searchBody keeps query as a pointer so a missing key can be told from "".
type searchBody struct {
	Query *string  `json:"query"`
	Roles []string `json:"roles"`
}

func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)

	req, err := decodeSearchRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.metrics.Failures.WithLabelValues("validation").Inc()
		logger.Debug("rejecting request", zap.Error(err))
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: err.Error()})
		return
	}

	resp, err := s.searcher.SearchJobs(r.Context(), req)
	if err != nil {
		status, kind, msg := classify(err)
		s.metrics.Failures.WithLabelValues(kind).Inc()
		logger.Error("search failed", zap.String("kind", kind), zap.Error(err))
		writeJSON(w, status, errorResponse{Detail: msg})
		return
	}

	s.metrics.Matches.Observe(float64(resp.Len()))
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeSearchRequest(body io.Reader) (*matching.SearchRequest, error) {
	var payload searchBody
	dec := json.NewDecoder(body)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid request body: unexpected data after JSON object")
	}

	if payload.Query == nil {
		return nil, errors.New("field required: query")
	}

	roles := payload.Roles
	if roles == nil {
		roles = []string{}
	}

	return &matching.SearchRequest{Query: *payload.Query, Roles: roles}, nil
}

// classify maps a service error onto a status code, a metrics label and the
// detail returned to the client. All failures are 500-class.
func classify(err error) (int, string, string) {
	var upstream *matching.UpstreamError
	if errors.As(err, &upstream) {
		return http.StatusInternalServerError, "upstream", upstream.Error()
	}

	var scoring *matching.ScoringError
	if errors.As(err, &scoring) {
		return http.StatusInternalServerError, "scoring", scoring.Error()
	}

	return http.StatusInternalServerError, "internal", "Internal Server Error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
