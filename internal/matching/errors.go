package matching

// UpstreamError reports a failed call to the job-search provider.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return "Error fetching jobs from RapidAPI: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ScoringError reports a failure of the embedding provider or of the
// similarity computation. The whole request fails, no partial results.
type ScoringError struct {
	Err error
}

func (e *ScoringError) Error() string {
	return "Error scoring jobs: " + e.Err.Error()
}

func (e *ScoringError) Unwrap() error { return e.Err }
