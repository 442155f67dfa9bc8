package matching

import "strings"

// SearchRequest is the body of POST /search-jobs.
type SearchRequest struct {
	Query string   `json:"query"`
	Roles []string `json:"roles"`
}

// EffectiveQuery appends the roles to the query, separated by single spaces.
// With no roles the query is returned unchanged.
func (r *SearchRequest) EffectiveQuery() string {
	if len(r.Roles) == 0 {
		return r.Query
	}
	return r.Query + " " + strings.Join(r.Roles, " ")
}

// Match is a scored listing.
type Match struct {
	Title      *string `json:"title"`
	Company    *string `json:"company"`
	Location   *string `json:"location"`
	URL        *string `json:"url"`
	MatchScore float64 `json:"match_score"`
}

type SearchResponse struct {
	Matches []Match `json:"matches"`
}

func (r *SearchResponse) Len() int {
	return len(r.Matches)
}

func emptyResponse() *SearchResponse {
	return &SearchResponse{Matches: []Match{}}
}
