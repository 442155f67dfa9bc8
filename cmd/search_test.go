package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spigell/job-match/internal/matching"
)

func TestMatchLabel(t *testing.T) {
	title, company := "Go Developer", "Acme"

	got := matchLabel(matching.Match{Title: &title, Company: &company, MatchScore: 87.5})
	want := " 87.50  Go Developer / Acme / unknown location"
	if got != want {
		t.Fatalf("matchLabel = %q, want %q", got, want)
	}
}

func TestDeref(t *testing.T) {
	empty := ""
	if got := deref(&empty, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for empty string, got %q", got)
	}
	if got := deref(nil, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for nil, got %q", got)
	}
}

func TestPrintMatches(t *testing.T) {
	title := "Go Developer"
	var buf bytes.Buffer

	err := printMatches(&buf, &matching.SearchResponse{Matches: []matching.Match{{Title: &title, MatchScore: 91.25}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got struct {
		Matches []map[string]any `json:"matches"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a single JSON document: %v\n%s", err, buf.String())
	}
	if len(got.Matches) != 1 || got.Matches[0]["title"] != title || got.Matches[0]["match_score"] != 91.25 {
		t.Fatalf("unexpected matches: %v", got.Matches)
	}
	if got.Matches[0]["url"] != nil {
		t.Fatalf("expected null url, got %v", got.Matches[0]["url"])
	}
	if !strings.HasSuffix(buf.String(), "}\n") {
		t.Fatalf("expected a trailing newline, got %q", buf.String())
	}
}
