// Package jsearch is a client for the JSearch job-listing API published on RapidAPI.
package jsearch

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultHost    = "jsearch.p.rapidapi.com"
	DefaultTimeout = 15 * time.Second
	// JSearch charges per page, one page is enough for ranking.
	defaultNumPages = 1
)

type Client struct {
	apiKey     string
	logger     *zap.Logger
	HTTPClient *http.Client
	// Host is sent as X-RapidAPI-Host.
	Host string
	// APIURL defaults to https://<Host>.
	APIURL string
	// Defaults are merged into every search. NumPages is ignored.
	Defaults SearchParams
}

func New(logger *zap.Logger, apiKey string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		apiKey: apiKey,
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		Host:   DefaultHost,
		APIURL: "https://" + DefaultHost,
		Defaults: SearchParams{
			NumPages: defaultNumPages,
		},
	}
}

// Search returns a single page of listings for the query. num_pages is always
// 1 whatever Defaults say.
func (c *Client) Search(ctx context.Context, query string) (*Jobs, error) {
	params := c.Defaults
	params.Query = query
	params.NumPages = defaultNumPages

	return c.search(ctx, &params)
}

func (c *Client) apiURL() string {
	if c.APIURL != "" {
		return strings.TrimRight(c.APIURL, "/")
	}
	return "https://" + c.Host
}
