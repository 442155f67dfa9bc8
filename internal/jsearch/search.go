package jsearch

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	SearchPath = "/search"
)

type SearchParams struct {
	// Query is always sent, even when empty.
	Query string `jsparam:"query" mapstructure:"-"`
	// jsparam is the query string key. Zero values are not sent.
	Page            int      `jsparam:"page" mapstructure:"page"`
	NumPages        int      `jsparam:"num_pages" mapstructure:"-"`
	Country         string   `jsparam:"country" mapstructure:"country"`
	DatePosted      string   `jsparam:"date_posted" mapstructure:"date-posted"`
	RemoteJobsOnly  bool     `jsparam:"remote_jobs_only" mapstructure:"remote-jobs-only"`
	EmploymentTypes []string `jsparam:"employment_types" mapstructure:"employment-types"`
}

func (c *Client) search(ctx context.Context, params *SearchParams) (*Jobs, error) {
	q := buildParams(params)
	apiURLSearch := fmt.Sprintf("%s%s", c.apiURL(), SearchPath)

	items, err := c.GetItems(ctx, apiURLSearch, q)
	if err != nil {
		return nil, err
	}

	jobs, err := decodeJobs(items)
	if err != nil {
		return nil, err
	}

	return &Jobs{Items: jobs}, nil
}

func decodeJobs(items []Item) ([]*Job, error) {
	jobs := make([]*Job, 0, len(items))
	if len(items) == 0 {
		return jobs, nil
	}

	cfg := &mapstructure.DecoderConfig{
		Result:           &jobs,
		TagName:          "json",
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	return jobs, nil
}

func buildParams(params *SearchParams) url.Values {
	q := url.Values{}
	q.Set("query", params.Query)

	value := reflect.ValueOf(params).Elem()
	for _, field := range reflect.VisibleFields(value.Type()) {
		key := field.Tag.Get("jsparam")
		if key == "" || key == "query" {
			continue
		}

		switch v := value.FieldByIndex(field.Index).Interface().(type) {
		case []string:
			if len(v) > 0 {
				// JSearch expects comma separated lists.
				q.Set(key, strings.Join(v, ","))
			}
		case int:
			if v != 0 {
				q.Set(key, strconv.Itoa(v))
			}
		case bool:
			if v {
				q.Set(key, strconv.FormatBool(v))
			}
		case string:
			if v != "" {
				q.Set(key, v)
			}
		}
	}

	return q
}
