// Package datastore wraps the OpenSearch client with the small surface the
// rest of the application needs: index existence/deletion for tsctl and the
// explore query path.
package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/opensearch-project/opensearch-go/v2"
)

// Document is a single event returned from the datastore.
type Document struct {
	ID     string         `json:"_id"`
	Index  string         `json:"_index"`
	Source map[string]any `json:"_source"`
}

// SearchResult carries the hits and query metadata of one search call.
type SearchResult struct {
	TookMS     int64
	TotalCount int64
	Documents  []Document
}

type OpenSearch struct {
	client *opensearch.Client
}

// New connects to a single OpenSearch node.
func New(host string, port int) (*OpenSearch, error) {
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: []string{fmt.Sprintf("http://%s:%d", host, port)},
	})
	if err != nil {
		return nil, fmt.Errorf("create opensearch client for %s:%d: %w", host, port, err)
	}
	return &OpenSearch{client: client}, nil
}

// IndexExists reports whether the named index exists in the datastore.
func (d *OpenSearch) IndexExists(ctx context.Context, name string) (bool, error) {
	res, err := d.client.Indices.Exists(
		[]string{name},
		d.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf("check index %q: %w", name, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("check index %q: unexpected status %s", name, res.Status())
	}
}

// DeleteIndex removes the named index from the datastore.
func (d *OpenSearch) DeleteIndex(ctx context.Context, name string) error {
	res, err := d.client.Indices.Delete(
		[]string{name},
		d.client.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete index %q: %w", name, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("delete index %q: unexpected status %s", name, res.Status())
	}
	return nil
}

// Search executes a query body against the given indices and returns the
// hits plus the datastore-side timing.
func (d *OpenSearch) Search(ctx context.Context, indices []string, query map[string]any, size int) (*SearchResult, error) {
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(query); err != nil {
		return nil, fmt.Errorf("encode search query: %w", err)
	}

	res, err := d.client.Search(
		d.client.Search.WithContext(ctx),
		d.client.Search.WithIndex(indices...),
		d.client.Search.WithBody(&body),
		d.client.Search.WithSize(size),
		d.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("search indices %v: %w", indices, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search indices %v: unexpected status %s", indices, res.Status())
	}

	var decoded struct {
		Took int64 `json:"took"`
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []Document `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	return &SearchResult{
		TookMS:     decoded.Took,
		TotalCount: decoded.Hits.Total.Value,
		Documents:  decoded.Hits.Hits,
	}, nil
}
