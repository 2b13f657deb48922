package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"timesketch/internal/chips"
)

// Search is a client-side search against one sketch. Build it up with a
// query string and chips, or load it from a saved view, then Execute it.
type Search struct {
	client   *Client
	sketchID int

	Query    string
	QueryDSL string
	Size     int
	chips    []chips.Chip
}

// NewSearch returns an empty search scoped to the sketch.
func (c *Client) NewSearch(sketchID int) *Search {
	return &Search{client: c, sketchID: sketchID}
}

// AddChip appends a filter chip to the search.
func (s *Search) AddChip(chip chips.Chip) {
	s.chips = append(s.chips, chip)
}

// Chips returns the chips attached so far.
func (s *Search) Chips() []chips.Chip {
	return s.chips
}

// queryFilter is the serialized filter stored in a view's query_filter
// column and sent to the explore endpoint.
type queryFilter struct {
	Size  int            `json:"size,omitempty"`
	Chips []chips.Record `json:"chips,omitempty"`
}

// FromSaved replaces the search's state with that of a saved view,
// reconstructing the chips from the view's filter JSON.
func (s *Search) FromSaved(ctx context.Context, viewID int) error {
	view, err := s.client.GetView(ctx, s.sketchID, viewID)
	if err != nil {
		return err
	}

	var filter queryFilter
	if view.QueryFilter != "" {
		if err := json.Unmarshal([]byte(view.QueryFilter), &filter); err != nil {
			return fmt.Errorf("parse view %d filter: %w", viewID, err)
		}
	}

	restored := make([]chips.Chip, 0, len(filter.Chips))
	for _, rec := range filter.Chips {
		chip, err := chips.FromRecord(rec)
		if err != nil {
			return fmt.Errorf("view %d: %w", viewID, err)
		}
		restored = append(restored, chip)
	}

	s.Query = view.QueryString
	s.QueryDSL = view.QueryDSL
	s.Size = filter.Size
	s.chips = restored
	return nil
}

// Event is one search hit.
type Event struct {
	ID     string         `json:"_id"`
	Index  string         `json:"_index"`
	Source map[string]any `json:"_source"`
}

// SearchResult holds the hits and query metadata of one executed search.
type SearchResult struct {
	Objects []Event `json:"objects"`
	Meta    struct {
		EsTime       int64 `json:"es_time"`
		EsTotalCount int64 `json:"es_total_count"`
	} `json:"meta"`
}

// records serializes the attached chips.
func (s *Search) records() []chips.Record {
	out := make([]chips.Record, 0, len(s.chips))
	for _, chip := range s.chips {
		out = append(out, chip.Record())
	}
	return out
}

// Execute runs the search and returns the result set.
func (s *Search) Execute(ctx context.Context) (*SearchResult, error) {
	body := struct {
		Query  string      `json:"query"`
		Filter queryFilter `json:"filter"`
	}{
		Query:  s.Query,
		Filter: queryFilter{Size: s.Size, Chips: s.records()},
	}

	var out SearchResult
	path := fmt.Sprintf("/api/v1/sketches/%d/explore", s.sketchID)
	if err := s.client.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Save stores the search as a named view on the sketch and returns the new
// view's ID.
func (s *Search) Save(ctx context.Context, name string) (int, error) {
	filter, err := json.Marshal(queryFilter{Size: s.Size, Chips: s.records()})
	if err != nil {
		return 0, fmt.Errorf("encode filter: %w", err)
	}

	body := map[string]string{
		"name":         name,
		"query_string": s.Query,
		"query_dsl":    s.QueryDSL,
		"query_filter": string(filter),
	}
	var out struct {
		ID int `json:"id"`
	}
	path := fmt.Sprintf("/api/v1/sketches/%d/views", s.sketchID)
	if err := s.client.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// Table materializes the result as a header row plus one row per event.
// Columns are the sorted union of all source fields; missing values render
// as empty strings.
func (r *SearchResult) Table() (header []string, rows [][]string) {
	seen := map[string]bool{}
	for _, ev := range r.Objects {
		for k := range ev.Source {
			seen[k] = true
		}
	}
	header = make([]string, 0, len(seen))
	for k := range seen {
		header = append(header, k)
	}
	sort.Strings(header)

	rows = make([][]string, 0, len(r.Objects))
	for _, ev := range r.Objects {
		row := make([]string, len(header))
		for i, k := range header {
			if v, ok := ev.Source[k]; ok {
				row[i] = fmt.Sprint(v)
			}
		}
		rows = append(rows, row)
	}
	return header, rows
}
