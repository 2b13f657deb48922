package service

import (
	"context"
	"fmt"

	"timesketch/internal/chips"
	"timesketch/internal/datastore"
	"timesketch/internal/repository"
)

const (
	defaultExploreSize = 40
	maxExploreSize     = 10000

	// Event field holding the timestamp queried by date chips.
	datetimeField = "datetime"
	labelField    = "label"
)

// ExploreParams is one search request against a sketch. Indices optionally
// restricts the search to a subset of the sketch's indices.
type ExploreParams struct {
	SketchID int
	Query    string
	Chips    []chips.Record
	Indices  []string
	Size     int
}

// ExploreMeta mirrors the metadata block of the explore API response.
type ExploreMeta struct {
	EsTime       int64 `json:"es_time"`
	EsTotalCount int64 `json:"es_total_count"`
}

type ExploreResult struct {
	Objects []datastore.Document `json:"objects"`
	Meta    ExploreMeta          `json:"meta"`
}

// ExploreService translates a query string plus filter chips into a
// datastore bool query scoped to the sketch's indices.
type ExploreService struct {
	sketches repository.SketchRepo
	ds       Datastore
}

func NewExploreService(sketches repository.SketchRepo, ds Datastore) *ExploreService {
	return &ExploreService{sketches: sketches, ds: ds}
}

func (s *ExploreService) Explore(ctx context.Context, p ExploreParams) (*ExploreResult, error) {
	sketch, err := s.sketches.GetByID(ctx, p.SketchID)
	if err != nil {
		return nil, err
	}
	if sketch == nil {
		return nil, ErrSketchNotFound
	}

	indices, err := s.sketches.IndexNames(ctx, p.SketchID)
	if err != nil {
		return nil, err
	}
	if len(p.Indices) > 0 {
		indices = restrictIndices(indices, p.Indices)
	}
	// A sketch without timelines (or with nothing left after the
	// restriction) has nothing to search.
	if len(indices) == 0 {
		return &ExploreResult{Objects: []datastore.Document{}}, nil
	}

	query, err := buildQuery(p.Query, p.Chips)
	if err != nil {
		return nil, err
	}

	size := p.Size
	if size <= 0 {
		size = defaultExploreSize
	}
	if size > maxExploreSize {
		size = maxExploreSize
	}

	res, err := s.ds.Search(ctx, indices, query, size)
	if err != nil {
		return nil, err
	}

	objects := res.Documents
	if objects == nil {
		objects = []datastore.Document{}
	}
	return &ExploreResult{
		Objects: objects,
		Meta:    ExploreMeta{EsTime: res.TookMS, EsTotalCount: res.TotalCount},
	}, nil
}

// buildQuery assembles the datastore bool query from the query string and
// the active chips. Inactive chips are skipped; must_not chips land in the
// negative branch.
func buildQuery(queryString string, records []chips.Record) (map[string]any, error) {
	must := []any{}
	mustNot := []any{}

	if queryString != "" {
		must = append(must, map[string]any{
			"query_string": map[string]any{"query": queryString},
		})
	}

	for _, rec := range records {
		if !rec.Active {
			continue
		}

		clause, err := chipClause(rec)
		if err != nil {
			return nil, err
		}

		if rec.Operator == chips.OperatorMustNot {
			mustNot = append(mustNot, clause)
		} else {
			must = append(must, clause)
		}
	}

	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must":     must,
				"must_not": mustNot,
			},
		},
	}, nil
}

func chipClause(rec chips.Record) (map[string]any, error) {
	switch rec.Type {
	case chips.TypeLabel:
		return map[string]any{
			"term": map[string]any{labelField: rec.Value},
		}, nil

	case chips.TypeTerm:
		if rec.Field == "" {
			return nil, fmt.Errorf("term chip is missing a field")
		}
		return map[string]any{
			"term": map[string]any{rec.Field: rec.Value},
		}, nil

	case chips.TypeDateRange:
		start, end, err := chips.ParseRange(rec.Value)
		if err != nil {
			return nil, err
		}
		return rangeClause(start, end), nil

	case chips.TypeDateInterval:
		iv, err := chips.ParseInterval(rec.Value)
		if err != nil {
			return nil, err
		}
		start, end, err := iv.Bounds()
		if err != nil {
			return nil, err
		}
		return rangeClause(start, end), nil

	default:
		return nil, fmt.Errorf("unknown chip type %q", rec.Type)
	}
}

// restrictIndices keeps only the sketch indices the caller asked for.
// Indices outside the sketch are dropped, never searched.
func restrictIndices(sketchIndices, requested []string) []string {
	allowed := make(map[string]bool, len(sketchIndices))
	for _, name := range sketchIndices {
		allowed[name] = true
	}
	var out []string
	for _, name := range requested {
		if allowed[name] {
			out = append(out, name)
		}
	}
	return out
}

func rangeClause(start, end string) map[string]any {
	return map[string]any{
		"range": map[string]any{
			datetimeField: map[string]any{"gte": start, "lte": end},
		},
	}
}
