package service

import (
	"context"
	"errors"

	"timesketch/internal/models"
	"timesketch/internal/repository"
)

var (
	ErrIndexNotFound       = errors.New("no such index")
	ErrIndexExists         = errors.New("index with this name already exists")
	ErrIndexNotInDatastore = errors.New("index does not exist in the datastore")
)

// IndexService manages search indices across the relational store and the
// datastore.
type IndexService struct {
	indices  repository.SearchIndexRepo
	users    repository.UserRepo
	sketches repository.SketchRepo
	ds       Datastore
}

func NewIndexService(indices repository.SearchIndexRepo, users repository.UserRepo,
	sketches repository.SketchRepo, ds Datastore) *IndexService {
	return &IndexService{indices: indices, users: users, sketches: sketches, ds: ds}
}

// Add registers an existing datastore index as a Timesketch search index
// owned by the given user, readable by everyone.
func (s *IndexService) Add(ctx context.Context, name, indexName, username string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	exists, err := s.ds.IndexExists(ctx, indexName)
	if err != nil {
		return err
	}
	if !exists {
		return ErrIndexNotInDatastore
	}

	existing, err := s.indices.GetByNameAndIndex(ctx, name, indexName)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrIndexExists
	}

	_, err = s.indices.Create(ctx, models.SearchIndex{
		Name:        name,
		Description: name,
		IndexName:   indexName,
		Status:      models.StatusReady,
		Public:      true,
		UserID:      user.ID,
	})
	return err
}

// Usages returns the names of non-deleted sketches whose timelines use the
// index. Used by "tsctl purge" to warn before deletion.
func (s *IndexService) Usages(ctx context.Context, indexName string) ([]string, error) {
	idx, err := s.indices.GetByIndexName(ctx, indexName)
	if err != nil {
		return nil, err
	}
	if idx == nil {
		return nil, ErrIndexNotFound
	}

	timelines, err := s.indices.TimelinesByIndex(ctx, idx.ID)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, tl := range timelines {
		sketch, err := s.sketches.GetByID(ctx, tl.SketchID)
		if err != nil {
			return nil, err
		}
		if sketch == nil || sketch.Status == models.StatusDeleted {
			continue
		}
		names = append(names, sketch.Name)
	}
	return names, nil
}

// Purge deletes the index's timelines and metadata from the relational
// store, then drops the datastore index itself. The datastore delete comes
// last so a failure leaves no dangling metadata.
func (s *IndexService) Purge(ctx context.Context, indexName string) error {
	idx, err := s.indices.GetByIndexName(ctx, indexName)
	if err != nil {
		return err
	}
	if idx == nil {
		return ErrIndexNotFound
	}

	timelines, err := s.indices.TimelinesByIndex(ctx, idx.ID)
	if err != nil {
		return err
	}
	for _, tl := range timelines {
		if err := s.indices.DeleteTimeline(ctx, tl.ID); err != nil {
			return err
		}
	}

	if err := s.indices.Delete(ctx, idx.ID); err != nil {
		return err
	}

	return s.ds.DeleteIndex(ctx, indexName)
}
