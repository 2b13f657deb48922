package service

import (
	"context"
	"errors"

	"timesketch/internal/models"
	"timesketch/internal/repository"
)

var ErrViewNotFound = errors.New("view not found")

type SketchService struct {
	sketches repository.SketchRepo
	views    repository.ViewRepo
}

func NewSketchService(sketches repository.SketchRepo, views repository.ViewRepo) *SketchService {
	return &SketchService{sketches: sketches, views: views}
}

// List returns all sketches except deleted ones.
func (s *SketchService) List(ctx context.Context) ([]models.Sketch, error) {
	all, err := s.sketches.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Sketch, 0, len(all))
	for _, sk := range all {
		if sk.Status == models.StatusDeleted {
			continue
		}
		out = append(out, sk)
	}
	return out, nil
}

func (s *SketchService) Get(ctx context.Context, id int) (*models.Sketch, error) {
	sketch, err := s.sketches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sketch == nil || sketch.Status == models.StatusDeleted {
		return nil, ErrSketchNotFound
	}
	return sketch, nil
}

func (s *SketchService) Views(ctx context.Context, sketchID int) ([]models.View, error) {
	if _, err := s.Get(ctx, sketchID); err != nil {
		return nil, err
	}
	return s.views.ListBySketch(ctx, sketchID)
}

func (s *SketchService) View(ctx context.Context, sketchID, viewID int) (*models.View, error) {
	if _, err := s.Get(ctx, sketchID); err != nil {
		return nil, err
	}
	view, err := s.views.GetByID(ctx, sketchID, viewID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, ErrViewNotFound
	}
	return view, nil
}

func (s *SketchService) SaveView(ctx context.Context, v models.View) (int, error) {
	if _, err := s.Get(ctx, v.SketchID); err != nil {
		return 0, err
	}
	return s.views.Create(ctx, v)
}
