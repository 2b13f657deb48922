package service

import (
	"context"
	"errors"
	"testing"

	"timesketch/internal/models"
)

func TestSketchService_List_SkipsDeleted(t *testing.T) {
	repo := newMockSketchRepo(
		&models.Sketch{ID: 1, Name: "live", Status: models.StatusReady},
		&models.Sketch{ID: 2, Name: "gone", Status: models.StatusDeleted},
		&models.Sketch{ID: 3, Name: "old", Status: models.StatusArchived},
	)
	svc := NewSketchService(repo, newMockViewRepo())

	sketches, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(sketches) != 2 {
		t.Fatalf("got %d sketches, want 2 (deleted skipped)", len(sketches))
	}
	for _, s := range sketches {
		if s.Status == models.StatusDeleted {
			t.Fatalf("deleted sketch leaked into listing: %+v", s)
		}
	}
}

func TestSketchService_Get(t *testing.T) {
	repo := newMockSketchRepo(
		&models.Sketch{ID: 1, Name: "live", Status: models.StatusReady},
		&models.Sketch{ID: 2, Name: "gone", Status: models.StatusDeleted},
	)
	svc := NewSketchService(repo, newMockViewRepo())

	sketch, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if sketch.Name != "live" {
		t.Fatalf("unexpected sketch: %+v", sketch)
	}

	// Deleted sketches behave like missing ones.
	if _, err := svc.Get(context.Background(), 2); !errors.Is(err, ErrSketchNotFound) {
		t.Fatalf("error = %v, want ErrSketchNotFound", err)
	}
	if _, err := svc.Get(context.Background(), 99); !errors.Is(err, ErrSketchNotFound) {
		t.Fatalf("error = %v, want ErrSketchNotFound", err)
	}
}

func TestSketchService_Views(t *testing.T) {
	sketches := newMockSketchRepo(&models.Sketch{ID: 1, Status: models.StatusReady})
	views := newMockViewRepo()
	svc := NewSketchService(sketches, views)

	id, err := svc.SaveView(context.Background(), models.View{
		Name: "Evil", SketchID: 1, QueryString: "evil",
	})
	if err != nil {
		t.Fatalf("SaveView returned error: %v", err)
	}

	got, err := svc.View(context.Background(), 1, id)
	if err != nil {
		t.Fatalf("View returned error: %v", err)
	}
	if got.Name != "Evil" || got.QueryString != "evil" {
		t.Fatalf("unexpected view: %+v", got)
	}

	if _, err := svc.View(context.Background(), 1, 99); !errors.Is(err, ErrViewNotFound) {
		t.Fatalf("error = %v, want ErrViewNotFound", err)
	}

	// Saving against a missing sketch fails before touching the view repo.
	if _, err := svc.SaveView(context.Background(), models.View{Name: "x", SketchID: 42}); !errors.Is(err, ErrSketchNotFound) {
		t.Fatalf("error = %v, want ErrSketchNotFound", err)
	}
	if len(views.created) != 1 {
		t.Fatalf("view repo touched for missing sketch: %+v", views.created)
	}
}
