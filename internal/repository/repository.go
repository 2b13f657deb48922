package repository

import (
	"context"
	"database/sql"

	"timesketch/internal/models"
)

type UserRepo interface {
	Create(ctx context.Context, username, passwordHash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	SetAdmin(ctx context.Context, id int, admin bool) error
	SetActive(ctx context.Context, id int, active bool) error
}

type GroupRepo interface {
	Create(ctx context.Context, name string) (int, error)
	GetByName(ctx context.Context, name string) (*models.Group, error)
	List(ctx context.Context) ([]models.Group, error)
	// AddMember reports false when the user already was a member.
	AddMember(ctx context.Context, groupID, userID int) (bool, error)
	// RemoveMember reports false when the user was not a member.
	RemoveMember(ctx context.Context, groupID, userID int) (bool, error)
	Members(ctx context.Context, groupID int) ([]models.User, error)
}

type SketchRepo interface {
	List(ctx context.Context) ([]models.Sketch, error)
	GetByID(ctx context.Context, id int) (*models.Sketch, error)
	GrantPermission(ctx context.Context, sketchID, userID int, permission string) error
	// IndexNames returns the datastore index names reachable through the
	// sketch's timelines.
	IndexNames(ctx context.Context, sketchID int) ([]string, error)
}

type SearchIndexRepo interface {
	Create(ctx context.Context, idx models.SearchIndex) (int, error)
	GetByNameAndIndex(ctx context.Context, name, indexName string) (*models.SearchIndex, error)
	GetByIndexName(ctx context.Context, indexName string) (*models.SearchIndex, error)
	Delete(ctx context.Context, id int) error
	TimelinesByIndex(ctx context.Context, searchIndexID int) ([]models.Timeline, error)
	DeleteTimeline(ctx context.Context, id int) error
}

type SearchTemplateRepo interface {
	List(ctx context.Context) ([]models.SearchTemplate, error)
	GetByName(ctx context.Context, name string) (*models.SearchTemplate, error)
	Create(ctx context.Context, tmpl models.SearchTemplate) (int, error)
}

type ViewRepo interface {
	Create(ctx context.Context, v models.View) (int, error)
	ListBySketch(ctx context.Context, sketchID int) ([]models.View, error)
	GetByID(ctx context.Context, sketchID, viewID int) (*models.View, error)
}

type Repository struct {
	Users     UserRepo
	Groups    GroupRepo
	Sketches  SketchRepo
	Indices   SearchIndexRepo
	Templates SearchTemplateRepo
	Views     ViewRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:     NewUserSQLite(db),
		Groups:    NewGroupSQLite(db),
		Sketches:  NewSketchSQLite(db),
		Indices:   NewSearchIndexSQLite(db),
		Templates: NewSearchTemplateSQLite(db),
		Views:     NewViewSQLite(db),
	}
}
