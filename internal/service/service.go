package service

import (
	"context"
	"io"

	"timesketch/internal/datastore"
	"timesketch/internal/models"
	"timesketch/internal/repository"
)

type Authorization interface {
	SignIn(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Users exposes the account management operations behind tsctl.
type Users interface {
	// CreateOrUpdate creates the user or resets the password of an
	// existing one. Reports whether a new account was created.
	CreateOrUpdate(ctx context.Context, username, password string) (bool, error)
	SetAdmin(ctx context.Context, username string, admin bool) error
	SetActive(ctx context.Context, username string, active bool) error
	List(ctx context.Context) ([]models.User, error)
	// GrantSketchAccess gives the user read and write access to a sketch.
	GrantSketchAccess(ctx context.Context, username string, sketchID int) error
}

type Groups interface {
	// Create is idempotent: an existing group is left untouched.
	Create(ctx context.Context, name string) error
	List(ctx context.Context) ([]models.Group, error)
	AddMember(ctx context.Context, groupName, username string) error
	RemoveMember(ctx context.Context, groupName, username string) error
	Members(ctx context.Context, groupName string) ([]models.User, error)
}

type Sketches interface {
	// List returns all sketches except deleted ones.
	List(ctx context.Context) ([]models.Sketch, error)
	Get(ctx context.Context, id int) (*models.Sketch, error)
	Views(ctx context.Context, sketchID int) ([]models.View, error)
	View(ctx context.Context, sketchID, viewID int) (*models.View, error)
	SaveView(ctx context.Context, v models.View) (int, error)
}

// Indices manages search indices across the relational store and the
// datastore.
type Indices interface {
	Add(ctx context.Context, name, indexName, username string) error
	// Usages returns the names of non-deleted sketches whose timelines use
	// the index.
	Usages(ctx context.Context, indexName string) ([]string, error)
	// Purge deletes the index's timelines and metadata and drops the
	// datastore index itself.
	Purge(ctx context.Context, indexName string) error
}

// Templates imports/exports search templates as YAML.
type Templates interface {
	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader) error
}

type Explorer interface {
	Explore(ctx context.Context, p ExploreParams) (*ExploreResult, error)
}

// Datastore is the search/analytics backend consumed by the services.
type Datastore interface {
	IndexExists(ctx context.Context, name string) (bool, error)
	DeleteIndex(ctx context.Context, name string) error
	Search(ctx context.Context, indices []string, query map[string]any, size int) (*datastore.SearchResult, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Users
	Groups
	Sketches
	Indices
	Templates
	Explorer
}

// NewService wires the repository layer and datastore into concrete
// services.
func NewService(repos *repository.Repository, ds Datastore, authCfg AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, authCfg),
		Users:         NewUserService(repos.Users, repos.Sketches),
		Groups:        NewGroupService(repos.Groups, repos.Users),
		Sketches:      NewSketchService(repos.Sketches, repos.Views),
		Indices:       NewIndexService(repos.Indices, repos.Users, repos.Sketches, ds),
		Templates:     NewTemplateService(repos.Templates),
		Explorer:      NewExploreService(repos.Sketches, ds),
	}
}
