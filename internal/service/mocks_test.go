package service

import (
	"context"
	"fmt"

	"timesketch/internal/datastore"
	"timesketch/internal/models"
)

// ---- Repository mocks ----

type mockUserRepo struct {
	users map[string]*models.User

	createCalls   []string
	passwordCalls []int
	adminCalls    map[int]bool
	activeCalls   map[int]bool
}

func newMockUserRepo(users ...*models.User) *mockUserRepo {
	m := &mockUserRepo{
		users:       map[string]*models.User{},
		adminCalls:  map[int]bool{},
		activeCalls: map[int]bool{},
	}
	for _, u := range users {
		m.users[u.Username] = u
	}
	return m
}

func (m *mockUserRepo) Create(ctx context.Context, username, hash string) (int, error) {
	m.createCalls = append(m.createCalls, username)
	id := len(m.users) + 1
	m.users[username] = &models.User{ID: id, Username: username, PasswordHash: hash, Active: true}
	return id, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.users[username], nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int, hash string) error {
	m.passwordCalls = append(m.passwordCalls, id)
	for _, u := range m.users {
		if u.ID == id {
			u.PasswordHash = hash
		}
	}
	return nil
}

func (m *mockUserRepo) SetAdmin(ctx context.Context, id int, admin bool) error {
	m.adminCalls[id] = admin
	return nil
}

func (m *mockUserRepo) SetActive(ctx context.Context, id int, active bool) error {
	m.activeCalls[id] = active
	return nil
}

type mockGroupRepo struct {
	groups  map[string]*models.Group
	members map[int][]models.User

	addOK    bool
	removeOK bool
	created  []string
}

func newMockGroupRepo(groups ...*models.Group) *mockGroupRepo {
	m := &mockGroupRepo{
		groups:   map[string]*models.Group{},
		members:  map[int][]models.User{},
		addOK:    true,
		removeOK: true,
	}
	for _, g := range groups {
		m.groups[g.Name] = g
	}
	return m
}

func (m *mockGroupRepo) Create(ctx context.Context, name string) (int, error) {
	m.created = append(m.created, name)
	id := len(m.groups) + 1
	m.groups[name] = &models.Group{ID: id, Name: name}
	return id, nil
}

func (m *mockGroupRepo) GetByName(ctx context.Context, name string) (*models.Group, error) {
	return m.groups[name], nil
}

func (m *mockGroupRepo) List(ctx context.Context) ([]models.Group, error) {
	var out []models.Group
	for _, g := range m.groups {
		out = append(out, *g)
	}
	return out, nil
}

func (m *mockGroupRepo) AddMember(ctx context.Context, groupID, userID int) (bool, error) {
	return m.addOK, nil
}

func (m *mockGroupRepo) RemoveMember(ctx context.Context, groupID, userID int) (bool, error) {
	return m.removeOK, nil
}

func (m *mockGroupRepo) Members(ctx context.Context, groupID int) ([]models.User, error) {
	return m.members[groupID], nil
}

type mockSketchRepo struct {
	sketches   map[int]*models.Sketch
	indexNames map[int][]string

	grantCalls []string // "sketchID:userID:permission"
}

func newMockSketchRepo(sketches ...*models.Sketch) *mockSketchRepo {
	m := &mockSketchRepo{sketches: map[int]*models.Sketch{}, indexNames: map[int][]string{}}
	for _, s := range sketches {
		m.sketches[s.ID] = s
	}
	return m
}

func (m *mockSketchRepo) List(ctx context.Context) ([]models.Sketch, error) {
	var out []models.Sketch
	for _, s := range m.sketches {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockSketchRepo) GetByID(ctx context.Context, id int) (*models.Sketch, error) {
	return m.sketches[id], nil
}

func (m *mockSketchRepo) GrantPermission(ctx context.Context, sketchID, userID int, permission string) error {
	m.grantCalls = append(m.grantCalls, fmt.Sprintf("%d:%d:%s", sketchID, userID, permission))
	return nil
}

func (m *mockSketchRepo) IndexNames(ctx context.Context, sketchID int) ([]string, error) {
	return m.indexNames[sketchID], nil
}

type mockIndexRepo struct {
	byIndexName map[string]*models.SearchIndex
	byNamePair  map[string]*models.SearchIndex
	timelines   map[int][]models.Timeline

	created          []models.SearchIndex
	deletedIndices   []int
	deletedTimelines []int
}

func newMockIndexRepo() *mockIndexRepo {
	return &mockIndexRepo{
		byIndexName: map[string]*models.SearchIndex{},
		byNamePair:  map[string]*models.SearchIndex{},
		timelines:   map[int][]models.Timeline{},
	}
}

func (m *mockIndexRepo) Create(ctx context.Context, idx models.SearchIndex) (int, error) {
	m.created = append(m.created, idx)
	return len(m.created), nil
}

func (m *mockIndexRepo) GetByNameAndIndex(ctx context.Context, name, indexName string) (*models.SearchIndex, error) {
	return m.byNamePair[name+"/"+indexName], nil
}

func (m *mockIndexRepo) GetByIndexName(ctx context.Context, indexName string) (*models.SearchIndex, error) {
	return m.byIndexName[indexName], nil
}

func (m *mockIndexRepo) Delete(ctx context.Context, id int) error {
	m.deletedIndices = append(m.deletedIndices, id)
	return nil
}

func (m *mockIndexRepo) TimelinesByIndex(ctx context.Context, searchIndexID int) ([]models.Timeline, error) {
	return m.timelines[searchIndexID], nil
}

func (m *mockIndexRepo) DeleteTimeline(ctx context.Context, id int) error {
	m.deletedTimelines = append(m.deletedTimelines, id)
	return nil
}

type mockViewRepo struct {
	views   map[int][]models.View
	created []models.View
}

func newMockViewRepo() *mockViewRepo {
	return &mockViewRepo{views: map[int][]models.View{}}
}

func (m *mockViewRepo) Create(ctx context.Context, v models.View) (int, error) {
	m.created = append(m.created, v)
	v.ID = len(m.created)
	m.views[v.SketchID] = append(m.views[v.SketchID], v)
	return v.ID, nil
}

func (m *mockViewRepo) ListBySketch(ctx context.Context, sketchID int) ([]models.View, error) {
	return m.views[sketchID], nil
}

func (m *mockViewRepo) GetByID(ctx context.Context, sketchID, viewID int) (*models.View, error) {
	for _, v := range m.views[sketchID] {
		if v.ID == viewID {
			return &v, nil
		}
	}
	return nil, nil
}

type mockTemplateRepo struct {
	templates []models.SearchTemplate
	created   []models.SearchTemplate
}

func (m *mockTemplateRepo) List(ctx context.Context) ([]models.SearchTemplate, error) {
	return m.templates, nil
}

func (m *mockTemplateRepo) GetByName(ctx context.Context, name string) (*models.SearchTemplate, error) {
	for i := range m.templates {
		if m.templates[i].Name == name {
			return &m.templates[i], nil
		}
	}
	return nil, nil
}

func (m *mockTemplateRepo) Create(ctx context.Context, tmpl models.SearchTemplate) (int, error) {
	m.created = append(m.created, tmpl)
	m.templates = append(m.templates, tmpl)
	return len(m.templates), nil
}

// ---- Datastore mock ----

type mockDatastore struct {
	existing map[string]bool
	result   *datastore.SearchResult
	err      error

	deleted     []string
	lastIndices []string
	lastQuery   map[string]any
	lastSize    int
}

func (m *mockDatastore) IndexExists(ctx context.Context, name string) (bool, error) {
	return m.existing[name], nil
}

func (m *mockDatastore) DeleteIndex(ctx context.Context, name string) error {
	m.deleted = append(m.deleted, name)
	return nil
}

func (m *mockDatastore) Search(ctx context.Context, indices []string, query map[string]any, size int) (*datastore.SearchResult, error) {
	m.lastIndices = indices
	m.lastQuery = query
	m.lastSize = size
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &datastore.SearchResult{}, nil
}
