package handlers

import (
	"context"
	"net/http"

	"timesketch/internal/models"
	"timesketch/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signInToken string
	signInErr   error
	parseID     int
	parseErr    error

	lastSignInUsername string
	lastSignInPassword string
	lastParseToken     string
}

func (m *mockAuth) SignIn(ctx context.Context, username, password string) (string, error) {
	m.lastSignInUsername = username
	m.lastSignInPassword = password
	return m.signInToken, m.signInErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSketches struct {
	sketches []models.Sketch
	sketch   *models.Sketch
	views    []models.View
	view     *models.View
	savedID  int
	err      error

	lastSaved models.View
}

func (m *mockSketches) List(ctx context.Context) ([]models.Sketch, error) {
	return m.sketches, m.err
}
func (m *mockSketches) Get(ctx context.Context, id int) (*models.Sketch, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sketch, nil
}
func (m *mockSketches) Views(ctx context.Context, sketchID int) ([]models.View, error) {
	return m.views, m.err
}
func (m *mockSketches) View(ctx context.Context, sketchID, viewID int) (*models.View, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.view, nil
}
func (m *mockSketches) SaveView(ctx context.Context, v models.View) (int, error) {
	m.lastSaved = v
	return m.savedID, m.err
}

type mockExplorer struct {
	result *service.ExploreResult
	err    error

	lastParams service.ExploreParams
	calls      int
}

func (m *mockExplorer) Explore(ctx context.Context, p service.ExploreParams) (*service.ExploreResult, error) {
	m.lastParams = p
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &service.ExploreResult{}, nil
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
