package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"timesketch/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", defaultInterval},
		{"interval_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_too_large", "/ws?interval=5m", defaultInterval},
		{"interval_invalid", "/ws?interval=bogus", defaultInterval},
		{"interval_negative", "/ws?interval=-1s", defaultInterval},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

func newWSServer(t *testing.T, s *service.Service) (*httptest.Server, *url.URL) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws/sketches/:id", h.wsExplore)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	return srv, u
}

func TestWebSocket_ExploreStream_InitialAndPeriodic(t *testing.T) {
	explorer := &mockExplorer{result: &service.ExploreResult{
		Meta: service.ExploreMeta{EsTime: 2, EsTotalCount: 7},
	}}
	s := &service.Service{Explorer: explorer}

	_, u := newWSServer(t, s)
	u.Path = "/ws/sketches/3"
	q := u.Query()
	q.Set("q", "message:evil")
	q.Set("interval", "20ms") // fast ticks for the test
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	type envelope struct {
		Type  string          `json:"type"`
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}

	// Read the initial result
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "explore" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var res service.ExploreResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if res.Meta.EsTotalCount != 7 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if explorer.lastParams.SketchID != 3 || explorer.lastParams.Query != "message:evil" {
		t.Fatalf("unexpected params: %+v", explorer.lastParams)
	}

	// Read a subsequent tick
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != "explore" {
		t.Fatalf("expected type=explore, got %+v", env)
	}
}

func TestWebSocket_InitialExploreError_Closes(t *testing.T) {
	s := &service.Service{Explorer: &mockExplorer{err: errors.New("boom")}}

	_, u := newWSServer(t, s)
	u.Path = "/ws/sketches/3"

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	// The server sends one error envelope then closes.
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env struct {
		Type  string `json:"type"`
		Error string `json:"error"`
	}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read error envelope: %v", err)
	}
	if env.Type != "error" || env.Error == "" {
		t.Fatalf("bad error envelope: %+v", env)
	}

	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}
