package main

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/figure"
	"github.com/Zachkp/portfolio/internal/motion"
	"github.com/Zachkp/portfolio/internal/scene"
	"github.com/Zachkp/portfolio/internal/storage"
	"github.com/Zachkp/portfolio/internal/theme"
)

type testApp struct {
	router *gin.Engine
	scene  *scene.Scene
	themes *theme.Store
	db     *storage.DB
	done   chan struct{}
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := storage.Open(filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	themes, err := theme.NewStore(context.Background(), storage.Preference{DB: db, Key: storage.ThemeKey})
	require.NoError(t, err)
	sc := scene.New(context.Background(), themes, scene.Options{})
	t.Cleanup(sc.Close)

	done := make(chan struct{})
	return &testApp{
		router: newRouter(&server{scene: sc, themes: themes, policy: figure.DefaultPolicy, done: done}),
		scene:  sc,
		themes: themes,
		db:     db,
		done:   done,
	}
}

func (a *testApp) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestIndex_RendersSectionsAndTheme(t *testing.T) {
	a := newTestApp(t)
	w := a.do(http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `class="theme-dark"`)
	for _, id := range []string{"home", "about", "skills", "experience", "projects", "contact"} {
		assert.Contains(t, body, `id="`+id+`"`)
	}
	assert.Contains(t, body, `id="pull"`)
}

func TestSectionFragment(t *testing.T) {
	a := newTestApp(t)

	w := a.do(http.MethodGet, "/section/skills", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Skills")
	assert.NotContains(t, w.Body.String(), "<html")

	w = a.do(http.MethodGet, "/section/blog", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPullGesture_TogglesAndPersists(t *testing.T) {
	a := newTestApp(t)

	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/pull/down", "{}").Code)
	for i := 0; i < 4; i++ {
		require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/pull/move", `{"dy": 25}`).Code)
	}

	w := a.do(http.MethodPost, "/api/pull/up", "{}")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Toggled bool            `json:"toggled"`
		Theme   string          `json:"theme"`
		Pull    scene.PullState `json:"pull"`
	}
	decode(t, w, &resp)
	assert.True(t, resp.Toggled)
	assert.Equal(t, "light", resp.Theme)
	assert.Equal(t, 0.0, resp.Pull.Pull)
	assert.False(t, resp.Pull.Dragging)

	stored, err := a.db.Get(context.Background(), storage.ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "light", stored)

	assert.Contains(t, a.do(http.MethodGet, "/", "").Body.String(), `class="theme-light"`)
}

func TestPullGesture_AtThresholdDoesNothing(t *testing.T) {
	a := newTestApp(t)
	a.do(http.MethodPost, "/api/pull/down", "{}")
	a.do(http.MethodPost, "/api/pull/move", `{"dy": 80}`)

	var resp struct {
		Toggled bool   `json:"toggled"`
		Theme   string `json:"theme"`
	}
	decode(t, a.do(http.MethodPost, "/api/pull/cancel", "{}"), &resp)
	assert.False(t, resp.Toggled)
	assert.Equal(t, "dark", resp.Theme)

	assert.Equal(t, http.StatusNotFound, a.do(http.MethodPost, "/api/pull/yank", "{}").Code)
}

func TestPullGesture_ReleaseCarriesTotal(t *testing.T) {
	a := newTestApp(t)
	a.do(http.MethodPost, "/api/pull/down", "{}")
	a.do(http.MethodPost, "/api/pull/move", `{"dy": 60}`)

	var resp struct {
		Toggled bool   `json:"toggled"`
		Theme   string `json:"theme"`
	}
	decode(t, a.do(http.MethodPost, "/api/pull/up", `{"pull": 90}`), &resp)
	assert.True(t, resp.Toggled)
	assert.Equal(t, "light", resp.Theme)

	// the straggling move lands on an idle switch
	a.do(http.MethodPost, "/api/pull/move", `{"dy": 30}`)
	assert.Equal(t, 0.0, a.scene.PullState().Pull)

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/api/pull/up", `{"pull": "far"}`).Code)
}

func TestThemeEndpoints(t *testing.T) {
	a := newTestApp(t)

	var got map[string]any
	decode(t, a.do(http.MethodGet, "/api/theme", ""), &got)
	assert.Equal(t, "dark", got["theme"])

	decode(t, a.do(http.MethodPost, "/api/theme/toggle", ""), &got)
	assert.Equal(t, "light", got["theme"])
	assert.Equal(t, true, got["persisted"])
	assert.Equal(t, theme.Light, a.themes.Current())
}

func TestInputEndpoints(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, http.StatusNoContent,
		a.do(http.MethodPost, "/api/input/scroll", `{"scrollY": 1920, "viewportHeight": 800}`).Code)
	assert.Equal(t, http.StatusNoContent,
		a.do(http.MethodPost, "/api/input/pointer", `{"x": 0, "y": 0, "width": 1000, "height": 500}`).Code)

	f := a.scene.Tick(0.1)
	assert.Equal(t, 3, f.Section)
	assert.Equal(t, motion.PointerSample{X: -1, Y: 1}, f.Pointer)

	assert.Equal(t, http.StatusBadRequest,
		a.do(http.MethodPost, "/api/input/scroll", `{"scrollY": 10, "viewportHeight": 0}`).Code)
	assert.Equal(t, http.StatusBadRequest,
		a.do(http.MethodPost, "/api/input/pointer", `not json`).Code)
}

func TestPoseEndpoint(t *testing.T) {
	a := newTestApp(t)

	var pose motion.Pose
	decode(t, a.do(http.MethodGet, "/api/pose?section=3", ""), &pose)
	assert.Equal(t, motion.Plan(3, 0), pose)

	decode(t, a.do(http.MethodGet, "/api/pose?section=5&t=1.25", ""), &pose)
	assert.Equal(t, motion.Plan(5, 1.25), pose)

	decode(t, a.do(http.MethodGet, "/api/pose?section=1&compact=1", ""), &pose)
	assert.Equal(t, motion.CompactBase.X, pose.Position.X)

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/api/pose?section=two", "").Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/api/pose?t=soon", "").Code)
}

func TestCapabilityEndpoint(t *testing.T) {
	a := newTestApp(t)

	var got map[string]bool
	decode(t, a.do(http.MethodPost, "/api/capability", `{"viewportWidth": 1440, "logicalCPUs": 8}`), &got)
	assert.True(t, got["enabled"])

	decode(t, a.do(http.MethodPost, "/api/capability", `{"viewportWidth": 390, "logicalCPUs": 8}`), &got)
	assert.False(t, got["enabled"])
}

func TestContactForm_OnlyLogs(t *testing.T) {
	a := newTestApp(t)

	form := url.Values{"fullName": {"Ada"}, "email": {"ada@example.com"}, "message": {"hi"}}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "contact-success")

	req = httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("fullName=Ada"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "contact-error")
}

func TestFrameStream(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go func() { _ = a.scene.Run(ctx, 60) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/frames", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	events := 0
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() && events < 3 {
		if sc.Text() == "event:frame" {
			events++
		}
	}
	assert.Equal(t, 3, events)
}

func openStream(t *testing.T, ctx context.Context, url string) *bufio.Scanner {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"/api/frames", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return bufio.NewScanner(resp.Body)
}

func TestFrameStream_FirstFrameBeforeAnyTick(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.router)
	defer srv.Close()
	defer close(a.done)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sc := openStream(t, ctx, srv.URL)
	require.True(t, sc.Scan())
	assert.Equal(t, "event:frame", sc.Text())
}

func TestFrameStream_EndsOnShutdown(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sc := openStream(t, ctx, srv.URL)
	require.True(t, sc.Scan())

	close(a.done)
	start := time.Now()
	for sc.Scan() {
	}
	assert.NoError(t, sc.Err(), "stream closed by the server, not by the client timeout")
	assert.Less(t, time.Since(start), time.Second)
}
