package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/archive/archivetest"
	"github.com/user/setlist-archive-cli/pkg/timeutil"
	"github.com/user/setlist-archive-cli/playback"
	"github.com/user/setlist-archive-cli/view"
)

type stubPlayer struct {
	mu    sync.Mutex
	t     float64
	state playback.State
}

func (p *stubPlayer) CurrentTime() (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.t, nil
}

func (p *stubPlayer) State() (playback.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state, nil
}

func (p *stubPlayer) SeekTo(s float64, _ bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.t = s
	return nil
}

func (p *stubPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = playback.Playing
	return nil
}

func newTestServer(t *testing.T) (*Server, *view.Controller) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := view.New(archivetest.Sample(), view.Options{
		Clock:     timeutil.NewManualClock(),
		EntryHref: EntryHref,
		TabHref:   TabHref,
		Players: func(v *archive.Video, _ view.Callbacks) (playback.Player, error) {
			return &stubPlayer{state: playback.Cued}, nil
		},
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ctrl.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return New(ctrl, nil), ctrl
}

func serve(s *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func TestHealthCheck(t *testing.T) {
	s, _ := newTestServer(t)
	rr := serve(s, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rr)["status"])
}

func TestPageShowsDefaultCard(t *testing.T) {
	s, _ := newTestServer(t)
	rr := serve(s, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, `<svg xmlns="http://www.w3.org/2000/svg" id="wrap"`)
	assert.Contains(t, body, `id="card-20251130"`)
	assert.Contains(t, body, "The Lexington, London, UK")
	assert.Contains(t, body, `<a href="/entries/li-20251130-1/click">`)
	assert.Contains(t, body, `<a href="/?date=20240301"><rect`)
	assert.NotContains(t, body, `href="/entries/li-20251130-2/click"`)
}

func TestPageRoutes(t *testing.T) {
	s, _ := newTestServer(t)

	rr := serve(s, http.MethodGet, "/?date=20240301")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `id="card-20240301"`)

	// no parameters keeps the current view
	rr = serve(s, http.MethodGet, "/")
	assert.Contains(t, rr.Body.String(), `id="card-20240301"`)

	rr = serve(s, http.MethodGet, "/?q=vines")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="vines"`)
	assert.Contains(t, rr.Body.String(), `class="card filter-match"`)
	np := decode[NowPlaying](t, serve(s, http.MethodGet, "/api/now-playing"))
	assert.Equal(t, "?song=vines", np.Route)

	rr = serve(s, http.MethodGet, "/?q=shenandoah")
	assert.Contains(t, rr.Body.String(), "does not currently have a viewable or listenable performance")

	rr = serve(s, http.MethodGet, "/?clear=1")
	assert.Contains(t, rr.Body.String(), `id="card-20251130"`)
	assert.NotContains(t, rr.Body.String(), "filter-match")
}

func TestClickAndNowPlaying(t *testing.T) {
	s, _ := newTestServer(t)
	serve(s, http.MethodGet, "/?date=20240301")

	np := decode[NowPlaying](t, serve(s, http.MethodGet, "/api/now-playing"))
	assert.False(t, np.Playing)
	assert.Equal(t, "?date=20240301", np.Route)

	rr := serve(s, http.MethodPost, "/api/entries/li-20240301-1/click")
	require.Equal(t, http.StatusOK, rr.Code)
	np = decode[NowPlaying](t, rr)
	assert.True(t, np.Playing)
	assert.Equal(t, "v20240301", np.VideoID)
	assert.Equal(t, "li-20240301-1", np.EntryID)
	assert.Equal(t, "Vines", np.Title)
	assert.Equal(t, 95.0, np.Start)
	assert.Equal(t, 95.0, np.Position)

	svg := serve(s, http.MethodGet, "/scene.svg")
	assert.Equal(t, "image/svg+xml", svg.Header().Get("Content-Type"))
	assert.Contains(t, svg.Body.String(), `<path class="connector playing"`)

	rr = serve(s, http.MethodPost, "/api/entries/li-19990101-0/click")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestClickRedirect(t *testing.T) {
	s, _ := newTestServer(t)
	serve(s, http.MethodGet, "/")

	rr := serve(s, http.MethodGet, "/entries/li-20251130-1/click")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/?date=20251130", rr.Header().Get("Location"))

	np := decode[NowPlaying](t, serve(s, http.MethodGet, "/api/now-playing"))
	assert.Equal(t, "John Henry", np.Title)
}

func TestHover(t *testing.T) {
	s, _ := newTestServer(t)
	serve(s, http.MethodGet, "/")

	rr := serve(s, http.MethodPost, "/api/entries/li-20251130-1/hover")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Contains(t, serve(s, http.MethodGet, "/scene.svg").Body.String(), `<path class="connector active"`)

	rr = serve(s, http.MethodDelete, "/api/entries/li-20251130-1/hover")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.NotContains(t, serve(s, http.MethodGet, "/scene.svg").Body.String(), "connector active")
}

func TestAutocomplete(t *testing.T) {
	s, _ := newTestServer(t)

	body := decode[struct {
		Suggestions []archive.Suggestion `json:"suggestions"`
	}](t, serve(s, http.MethodGet, "/api/autocomplete?q=lon"))
	assert.Contains(t, body.Suggestions, archive.Suggestion{Text: "London", Type: archive.SuggestCity})

	rr := serve(s, http.MethodGet, "/api/autocomplete")
	assert.JSONEq(t, `{"suggestions":[]}`, rr.Body.String())
}

func TestStoppedSession(t *testing.T) {
	s, ctrl := newTestServer(t)
	ctrl.Stop()

	rr := serve(s, http.MethodGet, "/api/now-playing")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
