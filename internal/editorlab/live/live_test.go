package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/exporter"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/host"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gofrs/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...Option) (*Service, *httptest.Server, prometheus.Gauge) {
	t.Helper()
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "live_sessions"})
	s := NewService(host.NewDefaultRegistry(), exporter.New(), 1<<20, gauge, opts...)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind := host.Kind(strings.Trim(r.URL.Path, "/"))
		if err := s.Handle(kind, w, r); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
		}
	}))
	t.Cleanup(srv.Close)
	return s, srv, gauge
}

func dial(t *testing.T, srv *httptest.Server, kind string) *websocket.Conn {
	t.Helper()
	c, err := dialOrigin(srv, kind, "")
	require.NoError(t, err)
	return c
}

func dialOrigin(srv *httptest.Server, kind, origin string) (*websocket.Conn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	opts := &websocket.DialOptions{}
	if origin != "" {
		opts.HTTPHeader = http.Header{"Origin": {origin}}
	}
	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/"+kind+"/", opts)
	return c, err
}

func TestRender(t *testing.T) {
	s := NewService(host.NewDefaultRegistry(), exporter.New(), 0, nil)

	tests := []struct {
		name     string
		kind     host.Kind
		snapshot string
		want     any
	}{
		{"slate", host.KindSlate, `[{"type":"paragraph","children":[{"text":"hello"}]}]`, Frame{HTML: "<p>hello</p>", Raw: "<p>hello</p>"}},
		{"empty", host.KindSlate, `[]`, Frame{HTML: "", Raw: exporter.EmptyPlaceholder}},
		{"quill", host.KindQuill, `{"ops":[{"insert":"Title","attributes":{"bold":true}},{"insert":"\n","attributes":{"header":1}}]}`, Frame{HTML: "<h2><strong>Title</strong></h2>", Raw: "<h2><strong>Title</strong></h2>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Render(tt.kind, []byte(tt.snapshot)))
		})
	}

	_, ok := s.Render(host.KindLexical, []byte(`{`)).(ErrorFrame)
	assert.True(t, ok)
	_, ok = s.Render("tiptap", []byte(`[]`)).(ErrorFrame)
	assert.True(t, ok)
}

func TestHandle(t *testing.T) {
	s, srv, gauge := newTestServer(t)
	c := dial(t, srv, "slate")
	defer c.CloseNow()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, c.Write(ctx, websocket.MessageText, []byte(`not json`)))
	var errFrame ErrorFrame
	require.NoError(t, wsjson.Read(ctx, c, &errFrame))
	assert.NotEmpty(t, errFrame.Error)

	// the connection survives a bad frame
	require.NoError(t, c.Write(ctx, websocket.MessageText, []byte(`[{"type":"paragraph","children":[{"text":"hi","bold":true}]}]`)))
	var frame Frame
	require.NoError(t, wsjson.Read(ctx, c, &frame))
	assert.Equal(t, "<p><strong>hi</strong></p>", frame.HTML)

	assert.Equal(t, 1, s.Count())
	assert.Equal(t, float64(1), testutil.ToFloat64(gauge))

	require.NoError(t, c.Close(websocket.StatusNormalClosure, ""))
	assert.Eventually(t, func() bool { return s.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, float64(0), testutil.ToFloat64(gauge))
}

func TestCloseAll(t *testing.T) {
	s, srv, _ := newTestServer(t)
	c := dial(t, srv, "quill")
	defer c.CloseNow()

	assert.Eventually(t, func() bool { return s.Count() == 1 }, 2*time.Second, 10*time.Millisecond)
	s.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _, err := c.Read(ctx)
	assert.Equal(t, websocket.StatusGoingAway, websocket.CloseStatus(err))

	assert.ErrorIs(t, s.Handle(host.KindQuill, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)), ErrClosed)
}

func TestOriginCheck(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		origin   string
		allowed  bool
	}{
		{"без Origin", nil, "", true},
		{"чужой хост без настроек", nil, "http://evil.example", false},
		{"разрешенный хост", []string{"editor.example"}, "https://editor.example", true},
		{"шаблон поддоменов", []string{"*.example"}, "https://app.example", true},
		{"хост не из списка", []string{"editor.example"}, "https://evil.example", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv, _ := newTestServer(t, WithOriginPatterns(tt.patterns...))
			c, err := dialOrigin(srv, "slate", tt.origin)
			if !tt.allowed {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			c.CloseNow()
		})
	}

	t.Run("свой хост разрешен всегда", func(t *testing.T) {
		_, srv, _ := newTestServer(t)
		c, err := dialOrigin(srv, "slate", srv.URL)
		require.NoError(t, err)
		c.CloseNow()
	})
}

func TestAddAfterCloseAll(t *testing.T) {
	s, _, gauge := newTestServer(t)
	s.CloseAll()

	assert.ErrorIs(t, s.add(uuid.Must(uuid.NewV4()), nil), ErrClosed)
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, float64(0), testutil.ToFloat64(gauge))
}

func TestCloseAllUnlocked(t *testing.T) {
	s, srv, _ := newTestServer(t)
	conns := make([]*websocket.Conn, 0, 3)
	for range 3 {
		c := dial(t, srv, "slate")
		defer c.CloseNow()
		conns = append(conns, c)
	}
	assert.Eventually(t, func() bool { return s.Count() == 3 }, 2*time.Second, 10*time.Millisecond)

	// клиенты не отвечают на кадр закрытия, пока CloseAll работает, Count не должен блокироваться
	done := make(chan struct{})
	go func() {
		s.CloseAll()
		close(done)
	}()
	countDone := make(chan int)
	go func() { countDone <- s.Count() }()
	select {
	case <-countDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Count blocked by CloseAll")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, c := range conns {
		_, _, err := c.Read(ctx)
		assert.Equal(t, websocket.StatusGoingAway, websocket.CloseStatus(err))
	}
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("CloseAll did not return")
	}
}
