package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
)

func TestWrapOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}
	h := Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("a"), mw("b"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

func newJWT(t *testing.T) *config.JWT {
	t.Helper()
	v, err := config.Load("")
	require.NoError(t, err)
	j, err := config.NewJWT(v)
	require.NoError(t, err)
	return j
}

func TestAuth(t *testing.T) {
	j := newJWT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	token, err := j.Sign("session-1", time.Now())
	require.NoError(t, err)

	var got any
	h := Auth(logger, j)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Context().Value(CtxSessionID)
	}))

	tests := []struct {
		name  string
		setup func(r *http.Request)
		want  any
	}{
		{"header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, "session-1"},
		{"query", func(r *http.Request) { r.URL.RawQuery = "token=" + token }, "session-1"},
		{"missing", func(r *http.Request) {}, nil},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got = nil
			r := httptest.NewRequest(http.MethodGet, "/game/x", nil)
			test.setup(r)
			h.ServeHTTP(httptest.NewRecorder(), r)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/game?token=secret", nil))

	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"uri":"/game"`)
	assert.NotContains(t, buf.String(), "secret")
}

func TestCors(t *testing.T) {
	h := Cors([]string{"https://mines.example"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://mines.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "https://mines.example", w.Header().Get("Access-Control-Allow-Origin"))

	r.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
