package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-backend/internal/model"
	"rag-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBearerAuth(t *testing.T) {
	id := model.Identity{Name: "John Doe", Email: "john.doe@example.com"}
	r := gin.New()
	reached := 0
	r.GET("/secret", BearerAuth(service.NewAuthService("s3cret", id)), func(c *gin.Context) {
		reached++
		got, ok := GetIdentity(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, got)
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer s3cret", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic s3cret", http.StatusUnauthorized},
		{"lowercase scheme", "bearer s3cret", http.StatusUnauthorized},
		{"no space", "Bearers3cret", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := http.Header{}
			if tc.header != "" {
				h.Set("Authorization", tc.header)
			}
			w := perform(r, http.MethodGet, "/secret", h)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			} else {
				assert.JSONEq(t, `{"name":"John Doe","email":"john.doe@example.com"}`, w.Body.String())
			}
		})
	}
	assert.Equal(t, 1, reached)
}

func TestGetIdentity_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetIdentity(c)
	assert.False(t, ok)
}

func TestTraceMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(TraceContextKey))
	})

	w := perform(r, http.MethodGet, "/", nil)
	traceID := w.Header().Get(TraceHeader)
	assert.Len(t, traceID, 32)
	assert.Equal(t, traceID, w.Body.String())

	h := http.Header{}
	h.Set(TraceHeader, "abc123")
	w = perform(r, http.MethodGet, "/", h)
	assert.Equal(t, "abc123", w.Header().Get(TraceHeader))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	r.GET("/abort", func(c *gin.Context) { panic(http.ErrAbortHandler) })

	w := perform(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())

	assert.PanicsWithError(t, http.ErrAbortHandler.Error(), func() {
		perform(r, http.MethodGet, "/abort", nil)
	})
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	perform(r, http.MethodGet, "/items/1", nil)
	perform(r, http.MethodGet, "/items/2", nil)
	perform(r, http.MethodGet, "/missing", nil)

	w := perform(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",route="/items/:id",status="204"} 2`)
	assert.Contains(t, body, `http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.True(t, strings.Contains(body, "http_request_duration_seconds_bucket"))
}

func TestRequestLogger(t *testing.T) {
	r := gin.New()
	r.Use(TraceMiddleware(), RequestLogger())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := perform(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTeapot, w.Code)
}

// abortingRoute 写出部分响应后中断连接
func abortingRoute(c *gin.Context) {
	c.String(http.StatusOK, "partial")
	panic(http.ErrAbortHandler)
}

func TestMetrics_RecordsAbortedRequest(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(Recovery(), m.Middleware())
	r.GET("/download", abortingRoute)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	assert.PanicsWithError(t, http.ErrAbortHandler.Error(), func() {
		perform(r, http.MethodGet, "/download", nil)
	})

	w := perform(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",route="/download",status="200"} 1`)
}

func TestRequestLogger_LogsAbortedRequest(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(Recovery(), TraceMiddleware(), RequestLoggerTo(zerolog.New(&buf)))
	r.GET("/download", abortingRoute)

	assert.PanicsWithError(t, http.ErrAbortHandler.Error(), func() {
		perform(r, http.MethodGet, "/download", nil)
	})

	line := buf.String()
	assert.Contains(t, line, `"path":"/download"`)
	assert.Contains(t, line, `"status":200`)
	assert.Contains(t, line, `"message":"request"`)
}
