package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/bsgreeks/internal/logger"
)

func TestToString(t *testing.T) {
	if s := toString(nil); s != "" {
		t.Fatalf("nil -> %q, want empty", s)
	}
	if s := toString("abc"); s != "abc" {
		t.Fatalf("string -> %q, want 'abc'", s)
	}
	if s := toString(123); s != "" {
		t.Fatalf("non-string -> %q, want empty", s)
	}
}

func TestRequestLogger_Basic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// capture logs by setting pretty off and ensuring logger initialized
	logger.Init()
	router.Use(RequestID())
	router.Use(RequestLogger())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatalf("missing X-Request-ID header")
	}
}

func TestRequestLogger_ClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger.Init()
	router.Use(RequestID(), RequestLogger())
	router.POST("/echo", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(b))
	})

	body := bytes.NewBufferString("hello")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", body)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}
}

func TestLevelFor(t *testing.T) {
	cases := []struct {
		status int
		want   zerolog.Level
	}{
		{200, zerolog.InfoLevel},
		{302, zerolog.InfoLevel},
		{422, zerolog.WarnLevel},
		{503, zerolog.ErrorLevel},
	}
	for _, tc := range cases {
		if got := levelFor(tc.status); got != tc.want {
			t.Fatalf("levelFor(%d)=%v want %v", tc.status, got, tc.want)
		}
	}
}
