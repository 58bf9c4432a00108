package httpx_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/order-accounting/pkg/httpx"
)

type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *captureLogger) add(level, f string, a ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(f, a...))
}

func (l *captureLogger) Infof(_ context.Context, f string, a ...any)  { l.add("info", f, a...) }
func (l *captureLogger) Warnf(_ context.Context, f string, a ...any)  { l.add("warn", f, a...) }
func (l *captureLogger) Errorf(_ context.Context, f string, a ...any) { l.add("error", f, a...) }

func newLoggedRouter(log *captureLogger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(httpx.RequestLogger(log))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/readyz", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.GET("/other", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r http.Handler, path string) {
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
}

func TestRequestLogger_QuietProbes(t *testing.T) {
	log := &captureLogger{}
	r := newLoggedRouter(log)

	hit(r, "/healthz")
	if len(log.lines) != 0 {
		t.Fatalf("healthy probe must not be logged: %v", log.lines)
	}

	// Проваленная проба логируется.
	hit(r, "/readyz")
	if len(log.lines) != 1 || !strings.HasPrefix(log.lines[0], "warn ") {
		t.Fatalf("failed probe must be logged as warn: %v", log.lines)
	}
}

func TestRequestLogger_LevelsByStatus(t *testing.T) {
	log := &captureLogger{}
	r := newLoggedRouter(log)

	hit(r, "/other")
	hit(r, "/boom")

	if len(log.lines) != 2 {
		t.Fatalf("want 2 lines, got %v", log.lines)
	}
	if !strings.HasPrefix(log.lines[0], "info ") || !strings.Contains(log.lines[0], "path=/other status=200") {
		t.Fatalf("unexpected line: %q", log.lines[0])
	}
	if !strings.HasPrefix(log.lines[1], "warn ") || !strings.Contains(log.lines[1], "status=500") {
		t.Fatalf("unexpected line: %q", log.lines[1])
	}
}
