package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ambulance-backend/internal/handlers"
	"ambulance-backend/internal/testutil"
	"ambulance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, staticDir string) *gin.Engine {
	t.Helper()
	tokens := utils.NewTokenManager("test-secret", time.Hour, utils.NewRevocationStore())
	return NewRouter(Options{
		Handler:   handlers.New(testutil.NewDB(t), tokens, nil, nil),
		StaticDir: staticDir,
	})
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPingAndMetrics(t *testing.T) {
	r := newTestRouter(t, "")

	rec := get(r, "/ping")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected ping response %d %s", rec.Code, rec.Body.String())
	}

	rec = get(r, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Error("expected request counter in metrics output")
	}
}

func TestUnknownRouteWithoutStaticDir(t *testing.T) {
	r := newTestRouter(t, "")

	rec := get(r, "/does-not-exist")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"Not found"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := newTestRouter(t, dir)

	if rec := get(r, "/app.js"); !strings.Contains(rec.Body.String(), "console.log") {
		t.Errorf("expected asset, got %d %s", rec.Code, rec.Body.String())
	}
	if rec := get(r, "/dashboard/rides"); !strings.Contains(rec.Body.String(), "app</html>") {
		t.Errorf("expected index fallback, got %d %s", rec.Code, rec.Body.String())
	}
	if rec := get(r, "/../../etc/passwd"); strings.Contains(rec.Body.String(), "root:") {
		t.Error("path traversal escaped the static dir")
	}

	req := httptest.NewRequest(http.MethodPost, "/nowhere", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("POST to unknown route should 404, got %d", rec.Code)
	}
}

func TestPanicIsLoggedAndCounted(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	tokens := utils.NewTokenManager("test-secret", time.Hour, utils.NewRevocationStore())
	r := NewRouter(Options{
		Handler: handlers.New(testutil.NewDB(t), tokens, nil, nil),
		Log:     zap.New(core),
	})
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	rec := get(r, "/boom")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	access := logs.FilterMessage("request").All()
	if len(access) != 1 {
		t.Fatalf("expected one access log line, got %d", len(access))
	}
	if status := access[0].ContextMap()["status"]; status != int64(http.StatusInternalServerError) {
		t.Errorf("access log should record 500, got %v", status)
	}

	metrics := get(r, "/metrics").Body.String()
	if !strings.Contains(metrics, `route="/boom",status="500"`) {
		t.Errorf("panicking request should be counted:\n%s", metrics)
	}
}

func TestRegisterAliasesSignup(t *testing.T) {
	r := newTestRouter(t, "")

	body := strings.NewReader(`{"name":"Jane","email":"jane@example.com","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/register", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "access_token") {
		t.Errorf("expected a token, got %s", rec.Body.String())
	}
}
