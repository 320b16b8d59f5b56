package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/config"
)

func devConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:           "dev",
		Port:          "0",
		LocalStoreDir: t.TempDir(),
		JWTSecret:     "test-secret",
	}
}

func TestBuildDevUsesMemoryDependencies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := Build(devConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer app.Close()

	if app.DB != nil || app.Redis != nil || app.Queue != nil {
		t.Fatalf("dev build without urls should not connect anything")
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var report struct {
		OK     bool              `json:"ok"`
		Checks map[string]string `json:"checks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if !report.OK || report.Checks["database"] != "disabled" || report.Checks["redis"] != "disabled" {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestBuildServesGuestCompose(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := Build(devConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer app.Close()

	body := `{"personalInfo":{"fullName":"Ada Lovelace","email":"ada@example.com"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/compose", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "g-1")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("compose expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Fatalf("expected a PDF body")
	}
}

func TestBuildRejectsInvalidProductionConfig(t *testing.T) {
	if _, err := Build(config.Config{Env: "production"}); err == nil {
		t.Fatalf("expected config validation error")
	}
}
