package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/telemetry"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	t.Cleanup(telemetry.SetOutput(&buf))
	return &buf
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var payload map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &payload); err != nil {
		t.Fatalf("decode log json %q: %v", buf.String(), err)
	}
	return payload
}

func TestLoggingIncludesRequestFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogs(t)

	router := gin.New()
	router.Use(RequestID(), Auth(nil), Logging())
	router.GET("/api/v1/exports/:id", func(c *gin.Context) {
		c.Set("resumeId", "resume-1")
		c.Set("exportId", "export-1")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/export-1", nil)
	req.Header.Set("X-Guest-Id", "guest1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	payload := lastLogLine(t, buf)
	want := map[string]any{
		"msg":       "request.complete",
		"level":     "info",
		"user_id":   "guest:guest1",
		"is_guest":  true,
		"resume_id": "resume-1",
		"export_id": "export-1",
		"route":     "/api/v1/exports/:id",
		"status":    float64(200),
	}
	for k, v := range want {
		if payload[k] != v {
			t.Fatalf("field %s: got %v want %v", k, payload[k], v)
		}
	}
	if payload["request_id"] == "" || payload["duration_ms"] == nil {
		t.Fatalf("missing request_id or duration: %v", payload)
	}
}

func TestLoggingServerErrorsAtErrorLevel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogs(t)

	router := gin.New()
	router.Use(Logging())
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusBadGateway) })
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	if payload := lastLogLine(t, buf); payload["level"] != "error" {
		t.Fatalf("expected error level, got %v", payload["level"])
	}
}

func TestLoggingSkipsProbes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogs(t)

	router := gin.New()
	router.Use(Logging())
	router.GET("/api/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if buf.Len() != 0 {
		t.Fatalf("expected no log for health probe, got %q", buf.String())
	}
}
