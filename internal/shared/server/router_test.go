package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/billing"
	"resume-builder/internal/exports"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/storage/object/local"
	"resume-builder/internal/suggestions"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	resumeSvc := resumes.NewService(resumes.NewMemoryRepo())
	exportSvc := exports.NewService(exports.NewMemoryRepo(), resumeSvc, local.New(t.TempDir()), nil)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return NewRouter(RouterDeps{
		ResumesHandler:    resumes.NewHandler(resumeSvc),
		ExportsHandler:    exports.NewHandler(exportSvc),
		SuggestionHandler: suggestions.NewHandler(suggestions.NewService(nil)),
		BillingHandler:    billing.NewHandler(billing.NewService()),
		RateLimiter:       middleware.NewRateLimiter(func() time.Time { return now }),
	})
}

func serve(h http.Handler, method, path, guest, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if guest != "" {
		req.Header.Set("X-Guest-Id", guest)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestPublicRoutes(t *testing.T) {
	r := newTestRouter(t)

	if resp := serve(r, http.MethodGet, "/api/v1/health", "", ""); resp.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", resp.Code)
	}
	if resp := serve(r, http.MethodGet, "/api/v1/plans", "", ""); resp.Code != http.StatusOK {
		t.Fatalf("plans: expected 200, got %d", resp.Code)
	}
	resp := serve(r, http.MethodGet, "/metrics", "", "")
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "exports_requested_total") {
		t.Fatalf("metrics: unexpected response %d", resp.Code)
	}
}

func TestIdentityRequired(t *testing.T) {
	r := newTestRouter(t)

	if resp := serve(r, http.MethodGet, "/api/v1/resumes", "", ""); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", resp.Code)
	}
	if resp := serve(r, http.MethodGet, "/api/v1/resumes", "g1", ""); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for guest, got %d", resp.Code)
	}
	resp := serve(r, http.MethodPost, "/api/v1/compose", "g1", `{"personalInfo":{"fullName":"Guest User"}}`)
	if resp.Code != http.StatusOK || !strings.HasPrefix(resp.Body.String(), "%PDF-") {
		t.Fatalf("expected guest compose to succeed, got %d", resp.Code)
	}
}

func TestSuggestionsAreRateLimited(t *testing.T) {
	r := newTestRouter(t)

	var last *httptest.ResponseRecorder
	for i := 0; i < 11; i++ {
		last = serve(r, http.MethodPost, "/api/v1/suggestions/summary", "g2", `{"role":"Engineer"}`)
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after the suggestion burst, got %d", last.Code)
	}
	if last.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}

	// Other groups keep their own bucket.
	if resp := serve(r, http.MethodGet, "/api/v1/plans", "g2", ""); resp.Code != http.StatusOK {
		t.Fatalf("expected plans to stay available, got %d", resp.Code)
	}
}

func TestRateLimitGroups(t *testing.T) {
	cases := map[string]string{
		"POST /api/v1/compose":               rateGroupExport,
		"POST /api/v1/resumes/r1/exports":    rateGroupExport,
		"GET /api/v1/exports":                "",
		"POST /api/v1/suggestions/ats-score": rateGroupSuggest,
		"GET /api/v1/resumes":                "",
	}
	for route, want := range cases {
		parts := strings.SplitN(route, " ", 2)
		c := newContext(parts[0], parts[1])
		if got := rateLimitGroup(c); got != want {
			t.Fatalf("%s: got %q want %q", route, got, want)
		}
	}
}

func TestAddr(t *testing.T) {
	if Addr("") != ":8080" || Addr("9000") != ":9000" || Addr(":7000") != ":7000" {
		t.Fatalf("unexpected addr normalization")
	}
}

func newContext(method, path string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, path, nil)
	return c
}
