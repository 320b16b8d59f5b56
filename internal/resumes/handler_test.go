package resumes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resumes"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := resumes.NewService(resumes.NewMemoryRepo())
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", c.GetHeader("X-Test-User"))
		c.Set("isGuest", false)
		c.Next()
	})
	resumes.NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r *gin.Engine, method, path, user, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", user)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestResumeCRUD(t *testing.T) {
	r := newRouter()

	resp := do(r, http.MethodPost, "/api/v1/resumes", "u1", `{"title":"My CV","document":{"personalInfo":{"fullName":"Ada Lovelace"},"skills":["Go"]}}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created resumes.Resume
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Document.PersonalInfo.FullName != "Ada Lovelace" {
		t.Fatalf("unexpected resume %+v", created)
	}

	resp = do(r, http.MethodGet, "/api/v1/resumes", "u1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var list struct {
		Items []resumes.Summary `json:"items"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &list)
	if len(list.Items) != 1 || list.Items[0].FullName != "Ada Lovelace" {
		t.Fatalf("unexpected list %s", resp.Body.String())
	}

	resp = do(r, http.MethodPut, "/api/v1/resumes/"+created.ID, "u1", `{"title":"","document":{"personalInfo":{"fullName":"Ada"}}}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var updated resumes.Resume
	_ = json.Unmarshal(resp.Body.Bytes(), &updated)
	if updated.Title != resumes.DefaultTitle || len(updated.Document.Skills) != 0 {
		t.Fatalf("unexpected update %+v", updated)
	}

	if resp = do(r, http.MethodGet, "/api/v1/resumes/"+created.ID, "u2", ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another user, got %d", resp.Code)
	}
	if resp = do(r, http.MethodDelete, "/api/v1/resumes/"+created.ID, "u1", ""); resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if resp = do(r, http.MethodGet, "/api/v1/resumes/"+created.ID, "u1", ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}
}

func TestCreateWithoutDocumentUsesEmptyDocument(t *testing.T) {
	r := newRouter()
	resp := do(r, http.MethodPost, "/api/v1/resumes", "u1", `{}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created resumes.Resume
	_ = json.Unmarshal(resp.Body.Bytes(), &created)
	if created.Title != resumes.DefaultTitle {
		t.Fatalf("expected default title, got %q", created.Title)
	}
}

func TestInvalidDocumentIsRejected(t *testing.T) {
	r := newRouter()
	resp := do(r, http.MethodPost, "/api/v1/resumes", "u1", `{"title":"x","document":{"personalInfo":{},"skills":null,"experience":"nope"}}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Code    string   `json:"code"`
			Details []string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "invalid_document" || len(body.Error.Details) < 2 {
		t.Fatalf("unexpected error body %s", resp.Body.String())
	}

	created := do(r, http.MethodPost, "/api/v1/resumes", "u1", `{"title":"ok"}`)
	var res resumes.Resume
	_ = json.Unmarshal(created.Body.Bytes(), &res)
	if resp := do(r, http.MethodPut, "/api/v1/resumes/"+res.ID, "u1", `{"title":"ok"}`); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when update omits the document, got %d", resp.Code)
	}
}
