package resumes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/resume/model"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/resumes", middleware.RequireUser())
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

type resumeRequest struct {
	Title    string          `json:"title"`
	Document json.RawMessage `json:"document"`
}

// bind reads the body and decodes the document. A missing document yields
// an empty one when allowEmpty is set.
func bind(c *gin.Context, allowEmpty bool) (string, model.ResumeDocument, bool) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return "", model.ResumeDocument{}, false
	}
	if len(req.Document) == 0 || string(req.Document) == "null" {
		if allowEmpty {
			return req.Title, model.ResumeDocument{}.Normalized(), true
		}
		respond.Error(c, http.StatusBadRequest, "invalid_document", "document is required", nil)
		return "", model.ResumeDocument{}, false
	}
	doc, err := model.Decode(req.Document)
	if err != nil {
		var invalid *model.InvalidDocumentError
		if errors.As(err, &invalid) {
			respond.Error(c, http.StatusBadRequest, "invalid_document", "document does not match the resume schema", invalid.Violations)
			return "", model.ResumeDocument{}, false
		}
		respond.Internal(c, err, "failed to read document")
		return "", model.ResumeDocument{}, false
	}
	return req.Title, doc, true
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]Summary, 0, len(items))
	for _, r := range items {
		out = append(out, r.Summary())
	}
	respond.OK(c, gin.H{"items": out})
}

func (h *Handler) create(c *gin.Context) {
	title, doc, ok := bind(c, true)
	if !ok {
		return
	}
	resume, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), title, doc)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("resumeId", resume.ID)
	respond.Created(c, resume)
}

func (h *Handler) get(c *gin.Context) {
	c.Set("resumeId", c.Param("id"))
	resume, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) update(c *gin.Context) {
	c.Set("resumeId", c.Param("id"))
	title, doc, ok := bind(c, false)
	if !ok {
		return
	}
	resume, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), title, doc)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) delete(c *gin.Context) {
	c.Set("resumeId", c.Param("id"))
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond.NoContent(c)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	default:
		respond.Internal(c, err, "failed to process resume")
	}
}
