package suggestions

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
	"resume-builder/resume/model"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches suggestion routes. Guests may use them.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/suggestions/summary", h.summary)
	rg.POST("/suggestions/description", h.description)
	rg.POST("/suggestions/ats-score", h.atsScore)
}

type summaryRequest struct {
	Role      string   `json:"role"`
	Positions []string `json:"positions"`
	Skills    []string `json:"skills"`
}

type descriptionRequest struct {
	Description string `json:"description"`
	Position    string `json:"position"`
}

func (h *Handler) summary(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	items, err := h.Svc.GenerateSummary(c.Request.Context(), req.Role, req.Positions, req.Skills)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "suggestions_unavailable", "failed to generate suggestions", nil)
		return
	}
	respond.OK(c, gin.H{"suggestions": items})
}

func (h *Handler) description(c *gin.Context) {
	var req descriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	items, err := h.Svc.OptimizeDescription(c.Request.Context(), req.Description, req.Position)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "description is required", nil)
			return
		}
		respond.Error(c, http.StatusBadGateway, "suggestions_unavailable", "failed to generate suggestions", nil)
		return
	}
	respond.OK(c, gin.H{"suggestions": items})
}

func (h *Handler) atsScore(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to read body", nil)
		return
	}
	doc, err := model.Decode(raw)
	if err != nil {
		var invalid *model.InvalidDocumentError
		if errors.As(err, &invalid) {
			respond.Error(c, http.StatusBadRequest, "invalid_document", "document does not match the resume schema", invalid.Violations)
			return
		}
		respond.Internal(c, err, "failed to read document")
		return
	}
	respond.OK(c, h.Svc.ATSScore(doc))
}
