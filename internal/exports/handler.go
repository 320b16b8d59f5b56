package exports

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/util"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

// Handler wires HTTP handlers to the export service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches export routes. Compose is open to guests; stored
// exports need a signed-in user.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/compose", h.compose)

	signedIn := rg.Group("", middleware.RequireUser())
	signedIn.POST("/resumes/:id/exports", h.request)
	signedIn.GET("/exports", h.list)
	signedIn.GET("/exports/:id", h.get)
	signedIn.GET("/exports/:id/download", h.download)
}

func (h *Handler) compose(c *gin.Context) {
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

	var opts []render.Option
	if size := c.Query("pageSize"); size != "" {
		opts = append(opts, render.WithPageSize(size))
	}
	if m := c.Query("margin"); m != "" {
		margin, err := strconv.ParseFloat(m, 64)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "margin must be a number", nil)
			return
		}
		opts = append(opts, render.WithMargin(margin))
	}

	data, fileName, err := h.Svc.Compose(doc, opts...)
	if err != nil {
		if errors.Is(err, render.ErrInvalidOptions) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Internal(c, err, "failed to compose resume")
		return
	}
	c.Header("Content-Disposition", util.AttachmentDisposition(fileName))
	c.Data(http.StatusOK, render.MimeTypePDF, data)
}

func (h *Handler) request(c *gin.Context) {
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)
	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))

	export, err := h.Svc.Request(ctx, middleware.UserIDFromContext(c), resumeID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid input", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Internal(c, err, "failed to request export")
		}
		return
	}
	c.Set("exportId", export.ID)

	status := http.StatusCreated
	if export.Status == StatusQueued || export.Status == StatusProcessing {
		status = http.StatusAccepted
	}
	respond.JSON(c, status, export)
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		respond.Internal(c, err, "failed to list exports")
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) get(c *gin.Context) {
	c.Set("exportId", c.Param("id"))
	export, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusNotFound, "not_found", "export not found", nil)
		default:
			respond.Internal(c, err, "failed to fetch export")
		}
		return
	}
	respond.OK(c, export)
}

func (h *Handler) download(c *gin.Context) {
	c.Set("exportId", c.Param("id"))
	export, reader, err := h.Svc.Open(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "access denied", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "export not found", nil)
		case errors.Is(err, ErrNotReady):
			respond.Error(c, http.StatusConflict, "export_pending", "export is "+string(export.Status), nil)
		default:
			respond.Internal(c, err, "failed to load export")
		}
		return
	}
	defer reader.Close()

	c.Header("Content-Type", render.MimeTypePDF)
	c.Header("Content-Disposition", util.AttachmentDisposition(export.FileName))
	if export.SizeBytes > 0 {
		c.Header("Content-Length", strconv.FormatInt(export.SizeBytes, 10))
	}
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
