package profiles

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/:userID/details", h.details)
	rg.POST("/templates", h.saveTemplate)
	rg.POST("/templates/restore", h.restoreTemplate)
}

func (h *Handler) details(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user id must be a valid integer", nil)
		return
	}

	details, err := h.Svc.Details(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user does not exist or has no data", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to load user details", err.Error())
		}
		return
	}

	respond.OK(c, details)
}

type saveTemplateRequest struct {
	UserID   int64           `json:"user_id"`
	Template json.RawMessage `json:"template"`
}

func (h *Handler) saveTemplate(c *gin.Context) {
	var req saveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.UserID == 0 || len(req.Template) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id and template are required", nil)
		return
	}

	if err := h.Svc.SaveTemplate(c.Request.Context(), req.UserID, req.Template); err != nil {
		templateError(c, err, "failed to save template")
		return
	}

	respond.OK(c, gin.H{"success": true, "message": "Template saved successfully"})
}

type restoreTemplateRequest struct {
	UserID int64 `json:"user_id"`
}

func (h *Handler) restoreTemplate(c *gin.Context) {
	var req restoreTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.UserID == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id is required", nil)
		return
	}

	if err := h.Svc.RestoreDefaultTemplate(c.Request.Context(), req.UserID); err != nil {
		templateError(c, err, "failed to restore template")
		return
	}

	respond.OK(c, gin.H{"success": true, "message": "Default template restored successfully"})
}

func templateError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "template must be valid JSON", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "user or profile not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", fallback, err.Error())
	}
}
