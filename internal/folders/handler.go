package folders

import (
	"errors"
	"net/http"
	"strings"

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

// RegisterRoutes attaches folder routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/folders", h.create)
	rg.POST("/folders/rename", h.rename)
	rg.POST("/folders/delete", h.remove)
}

type createRequest struct {
	UserID       int64  `json:"user_id"`
	FolderName   string `json:"folder_name"`
	ParentFolder string `json:"parent_folder"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.UserID == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id is required", nil)
		return
	}
	if strings.TrimSpace(req.FolderName) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "folder_name is required", nil)
		return
	}

	folder, err := h.Svc.Create(c.Request.Context(), req.UserID, req.FolderName, req.ParentFolder)
	if err != nil {
		folderError(c, err, "failed to create folder")
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Folder created successfully",
		"folder_id":  folder.ID,
		"folder_key": folder.Key,
	})
}

type renameRequest struct {
	UserID        int64  `json:"user_id"`
	FolderKey     string `json:"folder_key"`
	NewFolderName string `json:"new_folder_name"`
}

func (h *Handler) rename(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.UserID == 0 || req.FolderKey == "" || strings.TrimSpace(req.NewFolderName) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id, folder_key, and new_folder_name are required", nil)
		return
	}

	folder, err := h.Svc.Rename(c.Request.Context(), req.UserID, req.FolderKey, req.NewFolderName)
	if err != nil {
		folderError(c, err, "failed to rename folder")
		return
	}

	respond.OK(c, gin.H{
		"success":     true,
		"message":     "Folder renamed successfully",
		"folder_key":  folder.Key,
		"folder_name": folder.Name,
	})
}

type deleteRequest struct {
	UserID    int64  `json:"user_id"`
	FolderKey string `json:"folder_key"`
}

func (h *Handler) remove(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.UserID == 0 || req.FolderKey == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id and folder_key are required", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), req.UserID, req.FolderKey); err != nil {
		folderError(c, err, "failed to delete folder")
		return
	}

	respond.OK(c, gin.H{"success": true, "message": "Folder deleted successfully"})
}

func folderError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidName):
		respond.Error(c, http.StatusBadRequest, "validation_error", ErrInvalidName.Error(), nil)
	case errors.Is(err, ErrUserNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "user does not exist", nil)
	case errors.Is(err, ErrProfileNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found for user", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "folder does not exist", nil)
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusConflict, "conflict", ErrConflict.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", fallback, err.Error())
	}
}
