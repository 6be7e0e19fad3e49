package files

import (
	"errors"
	"io"
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

// RegisterRoutes attaches file routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/files/upload", h.upload)
	rg.GET("/files", h.list)
	rg.POST("/files/rename", h.rename)
	rg.POST("/files/move", h.move)
	rg.POST("/files/copy", h.copyFile)
	rg.POST("/files/delete", h.remove)
	rg.GET("/files/:fileID/download", h.download)
}

func (h *Handler) upload(c *gin.Context) {
	userID, err := strconv.ParseInt(c.PostForm("user_id"), 10, 64)
	if err != nil || userID == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id is required", nil)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if fh.Size > MaxUploadSize {
		respond.Error(c, http.StatusBadRequest, "validation_error", ErrTooLarge.Error(), nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to read uploaded file", err.Error())
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxUploadSize+1))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to read uploaded file", err.Error())
		return
	}

	row, err := h.Svc.Upload(c.Request.Context(), userID, fh.Filename, data, c.PostForm("folder_path"))
	if err != nil {
		fileError(c, err, "failed to upload file")
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"success":  true,
		"message":  "File uploaded successfully",
		"file_id":  row.ID,
		"url":      row.URL,
		"filename": row.Filename,
	})
}

func (h *Handler) list(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id is required", nil)
		return
	}

	view, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		fileError(c, err, "failed to list files")
		return
	}
	respond.OK(c, view)
}

type renameFileRequest struct {
	UserID      int64  `json:"user_id"`
	FileID      int64  `json:"file_id"`
	NewFilename string `json:"new_filename"`
}

func (h *Handler) rename(c *gin.Context) {
	var req renameFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.UserID == 0 || req.FileID == 0 || req.NewFilename == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id, file_id, and new_filename are required", nil)
		return
	}

	row, err := h.Svc.Rename(c.Request.Context(), req.UserID, req.FileID, req.NewFilename)
	if err != nil {
		fileError(c, err, "failed to rename file")
		return
	}
	respond.OK(c, gin.H{
		"success":  true,
		"message":  "File renamed successfully",
		"file_id":  row.ID,
		"filename": row.Filename,
	})
}

type transferRequest struct {
	UserID     int64  `json:"user_id"`
	FileID     int64  `json:"file_id"`
	DestFolder string `json:"dest_folder"`
}

func (h *Handler) move(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.UserID == 0 || req.FileID == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id and file_id are required", nil)
		return
	}

	row, err := h.Svc.Move(c.Request.Context(), req.UserID, req.FileID, req.DestFolder)
	if err != nil {
		fileError(c, err, "failed to move file")
		return
	}
	respond.OK(c, gin.H{
		"success": true,
		"message": "File moved successfully",
		"file_id": row.ID,
		"url":     row.URL,
	})
}

func (h *Handler) copyFile(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.UserID == 0 || req.FileID == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id and file_id are required", nil)
		return
	}

	row, err := h.Svc.Copy(c.Request.Context(), req.UserID, req.FileID, req.DestFolder)
	if err != nil {
		fileError(c, err, "failed to copy file")
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{
		"success": true,
		"message": "File copied successfully",
		"file_id": row.ID,
		"url":     row.URL,
	})
}

type deleteFileRequest struct {
	UserID int64 `json:"user_id"`
	FileID int64 `json:"file_id"`
}

func (h *Handler) remove(c *gin.Context) {
	var req deleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.UserID == 0 || req.FileID == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id and file_id are required", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), req.UserID, req.FileID); err != nil {
		fileError(c, err, "failed to delete file")
		return
	}
	respond.OK(c, gin.H{"success": true, "message": "File deleted successfully"})
}

func (h *Handler) download(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id is required", nil)
		return
	}
	fileID, err := strconv.ParseInt(c.Param("fileID"), 10, 64)
	if err != nil || fileID == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file id is invalid", nil)
		return
	}

	row, data, err := h.Svc.Download(c.Request.Context(), userID, fileID)
	if err != nil {
		fileError(c, err, "failed to download file")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+row.Filename+`"`)
	c.Data(http.StatusOK, ContentType(row.Filename), data)
}

func fileError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrEmptyFile),
		errors.Is(err, ErrTooLarge), errors.Is(err, ErrBadType):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrUserNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "user does not exist", nil)
	case errors.Is(err, ErrProfileNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found for user", nil)
	case errors.Is(err, ErrFolderNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "folder does not exist", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
	case errors.Is(err, ErrPartialMove):
		respond.Error(c, http.StatusInternalServerError, "partial_failure", ErrPartialMove.Error(), err.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", fallback, err.Error())
	}
}
