package demotokens

import (
	"errors"
	"fmt"
	"net/http"
	"time"

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

// RegisterRoutes attaches token routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tokens", h.createOrGet)
	rg.GET("/tokens", h.getByIP)
	rg.POST("/tokens/increment", h.increment)
	rg.GET("/tokens/check", h.checkLimit)
	rg.POST("/tokens/cleanup", h.cleanup)
}

type createTokenRequest struct {
	IPAddress string `json:"ip_address"`
}

func (h *Handler) createOrGet(c *gin.Context) {
	var req createTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	ip := req.IPAddress
	if ip == "" {
		ip = c.ClientIP()
	}
	if ip == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "ip_address is required", nil)
		return
	}

	rec, created, err := h.Svc.CreateOrGet(c.Request.Context(), ip)
	if err != nil {
		tokenError(c, err, "failed to create token")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respond.JSON(c, status, tokenBody(rec))
}

func (h *Handler) getByIP(c *gin.Context) {
	ip := c.Query("ip_address")
	if ip == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "ip_address parameter is required", nil)
		return
	}

	rec, err := h.Svc.GetByIP(c.Request.Context(), ip)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no valid token found for this IP", nil)
			return
		}
		tokenError(c, err, "failed to fetch token")
		return
	}
	respond.OK(c, tokenBody(rec))
}

type incrementRequest struct {
	Token string `json:"token"`
}

func (h *Handler) increment(c *gin.Context) {
	var req incrementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Token == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "token is required", nil)
		return
	}

	rec, err := h.Svc.Increment(c.Request.Context(), req.Token)
	if err != nil {
		tokenError(c, err, "failed to increment token")
		return
	}
	respond.OK(c, gin.H{
		"generation_count": rec.GenerationCount,
		"expiry":           rec.Expiry.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) checkLimit(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "token parameter is required", nil)
		return
	}

	rec, reached, err := h.Svc.CheckLimit(c.Request.Context(), token)
	if err != nil {
		tokenError(c, err, "failed to check token")
		return
	}
	respond.OK(c, gin.H{
		"generation_count": rec.GenerationCount,
		"limit_reached":    reached,
		"expiry":           rec.Expiry.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) cleanup(c *gin.Context) {
	deleted, err := h.Svc.Cleanup(c.Request.Context())
	if err != nil {
		tokenError(c, err, "failed to clean up tokens")
		return
	}
	respond.OK(c, gin.H{
		"deleted_count": deleted,
		"message":       fmt.Sprintf("Deleted %d expired tokens", deleted),
	})
}

func tokenBody(rec TokenRecord) gin.H {
	return gin.H{
		"token":            rec.Token,
		"generation_count": rec.GenerationCount,
		"expiry":           rec.Expiry.UTC().Format(time.RFC3339),
	}
}

func tokenError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidToken):
		respond.Error(c, http.StatusBadRequest, "validation_error", ErrInvalidToken.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", ErrNotFound.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", fallback, err.Error())
	}
}
