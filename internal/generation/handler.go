package generation

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
)

// Handler wires the generation endpoint to the pipeline service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the generation route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate", h.generate)
}

type generateRequest struct {
	UserID         int64  `json:"user_id"`
	Username       string `json:"username"`
	JobDescription string `json:"job_description"`
	Prompt         string `json:"prompt"`
	JWTToken       string `json:"jwt_token"`
}

// generate streams pipeline events to the client as Server-Sent Events.
// Every frame, terminal errors included, is a "data:" line; the HTTP
// status is always 200 once streaming starts.
func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)

	events := h.Svc.Run(c.Request.Context(), Request{
		UserID:         req.UserID,
		Username:       req.Username,
		JobDescription: req.JobDescription,
		Instruction:    req.Prompt,
		Token:          req.JWTToken,
	})

	for ev := range events {
		frame, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		if _, err := c.Writer.Write([]byte("data: " + string(frame) + "\n\n")); err != nil {
			return
		}
		c.Writer.Flush()
	}
}
