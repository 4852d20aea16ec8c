package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotewall/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotewall/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotewall/internal/app"
)

// ExplainHandler handles the AI explanation endpoint.
type ExplainHandler struct {
	service *app.ExplainService
}

// NewExplainHandler creates a new explain handler.
func NewExplainHandler(service *app.ExplainService) *ExplainHandler {
	return &ExplainHandler{
		service: service,
	}
}

// ExplainResponse is the response body for a generated explanation.
type ExplainResponse struct {
	Explanation string `json:"explanation"`
}

// Explain handles POST /api/ai-explanation. The request carries form
// fields content (required) and prompt (optional). The generated text is
// returned to the caller and never persisted here.
func (h *ExplainHandler) Explain(c *gin.Context) {
	content := c.PostForm("content")
	prompt := c.PostForm("prompt")

	explanation, err := h.service.Explain(c.Request.Context(), content, prompt)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, &ExplainResponse{Explanation: explanation})
}

// RegisterExplainRoutes registers the explanation route on the engine.
// The path predates the versioned API and is kept for client
// compatibility.
func (h *ExplainHandler) RegisterExplainRoutes(engine *gin.Engine) {
	engine.POST("/api/ai-explanation", middleware.RequireUser(), h.Explain)
}
