package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotewall/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotewall/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotewall/internal/app"
	"github.com/jsamuelsen/quotewall/internal/domain"
)

// QuoteHandler handles quote authoring, browsing, and reaction endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// QuoteResponse is the HTTP representation of a quote.
type QuoteResponse struct {
	ID          uint      `json:"id"`
	OwnerID     uint      `json:"ownerId"`
	Content     string    `json:"content"`
	Author      string    `json:"author,omitempty"`
	Source      string    `json:"source,omitempty"`
	Explanation string    `json:"explanation,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// QuoteDetailResponse is a quote with reaction counts and the viewer's
// own reaction state.
type QuoteDetailResponse struct {
	QuoteResponse

	LikeCount    int64 `json:"likeCount"`
	CollectCount int64 `json:"collectCount"`
	Liked        bool  `json:"liked"`
	Collected    bool  `json:"collected"`
}

// ShareResponse is the public share rendering of a quote.
type ShareResponse struct {
	Quote     QuoteResponse `json:"quote"`
	URL       string        `json:"url"`
	QRDataURI string        `json:"qrDataUri"`
}

// ReactionResponse reports the new state after a toggle.
type ReactionResponse struct {
	Active bool `json:"active"`
}

// CreateQuoteRequest is the request body for POST /api/v1/quotes.
type CreateQuoteRequest struct {
	Content     string `json:"content" validate:"required,notempty"`
	Author      string `json:"author"`
	Source      string `json:"source"`
	Explanation string `json:"explanation"`
}

// UpdateQuoteRequest is the request body for PUT /api/v1/quotes/:id.
// Absent fields are left untouched.
type UpdateQuoteRequest struct {
	Content     *string `json:"content"`
	Author      *string `json:"author"`
	Source      *string `json:"source"`
	Explanation *string `json:"explanation"`
}

// SearchQuotesRequest carries the query parameters for GET /api/v1/quotes.
type SearchQuotesRequest struct {
	dto.PaginationRequest

	Query  string `form:"q"`
	Author string `form:"author"`
	Source string `form:"source"`
}

func toQuoteResponse(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:          uint(q.ID),
		OwnerID:     uint(q.OwnerID),
		Content:     q.Content,
		Author:      q.Author,
		Source:      q.Source,
		Explanation: q.Explanation,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

func toPageResponse(page *domain.Page) *dto.PaginatedResponse[QuoteResponse] {
	items := make([]QuoteResponse, 0, len(page.Quotes))
	for i := range page.Quotes {
		items = append(items, toQuoteResponse(&page.Quotes[i]))
	}

	return dto.NewPaginatedResponse(items, page.Total, page.Page, page.PageSize)
}

// Search handles GET /api/v1/quotes.
// Matches content and explanation by substring, author and source by
// prefix; all filters are optional.
func (h *QuoteHandler) Search(c *gin.Context) {
	var req SearchQuotesRequest

	err := dto.BindQueryAndValidate(c, &req)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	page, err := h.service.Search(c.Request.Context(), domain.SearchQuery{
		Query:    req.Query,
		Author:   req.Author,
		Source:   req.Source,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPageResponse(page))
}

// Create handles POST /api/v1/quotes.
func (h *QuoteHandler) Create(c *gin.Context) {
	var req CreateQuoteRequest

	err := dto.BindAndValidate(c, &req)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	quote, err := h.service.Create(c.Request.Context(), middleware.UserID(c), domain.QuoteInput{
		Content:     req.Content,
		Author:      req.Author,
		Source:      req.Source,
		Explanation: req.Explanation,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toQuoteResponse(quote))
}

// Get handles GET /api/v1/quotes/:id.
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	detail, err := h.service.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, &QuoteDetailResponse{
		QuoteResponse: toQuoteResponse(&detail.Quote),
		LikeCount:     detail.LikeCount,
		CollectCount:  detail.CollectCount,
		Liked:         detail.Liked,
		Collected:     detail.Collected,
	})
}

// Update handles PUT /api/v1/quotes/:id.
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	var req UpdateQuoteRequest

	err := dto.BindAndValidate(c, &req)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	quote, err := h.service.Update(c.Request.Context(), middleware.UserID(c), id, domain.QuoteUpdate{
		Content:     req.Content,
		Author:      req.Author,
		Source:      req.Source,
		Explanation: req.Explanation,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// Delete handles DELETE /api/v1/quotes/:id.
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Mine handles GET /api/v1/quotes/mine.
func (h *QuoteHandler) Mine(c *gin.Context) {
	h.listPage(c, func(page, pageSize int) (*domain.Page, error) {
		return h.service.ListByOwner(c.Request.Context(), middleware.UserID(c), page, pageSize)
	})
}

// Liked handles GET /api/v1/quotes/liked.
func (h *QuoteHandler) Liked(c *gin.Context) {
	h.listPage(c, func(page, pageSize int) (*domain.Page, error) {
		return h.service.ListReacted(c.Request.Context(), middleware.UserID(c), domain.ReactionLike, page, pageSize)
	})
}

// Collected handles GET /api/v1/quotes/collected.
func (h *QuoteHandler) Collected(c *gin.Context) {
	h.listPage(c, func(page, pageSize int) (*domain.Page, error) {
		return h.service.ListReacted(c.Request.Context(), middleware.UserID(c), domain.ReactionCollect, page, pageSize)
	})
}

// ToggleLike handles POST /api/v1/quotes/:id/like.
func (h *QuoteHandler) ToggleLike(c *gin.Context) {
	h.toggle(c, h.service.ToggleLike)
}

// ToggleCollect handles POST /api/v1/quotes/:id/collect.
func (h *QuoteHandler) ToggleCollect(c *gin.Context) {
	h.toggle(c, h.service.ToggleCollect)
}

// Share handles GET /api/v1/quotes/:id/share. No login required.
func (h *QuoteHandler) Share(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	view, err := h.service.ShareView(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, &ShareResponse{
		Quote:     toQuoteResponse(&view.Quote),
		URL:       view.URL,
		QRDataURI: view.QRDataURI,
	})
}

// listPage binds pagination params and renders one page of quotes.
func (h *QuoteHandler) listPage(c *gin.Context, list func(page, pageSize int) (*domain.Page, error)) {
	var req dto.PaginationRequest

	err := dto.BindQueryAndValidate(c, &req)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	page, err := list(req.Page, req.PageSize)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPageResponse(page))
}

// toggle flips a reaction and reports the new state.
func (h *QuoteHandler) toggle(c *gin.Context, flip func(ctx context.Context, actor domain.UserID, id domain.QuoteID) (bool, error)) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	state, err := flip(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, &ReactionResponse{Active: state})
}

// quoteIDParam parses the :id path parameter, responding with 400 when it
// is not a positive integer.
func quoteIDParam(c *gin.Context) (domain.QuoteID, bool) {
	raw := c.Param("id")

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"quote ID must be a positive integer",
		).WithTraceID(dto.GetTraceID(c)))

		return 0, false
	}

	return domain.QuoteID(id), true
}

// RegisterQuoteRoutes registers quote routes on the given router group.
// Browse, detail, and share are public; everything else requires a login.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")

	quotes.GET("", h.Search)
	quotes.GET("/:id", h.Get)
	quotes.GET("/:id/share", h.Share)

	quotes.POST("", middleware.RequireUser(), h.Create)
	quotes.PUT("/:id", middleware.RequireUser(), h.Update)
	quotes.DELETE("/:id", middleware.RequireUser(), h.Delete)
	quotes.GET("/mine", middleware.RequireUser(), h.Mine)
	quotes.GET("/liked", middleware.RequireUser(), h.Liked)
	quotes.GET("/collected", middleware.RequireUser(), h.Collected)
	quotes.POST("/:id/like", middleware.RequireUser(), h.ToggleLike)
	quotes.POST("/:id/collect", middleware.RequireUser(), h.ToggleCollect)
}
